package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/healthlog/health-backend/internal/core/domain"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubService{token: "Tok123"}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/register",
		`{"name":"amy","age":28,"weightKg":50,"heightM":1.6,"password":"pass1","gender":"f"}`, "")
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "Tok123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if in := stub.gotRegister; in.Name != "amy" || in.Age != 28 || in.HeightM != 1.6 || in.Gender != "f" {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestAuthHandler_Register_ValidationFailsBeforeService(t *testing.T) {
	cases := map[string]string{
		"missing name":     `{"age":28,"weightKg":50,"heightM":1.6,"password":"pass1"}`,
		"age out of range": `{"name":"amy","age":150,"weightKg":50,"heightM":1.6,"password":"pass1"}`,
		"zero height":      `{"name":"amy","age":28,"weightKg":50,"heightM":0,"password":"pass1"}`,
		"short password":   `{"name":"amy","age":28,"weightKg":50,"heightM":1.6,"password":"abc"}`,
		"malformed":        `{"name":`,
	}
	for name, body := range cases {
		stub := &stubService{}
		c, _ := newTestContext(http.MethodPost, "/register", body, "")

		err := NewAuthHandler(stub).Register(c)
		if httpCode(err) != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %v", name, err)
		}
		if stub.calls != 0 {
			t.Errorf("%s: service should not be called", name)
		}
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubService{err: domain.ErrUserExists}
	c, _ := newTestContext(http.MethodPost, "/register",
		`{"name":"amy","age":28,"weightKg":50,"heightM":1.6,"password":"pass1"}`, "")

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubService{token: "Tok123"}
	c, rec := newTestContext(http.MethodPost, "/login", `{"name":"amy","password":"pass1"}`, "")

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	stub = &stubService{err: domain.ErrInvalidCredentials}
	c, _ = newTestContext(http.MethodPost, "/login", `{"name":"amy","password":"nope"}`, "")
	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubService{}
	c, rec := newTestContext(http.MethodPost, "/logout", "", "Tok123")

	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || stub.gotToken != "Tok123" {
		t.Fatalf("unexpected result: code=%d token=%q", rec.Code, stub.gotToken)
	}

	c, _ = newTestContext(http.MethodPost, "/logout", "", "")
	if err := NewAuthHandler(stub).Logout(c); httpCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %v", err)
	}
}

func TestUserHandler_ProfileAndBMI(t *testing.T) {
	stub := &stubService{
		profile: domain.UserProfile{Name: "amy", Age: 28, WeightKg: 50, HeightM: 1.6},
		bmi:     19.53,
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/user/profile", "", "Tok123")
	if err := h.Profile(c); err != nil {
		t.Fatalf("profile: %v", err)
	}
	var profile map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &profile)
	if profile["name"] != "amy" || profile["weightKg"] != 50.0 {
		t.Fatalf("unexpected profile payload: %v", profile)
	}
	if _, leaked := profile["password"]; leaked {
		t.Fatalf("profile must not expose the password")
	}

	c, rec = newTestContext(http.MethodGet, "/user/bmi", "", "Tok123")
	if err := h.BMI(c); err != nil {
		t.Fatalf("bmi: %v", err)
	}
	if rec.Body.String() != "{\"bmi\":19.53}\n" {
		t.Fatalf("unexpected bmi payload: %q", rec.Body.String())
	}
}

func TestUserHandler_UpdateAndDelete(t *testing.T) {
	stub := &stubService{}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/user/profile",
		`{"age":29,"weightKg":52,"heightM":1.6,"password":"pass2"}`, "Tok123")
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusNoContent || stub.gotProfile.Age != 29 {
		t.Fatalf("unexpected result: code=%d input=%+v", rec.Code, stub.gotProfile)
	}

	c, _ = newTestContext(http.MethodPut, "/user/profile", `{"age":29,"weightKg":600,"heightM":1.6,"password":"pass2"}`, "Tok123")
	if err := h.UpdateProfile(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for weight 600, got %v", err)
	}

	stub.err = domain.ErrUnauthorized
	c, _ = newTestContext(http.MethodDelete, "/user", "", "stale")
	if err := h.Delete(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
