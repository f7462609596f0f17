package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/healthlog/health-backend/internal/core/domain"
)

func TestWaterHandler_AddAndList(t *testing.T) {
	stub := &stubService{waters: []domain.WaterRecord{{Datetime: "2024-03-01", AmountMl: 250}}}
	h := NewWaterHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/waters", `{"datetime":"2024-03-01","amountMl":250}`, "Tok123")
	if err := h.Add(c); err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Code != http.StatusCreated || stub.gotWater.AmountMl != 250 {
		t.Fatalf("unexpected result: code=%d rec=%+v", rec.Code, stub.gotWater)
	}

	c, rec = newTestContext(http.MethodGet, "/waters", "", "Tok123")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Body.String() != "[{\"datetime\":\"2024-03-01\",\"amountMl\":250}]\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestWaterHandler_RejectsBadRecords(t *testing.T) {
	cases := map[string]string{
		"bad date":        `{"datetime":"01/03/2024","amountMl":250}`,
		"negative amount": `{"datetime":"2024-03-01","amountMl":-1}`,
	}
	for name, body := range cases {
		stub := &stubService{}
		c, _ := newTestContext(http.MethodPost, "/waters", body, "Tok123")
		if err := NewWaterHandler(stub).Add(c); httpCode(err) != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %v", name, err)
		}
		if stub.calls != 0 {
			t.Errorf("%s: service should not be called", name)
		}
	}
}

func TestWaterHandler_UpdateDeleteByIndex(t *testing.T) {
	stub := &stubService{}
	h := NewWaterHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/waters/2", `{"datetime":"2024-03-02","amountMl":300}`, "Tok123")
	c.SetParamNames("index")
	c.SetParamValues("2")
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusNoContent || stub.gotIndex != 2 {
		t.Fatalf("unexpected result: code=%d index=%d", rec.Code, stub.gotIndex)
	}

	c, _ = newTestContext(http.MethodDelete, "/waters/x", "", "Tok123")
	c.SetParamNames("index")
	c.SetParamValues("x")
	if err := h.Delete(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric index, got %v", err)
	}

	stub.err = domain.ErrIndexOutOfRange
	c, _ = newTestContext(http.MethodDelete, "/waters/9", "", "Tok123")
	c.SetParamNames("index")
	c.SetParamValues("9")
	if err := h.Delete(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWaterHandler_WeeklyAndEnough(t *testing.T) {
	stub := &stubService{average: 1766.5, enough: true}
	h := NewWaterHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/waters/weekly", "", "Tok123")
	if err := h.Weekly(c); err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if rec.Body.String() != "{\"averageMl\":1766.5}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	c, rec = newTestContext(http.MethodGet, "/waters/enough?goal=1700", "", "Tok123")
	if err := h.Enough(c); err != nil {
		t.Fatalf("enough: %v", err)
	}
	if stub.gotGoal != 1700 || rec.Body.String() != "{\"enough\":true}\n" {
		t.Fatalf("unexpected result: goal=%v body=%q", stub.gotGoal, rec.Body.String())
	}

	c, _ = newTestContext(http.MethodGet, "/waters/enough", "", "Tok123")
	if err := h.Enough(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 without goal, got %v", err)
	}
}

func TestSleepHandler_LastAndEnough(t *testing.T) {
	stub := &stubService{lastSleep: 6.0}
	h := NewSleepHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/sleeps/last", "", "Tok123")
	if err := h.Last(c); err != nil {
		t.Fatalf("last: %v", err)
	}
	if rec.Body.String() != "{\"hours\":6}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	c, rec = newTestContext(http.MethodGet, "/sleeps/enough?min=7", "", "Tok123")
	if err := h.Enough(c); err != nil {
		t.Fatalf("enough: %v", err)
	}
	if rec.Body.String() != "{\"enough\":false}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	c, _ = newTestContext(http.MethodGet, "/sleeps/enough?min=lots", "", "Tok123")
	if err := h.Enough(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric min, got %v", err)
	}
}

func TestSleepHandler_Add(t *testing.T) {
	stub := &stubService{}
	c, rec := newTestContext(http.MethodPost, "/sleeps", `{"datetime":"2024-03-01","hours":7.5}`, "Tok123")
	if err := NewSleepHandler(stub).Add(c); err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Code != http.StatusCreated || stub.gotSleep.Hours != 7.5 {
		t.Fatalf("unexpected result: code=%d rec=%+v", rec.Code, stub.gotSleep)
	}
}

func TestActivityHandler_AddAndSort(t *testing.T) {
	stub := &stubService{}
	h := NewActivityHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/activities", `{"datetime":"2024-03-01","minutes":45,"intensity":"high"}`, "Tok123")
	if err := h.Add(c); err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Code != http.StatusCreated || stub.gotActivity.Minutes != 45 || stub.gotActivity.Intensity != "high" {
		t.Fatalf("unexpected result: code=%d rec=%+v", rec.Code, stub.gotActivity)
	}

	c, _ = newTestContext(http.MethodPost, "/activities", `{"datetime":"2024-03-01","minutes":-5}`, "Tok123")
	if err := h.Add(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative minutes, got %v", err)
	}

	c, rec = newTestContext(http.MethodPost, "/activities/sort", "", "Tok123")
	if err := h.Sort(c); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
