package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthlog/health-backend/internal/api/middleware"
	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
)

// stubService records the last call and answers with canned values.
type stubService struct {
	err error

	token      string
	profile    domain.UserProfile
	bmi        float64
	waters     []domain.WaterRecord
	average    float64
	enough     bool
	lastSleep  float64
	categories []string
	items      []domain.CategoryItem

	gotToken    string
	gotIndex    int
	gotCategory string
	gotGoal     float64
	gotRegister ports.RegisterInput
	gotProfile  ports.ProfileInput
	gotWater    domain.WaterRecord
	gotSleep    domain.SleepRecord
	gotActivity domain.ActivityRecord
	gotItem     domain.CategoryItem
	calls       int
}

var _ ports.HealthService = (*stubService)(nil)

func (s *stubService) call(token string) error {
	s.calls++
	s.gotToken = token
	return s.err
}

func (s *stubService) Register(_ context.Context, in ports.RegisterInput) (string, error) {
	s.gotRegister = in
	return s.token, s.call("")
}

func (s *stubService) Login(_ context.Context, name, _ string) (string, error) {
	s.gotRegister.Name = name
	return s.token, s.call("")
}

func (s *stubService) Logout(_ context.Context, token string) error { return s.call(token) }

func (s *stubService) Profile(_ context.Context, token string) (*domain.UserProfile, error) {
	if err := s.call(token); err != nil {
		return nil, err
	}
	p := s.profile
	return &p, nil
}

func (s *stubService) UpdateProfile(_ context.Context, token string, in ports.ProfileInput) error {
	s.gotProfile = in
	return s.call(token)
}

func (s *stubService) DeleteUser(_ context.Context, token string) error { return s.call(token) }

func (s *stubService) BMI(_ context.Context, token string) (float64, error) {
	return s.bmi, s.call(token)
}

func (s *stubService) AddWater(_ context.Context, token string, rec domain.WaterRecord) error {
	s.gotWater = rec
	return s.call(token)
}

func (s *stubService) UpdateWater(_ context.Context, token string, index int, rec domain.WaterRecord) error {
	s.gotIndex, s.gotWater = index, rec
	return s.call(token)
}

func (s *stubService) DeleteWater(_ context.Context, token string, index int) error {
	s.gotIndex = index
	return s.call(token)
}

func (s *stubService) ListWater(_ context.Context, token string) ([]domain.WaterRecord, error) {
	return s.waters, s.call(token)
}

func (s *stubService) WeeklyWaterAverage(_ context.Context, token string) (float64, error) {
	return s.average, s.call(token)
}

func (s *stubService) IsWaterEnough(_ context.Context, token string, goal float64) (bool, error) {
	s.gotGoal = goal
	return s.enough, s.call(token)
}

func (s *stubService) AddSleep(_ context.Context, token string, rec domain.SleepRecord) error {
	s.gotSleep = rec
	return s.call(token)
}

func (s *stubService) UpdateSleep(_ context.Context, token string, index int, rec domain.SleepRecord) error {
	s.gotIndex, s.gotSleep = index, rec
	return s.call(token)
}

func (s *stubService) DeleteSleep(_ context.Context, token string, index int) error {
	s.gotIndex = index
	return s.call(token)
}

func (s *stubService) ListSleep(_ context.Context, token string) ([]domain.SleepRecord, error) {
	return nil, s.call(token)
}

func (s *stubService) LastSleepHours(_ context.Context, token string) (float64, error) {
	return s.lastSleep, s.call(token)
}

func (s *stubService) IsSleepEnough(_ context.Context, token string, minHours float64) (bool, error) {
	s.gotGoal = minHours
	return s.enough, s.call(token)
}

func (s *stubService) AddActivity(_ context.Context, token string, rec domain.ActivityRecord) error {
	s.gotActivity = rec
	return s.call(token)
}

func (s *stubService) UpdateActivity(_ context.Context, token string, index int, rec domain.ActivityRecord) error {
	s.gotIndex, s.gotActivity = index, rec
	return s.call(token)
}

func (s *stubService) DeleteActivity(_ context.Context, token string, index int) error {
	s.gotIndex = index
	return s.call(token)
}

func (s *stubService) ListActivities(_ context.Context, token string) ([]domain.ActivityRecord, error) {
	return nil, s.call(token)
}

func (s *stubService) SortActivitiesByDuration(_ context.Context, token string) error {
	return s.call(token)
}

func (s *stubService) CreateCategory(_ context.Context, token, name string) error {
	s.gotCategory = name
	return s.call(token)
}

func (s *stubService) DeleteCategory(_ context.Context, token, name string) error {
	s.gotCategory = name
	return s.call(token)
}

func (s *stubService) ListCategories(_ context.Context, token string) ([]string, error) {
	return s.categories, s.call(token)
}

func (s *stubService) AddCategoryItem(_ context.Context, token, category string, item domain.CategoryItem) error {
	s.gotCategory, s.gotItem = category, item
	return s.call(token)
}

func (s *stubService) UpdateCategoryItem(_ context.Context, token, category string, index int, item domain.CategoryItem) error {
	s.gotCategory, s.gotIndex, s.gotItem = category, index, item
	return s.call(token)
}

func (s *stubService) DeleteCategoryItem(_ context.Context, token, category string, index int) error {
	s.gotCategory, s.gotIndex = category, index
	return s.call(token)
}

func (s *stubService) ListCategoryItems(_ context.Context, token, category string) ([]domain.CategoryItem, error) {
	s.gotCategory = category
	return s.items, s.call(token)
}

func (s *stubService) Status() ports.PersistenceStatus {
	return ports.PersistenceStatus{Backend: "stub"}
}

// newTestContext builds an echo context with the validator installed and,
// when token is non-empty, the session token already injected.
func newTestContext(method, target, body, token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if token != "" {
		c.Set(middleware.TokenKey, token)
	}
	return c, rec
}

// httpCode extracts the status of an *echo.HTTPError, or 0.
func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
