package handler

import "github.com/healthlog/health-backend/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Accounts ---

type registerRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Age      int     `json:"age"      validate:"age"`
	WeightKg float64 `json:"weightKg" validate:"weight"`
	HeightM  float64 `json:"heightM"  validate:"height"`
	Password string  `json:"password" validate:"password"`
	Gender   string  `json:"gender"`
}

type loginRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Age      int     `json:"age"      validate:"age"`
	WeightKg float64 `json:"weightKg" validate:"weight"`
	HeightM  float64 `json:"heightM"  validate:"height"`
	Password string  `json:"password" validate:"password"`
	Gender   string  `json:"gender"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type bmiResponse struct {
	BMI float64 `json:"bmi"`
}

// --- Records ---

type waterRequest struct {
	Datetime string  `json:"datetime" validate:"healthdate"`
	AmountMl float64 `json:"amountMl" validate:"gte=0"`
}

func (r waterRequest) record() domain.WaterRecord {
	return domain.WaterRecord{Datetime: r.Datetime, AmountMl: r.AmountMl}
}

type sleepRequest struct {
	Datetime string  `json:"datetime" validate:"healthdate"`
	Hours    float64 `json:"hours"    validate:"gte=0"`
}

func (r sleepRequest) record() domain.SleepRecord {
	return domain.SleepRecord{Datetime: r.Datetime, Hours: r.Hours}
}

type activityRequest struct {
	Datetime  string `json:"datetime"  validate:"healthdate"`
	Minutes   int    `json:"minutes"   validate:"gte=0"`
	Intensity string `json:"intensity"`
}

func (r activityRequest) record() domain.ActivityRecord {
	return domain.ActivityRecord{Datetime: r.Datetime, Minutes: r.Minutes, Intensity: r.Intensity}
}

type averageResponse struct {
	AverageMl float64 `json:"averageMl"`
}

type enoughResponse struct {
	Enough bool `json:"enough"`
}

type hoursResponse struct {
	Hours float64 `json:"hours"`
}

// --- Categories ---

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type categoryItemRequest struct {
	Datetime string  `json:"datetime" validate:"healthdate"`
	Value    float64 `json:"value"`
	Note     string  `json:"note"`
}

func (r categoryItemRequest) item() domain.CategoryItem {
	return domain.CategoryItem{Datetime: r.Datetime, Value: r.Value, Note: r.Note}
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}
