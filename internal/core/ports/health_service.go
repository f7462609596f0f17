package ports

import (
	"context"
	"time"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name     string
	Age      int
	WeightKg float64
	HeightM  float64
	Password string
	Gender   string
}

// ProfileInput replaces the mutable part of a profile and the password.
type ProfileInput struct {
	Age      int
	WeightKg float64
	HeightM  float64
	Password string
	Gender   string
}

// PersistenceStatus reports how the last snapshot writes went.
type PersistenceStatus struct {
	Backend             string
	LastSaveAt          time.Time
	LastError           string
	ConsecutiveFailures int
}

// Healthy is false once a write has failed and none has succeeded since.
func (s PersistenceStatus) Healthy() bool {
	return s.ConsecutiveFailures == 0
}

// AccountService covers identity, sessions and profiles.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, name, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, token string, in ProfileInput) error
	DeleteUser(ctx context.Context, token string) error
	BMI(ctx context.Context, token string) (float64, error)
}

// WaterService covers hydration records.
type WaterService interface {
	AddWater(ctx context.Context, token string, rec domain.WaterRecord) error
	UpdateWater(ctx context.Context, token string, index int, rec domain.WaterRecord) error
	DeleteWater(ctx context.Context, token string, index int) error
	ListWater(ctx context.Context, token string) ([]domain.WaterRecord, error)
	WeeklyWaterAverage(ctx context.Context, token string) (float64, error)
	IsWaterEnough(ctx context.Context, token string, dailyGoalMl float64) (bool, error)
}

// SleepService covers sleep records.
type SleepService interface {
	AddSleep(ctx context.Context, token string, rec domain.SleepRecord) error
	UpdateSleep(ctx context.Context, token string, index int, rec domain.SleepRecord) error
	DeleteSleep(ctx context.Context, token string, index int) error
	ListSleep(ctx context.Context, token string) ([]domain.SleepRecord, error)
	LastSleepHours(ctx context.Context, token string) (float64, error)
	IsSleepEnough(ctx context.Context, token string, minHours float64) (bool, error)
}

// ActivityService covers exercise records.
type ActivityService interface {
	AddActivity(ctx context.Context, token string, rec domain.ActivityRecord) error
	UpdateActivity(ctx context.Context, token string, index int, rec domain.ActivityRecord) error
	DeleteActivity(ctx context.Context, token string, index int) error
	ListActivities(ctx context.Context, token string) ([]domain.ActivityRecord, error)
	SortActivitiesByDuration(ctx context.Context, token string) error
}

// CategoryService covers user-defined categories and their items.
type CategoryService interface {
	CreateCategory(ctx context.Context, token, name string) error
	DeleteCategory(ctx context.Context, token, name string) error
	ListCategories(ctx context.Context, token string) ([]string, error)
	AddCategoryItem(ctx context.Context, token, category string, item domain.CategoryItem) error
	UpdateCategoryItem(ctx context.Context, token, category string, index int, item domain.CategoryItem) error
	DeleteCategoryItem(ctx context.Context, token, category string, index int) error
	ListCategoryItems(ctx context.Context, token, category string) ([]domain.CategoryItem, error)
}

// HealthService is the single entry point used by the HTTP layer.
type HealthService interface {
	AccountService
	WaterService
	SleepService
	ActivityService
	CategoryService

	Status() PersistenceStatus
}
