package service

import (
	"context"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/validation"
)

// --- Water ---

func validateWater(rec domain.WaterRecord) error {
	if !validation.ValidDate(rec.Datetime) {
		return invalid("datetime must look like YYYY-MM-DD")
	}
	if !validation.NonNegative(rec.AmountMl) {
		return invalid("amountMl must not be negative")
	}
	return nil
}

func (s *HealthService) AddWater(_ context.Context, token string, rec domain.WaterRecord) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("add_water", err)
	}
	if err := validateWater(rec); err != nil {
		return s.observe("add_water", err)
	}
	return s.observe("add_water", s.store.AddWater(name, rec))
}

func (s *HealthService) UpdateWater(_ context.Context, token string, index int, rec domain.WaterRecord) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("update_water", err)
	}
	if err := validateWater(rec); err != nil {
		return s.observe("update_water", err)
	}
	return s.observe("update_water", s.store.UpdateWater(name, index, rec))
}

func (s *HealthService) DeleteWater(_ context.Context, token string, index int) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("delete_water", err)
	}
	return s.observe("delete_water", s.store.DeleteWater(name, index))
}

func (s *HealthService) ListWater(_ context.Context, token string) ([]domain.WaterRecord, error) {
	name, err := s.resolve(token)
	if err != nil {
		return nil, err
	}
	return s.store.Waters(name)
}

func (s *HealthService) WeeklyWaterAverage(_ context.Context, token string) (float64, error) {
	name, err := s.resolve(token)
	if err != nil {
		return 0, err
	}
	return s.store.WeeklyWaterAverage(name)
}

// IsWaterEnough reports whether the weekly average meets dailyGoalMl.
func (s *HealthService) IsWaterEnough(ctx context.Context, token string, dailyGoalMl float64) (bool, error) {
	if !validation.NonNegative(dailyGoalMl) {
		return false, invalid("goal must not be negative")
	}
	avg, err := s.WeeklyWaterAverage(ctx, token)
	if err != nil {
		return false, err
	}
	return avg >= dailyGoalMl, nil
}

// --- Sleep ---

func validateSleep(rec domain.SleepRecord) error {
	if !validation.ValidDate(rec.Datetime) {
		return invalid("datetime must look like YYYY-MM-DD")
	}
	if !validation.NonNegative(rec.Hours) {
		return invalid("hours must not be negative")
	}
	return nil
}

func (s *HealthService) AddSleep(_ context.Context, token string, rec domain.SleepRecord) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("add_sleep", err)
	}
	if err := validateSleep(rec); err != nil {
		return s.observe("add_sleep", err)
	}
	return s.observe("add_sleep", s.store.AddSleep(name, rec))
}

func (s *HealthService) UpdateSleep(_ context.Context, token string, index int, rec domain.SleepRecord) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("update_sleep", err)
	}
	if err := validateSleep(rec); err != nil {
		return s.observe("update_sleep", err)
	}
	return s.observe("update_sleep", s.store.UpdateSleep(name, index, rec))
}

func (s *HealthService) DeleteSleep(_ context.Context, token string, index int) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("delete_sleep", err)
	}
	return s.observe("delete_sleep", s.store.DeleteSleep(name, index))
}

func (s *HealthService) ListSleep(_ context.Context, token string) ([]domain.SleepRecord, error) {
	name, err := s.resolve(token)
	if err != nil {
		return nil, err
	}
	return s.store.Sleeps(name)
}

func (s *HealthService) LastSleepHours(_ context.Context, token string) (float64, error) {
	name, err := s.resolve(token)
	if err != nil {
		return 0, err
	}
	return s.store.LastSleepHours(name)
}

// IsSleepEnough checks the most recent night only, not an average.
func (s *HealthService) IsSleepEnough(ctx context.Context, token string, minHours float64) (bool, error) {
	if !validation.NonNegative(minHours) {
		return false, invalid("minimum hours must not be negative")
	}
	last, err := s.LastSleepHours(ctx, token)
	if err != nil {
		return false, err
	}
	return last >= minHours, nil
}

// --- Activity ---

func validateActivity(rec domain.ActivityRecord) error {
	if !validation.ValidDate(rec.Datetime) {
		return invalid("datetime must look like YYYY-MM-DD")
	}
	if rec.Minutes < 0 {
		return invalid("minutes must not be negative")
	}
	return nil
}

func (s *HealthService) AddActivity(_ context.Context, token string, rec domain.ActivityRecord) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("add_activity", err)
	}
	if err := validateActivity(rec); err != nil {
		return s.observe("add_activity", err)
	}
	return s.observe("add_activity", s.store.AddActivity(name, rec))
}

func (s *HealthService) UpdateActivity(_ context.Context, token string, index int, rec domain.ActivityRecord) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("update_activity", err)
	}
	if err := validateActivity(rec); err != nil {
		return s.observe("update_activity", err)
	}
	return s.observe("update_activity", s.store.UpdateActivity(name, index, rec))
}

func (s *HealthService) DeleteActivity(_ context.Context, token string, index int) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("delete_activity", err)
	}
	return s.observe("delete_activity", s.store.DeleteActivity(name, index))
}

func (s *HealthService) ListActivities(_ context.Context, token string) ([]domain.ActivityRecord, error) {
	name, err := s.resolve(token)
	if err != nil {
		return nil, err
	}
	return s.store.Activities(name)
}

func (s *HealthService) SortActivitiesByDuration(_ context.Context, token string) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("sort_activities", err)
	}
	return s.observe("sort_activities", s.store.SortActivitiesByDuration(name))
}
