package store

import (
	"cmp"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// --- Water ---

// AddWater appends rec to the user's water log.
func (s *Store) AddWater(user string, rec domain.WaterRecord) error {
	return s.write(user, func() error {
		s.waters.add(user, rec)
		return nil
	})
}

// UpdateWater replaces the water record at index.
func (s *Store) UpdateWater(user string, index int, rec domain.WaterRecord) error {
	return s.write(user, func() error { return s.waters.replace(user, index, rec) })
}

// DeleteWater removes the water record at index; later records shift down
// by one.
func (s *Store) DeleteWater(user string, index int) error {
	return s.write(user, func() error { return s.waters.remove(user, index) })
}

// Waters returns a copy of the user's water log.
func (s *Store) Waters(user string) ([]domain.WaterRecord, error) {
	var out []domain.WaterRecord
	err := s.read(user, func() error {
		out = s.waters.list(user)
		return nil
	})
	return out, err
}

// WeeklyWaterAverage averages the last seven water entries.
func (s *Store) WeeklyWaterAverage(user string) (float64, error) {
	var avg float64
	err := s.read(user, func() error {
		avg = domain.WeeklyWaterAverage(s.waters.view(user))
		return nil
	})
	return avg, err
}

// --- Sleep ---

// AddSleep appends rec to the user's sleep log.
func (s *Store) AddSleep(user string, rec domain.SleepRecord) error {
	return s.write(user, func() error {
		s.sleeps.add(user, rec)
		return nil
	})
}

// UpdateSleep replaces the sleep record at index.
func (s *Store) UpdateSleep(user string, index int, rec domain.SleepRecord) error {
	return s.write(user, func() error { return s.sleeps.replace(user, index, rec) })
}

// DeleteSleep removes the sleep record at index.
func (s *Store) DeleteSleep(user string, index int) error {
	return s.write(user, func() error { return s.sleeps.remove(user, index) })
}

// Sleeps returns a copy of the user's sleep log.
func (s *Store) Sleeps(user string) ([]domain.SleepRecord, error) {
	var out []domain.SleepRecord
	err := s.read(user, func() error {
		out = s.sleeps.list(user)
		return nil
	})
	return out, err
}

// LastSleepHours returns the hours of the most recent entry, or 0.
func (s *Store) LastSleepHours(user string) (float64, error) {
	var hours float64
	err := s.read(user, func() error {
		hours = domain.LastSleepHours(s.sleeps.view(user))
		return nil
	})
	return hours, err
}

// --- Activity ---

// AddActivity appends rec to the user's activity log.
func (s *Store) AddActivity(user string, rec domain.ActivityRecord) error {
	return s.write(user, func() error {
		s.activities.add(user, rec)
		return nil
	})
}

// UpdateActivity replaces the activity record at index.
func (s *Store) UpdateActivity(user string, index int, rec domain.ActivityRecord) error {
	return s.write(user, func() error { return s.activities.replace(user, index, rec) })
}

// DeleteActivity removes the activity record at index.
func (s *Store) DeleteActivity(user string, index int) error {
	return s.write(user, func() error { return s.activities.remove(user, index) })
}

// Activities returns a copy of the user's activity log.
func (s *Store) Activities(user string) ([]domain.ActivityRecord, error) {
	var out []domain.ActivityRecord
	err := s.read(user, func() error {
		out = s.activities.list(user)
		return nil
	})
	return out, err
}

// SortActivitiesByDuration reorders the user's activities longest first.
// Equal durations keep their relative order.
func (s *Store) SortActivitiesByDuration(user string) error {
	return s.write(user, func() error {
		s.activities.sortStable(user, func(a, b domain.ActivityRecord) int {
			return cmp.Compare(b.Minutes, a.Minutes)
		})
		return nil
	})
}
