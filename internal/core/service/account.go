package service

import (
	"context"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
	"github.com/healthlog/health-backend/internal/core/store"
	"github.com/healthlog/health-backend/internal/core/validation"
)

// Register creates the account and returns its first session token.
func (s *HealthService) Register(_ context.Context, in ports.RegisterInput) (string, error) {
	if !validation.ValidName(in.Name) {
		return "", s.observe("register", invalid("name is required"))
	}
	if err := validateBody(in.Age, in.WeightKg, in.HeightM, in.Password); err != nil {
		return "", s.observe("register", err)
	}

	credential, err := s.passwords.Seal(in.Password)
	if err != nil {
		return "", s.observe("register", err)
	}

	token, err := s.store.Register(domain.UserProfile{
		Name:     in.Name,
		Age:      in.Age,
		WeightKg: in.WeightKg,
		HeightM:  in.HeightM,
		Gender:   in.Gender,
	}, credential)
	if err != nil {
		return "", s.observe("register", err)
	}

	s.log.Info().Str("user", in.Name).Msg("user registered")
	return token, s.observe("register", nil)
}

// Login returns the user's session token. Unknown names and wrong passwords
// both yield domain.ErrInvalidCredentials.
func (s *HealthService) Login(_ context.Context, name, password string) (string, error) {
	token, err := s.store.Login(name, func(stored string) bool {
		return s.passwords.Match(stored, password)
	})
	s.recorder.RecordLogin(err == nil)
	if err != nil {
		s.log.Warn().Str("user", name).Msg("login rejected")
		return "", err
	}
	s.log.Info().Str("user", name).Str("token", tokenPrefix(token)).Msg("user logged in")
	return token, nil
}

func (s *HealthService) Logout(_ context.Context, token string) error {
	return s.observe("logout", s.store.Logout(token))
}

func (s *HealthService) Profile(_ context.Context, token string) (*domain.UserProfile, error) {
	name, err := s.resolve(token)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Profile(name)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile replaces age, weight, height, gender and password of the
// token's owner. The name cannot change.
func (s *HealthService) UpdateProfile(_ context.Context, token string, in ports.ProfileInput) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("update_profile", err)
	}
	if err := validateBody(in.Age, in.WeightKg, in.HeightM, in.Password); err != nil {
		return s.observe("update_profile", err)
	}
	credential, err := s.passwords.Seal(in.Password)
	if err != nil {
		return s.observe("update_profile", err)
	}

	err = s.store.UpdateProfile(name, store.ProfileUpdate{
		Age:      in.Age,
		WeightKg: in.WeightKg,
		HeightM:  in.HeightM,
		Gender:   in.Gender,
	}, credential)
	return s.observe("update_profile", err)
}

// DeleteUser removes the token's owner with all records; the token stops
// resolving immediately.
func (s *HealthService) DeleteUser(_ context.Context, token string) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("delete_user", err)
	}
	if err := s.store.DeleteUser(name); err != nil {
		return s.observe("delete_user", err)
	}
	s.log.Info().Str("user", name).Msg("user deleted")
	return s.observe("delete_user", nil)
}

// BMI returns 0 when the profile lacks a usable height or weight.
func (s *HealthService) BMI(_ context.Context, token string) (float64, error) {
	name, err := s.resolve(token)
	if err != nil {
		return 0, err
	}
	return s.store.BMI(name)
}

func validateBody(age int, weightKg, heightM float64, password string) error {
	switch {
	case !validation.ValidAge(age):
		return invalid("age must be between 1 and 149")
	case !validation.ValidWeight(weightKg):
		return invalid("weightKg must be between 0 and 500")
	case !validation.ValidHeight(heightM):
		return invalid("heightM must be between 0 and 3")
	case !validation.ValidPassword(password):
		return invalid("password must be at least 4 characters")
	}
	return nil
}
