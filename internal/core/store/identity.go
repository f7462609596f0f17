package store

import (
	"slices"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// CredentialCheck reports whether the stored credential accepts the attempt
// it was built for.
type CredentialCheck func(stored string) bool

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Age      int
	WeightKg float64
	HeightM  float64
	Gender   string
}

// Register creates the identity and binds a fresh token to it.
func (s *Store) Register(profile domain.UserProfile, credential string) (string, error) {
	var token string
	err := s.mutate(func() error {
		if _, exists := s.users[profile.Name]; exists {
			return domain.ErrUserExists
		}
		tok, err := s.mintLocked()
		if err != nil {
			return err
		}
		s.users[profile.Name] = &identity{profile: profile, credential: credential, token: tok}
		s.order = append(s.order, profile.Name)
		s.tokens[tok] = profile.Name
		token = tok
		return nil
	})
	return token, err
}

// Login returns the identity's current token, minting one when none is
// bound. Tokens are not rotated on repeated logins. check runs without the
// store lock held.
func (s *Store) Login(name string, check CredentialCheck) (string, error) {
	s.mu.RLock()
	u, ok := s.users[name]
	var stored string
	if ok {
		stored = u.credential
	}
	s.mu.RUnlock()

	if !ok || !check(stored) {
		return "", domain.ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The identity may have been deleted or its password changed while
	// check ran.
	if cur, ok := s.users[name]; !ok || cur != u || cur.credential != stored {
		return "", domain.ErrInvalidCredentials
	}
	if u.token != "" {
		return u.token, nil
	}
	tok, err := s.mintLocked()
	if err != nil {
		return "", err
	}
	u.token = tok
	s.tokens[tok] = name
	s.commitLocked()
	return tok, nil
}

// Logout unbinds token. The identity keeps its records.
func (s *Store) Logout(token string) error {
	return s.mutate(func() error {
		name, ok := s.resolveLocked(token)
		if !ok {
			return domain.ErrUnauthorized
		}
		delete(s.tokens, token)
		s.users[name].token = ""
		return nil
	})
}

// Resolve maps a token to the user name it is bound to.
func (s *Store) Resolve(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(token)
}

func (s *Store) resolveLocked(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	name, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if _, ok := s.users[name]; !ok {
		return "", false
	}
	return name, true
}

// Profile returns the stored profile of name.
func (s *Store) Profile(name string) (domain.UserProfile, error) {
	var p domain.UserProfile
	err := s.read(name, func() error {
		p = s.users[name].profile
		return nil
	})
	return p, err
}

// UpdateProfile overwrites the mutable profile fields and the credential.
func (s *Store) UpdateProfile(name string, upd ProfileUpdate, credential string) error {
	return s.write(name, func() error {
		u := s.users[name]
		u.profile.Age = upd.Age
		u.profile.WeightKg = upd.WeightKg
		u.profile.HeightM = upd.HeightM
		u.profile.Gender = upd.Gender
		u.credential = credential
		return nil
	})
}

// DeleteUser removes the identity, its token binding and every record it
// owns.
func (s *Store) DeleteUser(name string) error {
	return s.write(name, func() error {
		if tok := s.users[name].token; tok != "" {
			delete(s.tokens, tok)
		}
		delete(s.users, name)
		s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
		s.waters.drop(name)
		s.sleeps.drop(name)
		s.activities.drop(name)
		delete(s.categories, name)
		return nil
	})
}

// BMI computes the body mass index from the stored profile.
func (s *Store) BMI(name string) (float64, error) {
	p, err := s.Profile(name)
	if err != nil {
		return 0, err
	}
	return p.BMI(), nil
}

// mintLocked draws tokens until one is not already bound.
func (s *Store) mintLocked() (string, error) {
	for {
		tok, err := s.newToken()
		if err != nil {
			return "", err
		}
		if _, taken := s.tokens[tok]; !taken {
			return tok, nil
		}
	}
}
