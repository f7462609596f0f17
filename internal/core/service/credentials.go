package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// PasswordScheme is the only place passwords are turned into stored
// credentials and compared against them.
type PasswordScheme interface {
	Seal(password string) (string, error)
	Match(stored, password string) bool
}

// NewPasswordScheme returns the scheme registered under name.
func NewPasswordScheme(name string) (PasswordScheme, error) {
	switch name {
	case "", SchemePlaintext:
		return plaintextScheme{}, nil
	case SchemeBcrypt:
		return bcryptScheme{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}

// plaintextScheme stores the password as given, which keeps the snapshot
// format readable by older deployments.
type plaintextScheme struct{}

func (plaintextScheme) Seal(password string) (string, error) {
	return password, nil
}

func (plaintextScheme) Match(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type bcryptScheme struct {
	cost int
}

func (b bcryptScheme) Seal(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (bcryptScheme) Match(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
