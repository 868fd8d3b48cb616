// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
)

var (
	ErrInvalidPassword = errors.New("비밀번호가 일치하지 않습니다.")
	ErrMissingPassword = errors.New("password required")
)

// DefaultPassword is used when no admin password is configured.
const DefaultPassword = "admin1234"

// Authenticator decides whether a credential grants admin access.
type Authenticator interface {
	Authenticate(credential string) error
}

// PasswordGate compares the credential with one shared password. There is no
// token, expiry or per-user identity.
type PasswordGate struct {
	password string
}

// NewPasswordGate returns a gate for password, falling back to
// DefaultPassword when it is empty.
func NewPasswordGate(password string) *PasswordGate {
	if password == "" {
		password = DefaultPassword
	}
	return &PasswordGate{password: password}
}

// UsesDefault reports whether the gate fell back to DefaultPassword.
func (g *PasswordGate) UsesDefault() bool {
	return g.password == DefaultPassword
}

func (g *PasswordGate) Authenticate(credential string) error {
	if credential == "" {
		return ErrMissingPassword
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(g.password)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
