package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AuthResult is what a successful signup or login yields: a fresh bearer
// credential plus the user document it asserts.
type AuthResult struct {
	Token string
	User  *UserRecord
}

// AccountService implements signup and login on top of the user store,
// the password hasher and the token service.
type AccountService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenService

	now func() int64 // epoch seconds
}

func NewAccountService(users UserRepository, hasher PasswordHasher, tokens *TokenService) *AccountService {
	return &AccountService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    func() int64 { return time.Now().Unix() },
	}
}

// Signup creates a new user. Required fields must be non-empty
// (ErrMissingFields) and the email must not be registered yet
// (ErrDuplicateEmail). The duplicate check and the insert are two separate
// store calls; no unique index is assumed at this layer, so concurrent
// signups with one email can race.
func (s *AccountService) Signup(ctx context.Context, nombre, email, pass string) (*AuthResult, error) {
	if nombre == "" || email == "" || pass == "" {
		return nil, ErrMissingFields
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("signup lookup failed: %w", err)
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &UserRecord{
		DisplayName: nombre,
		Email:       email,
		Password:    hash,
		SignupDate:  now,
		LastLogin:   now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a fresh token. An unregistered
// email yields ErrUnknownEmail before any password comparison; a wrong
// password yields ErrPasswordMismatch. On success lastLogin is advanced to
// the current time and the returned user reflects that same login event.
// A failed lastLogin write fails the whole login.
func (s *AccountService) Login(ctx context.Context, email, pass string) (*AuthResult, error) {
	if email == "" || pass == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if !s.hasher.Compare(pass, user.Password) {
		return nil, ErrPasswordMismatch
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID.Hex(), now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = now

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
