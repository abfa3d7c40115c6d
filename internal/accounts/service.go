// Package accounts implements the register, login, and profile use-cases,
// composing the password hasher and token service against the user store.
package accounts

import (
	"context"
	"errors"

	apperrors "github.com/skillsenselab/authsvc/internal/errors"
	"github.com/skillsenselab/authsvc/internal/logger"
	"github.com/skillsenselab/authsvc/internal/password"
	"github.com/skillsenselab/authsvc/internal/store"
	"github.com/skillsenselab/authsvc/internal/token"
)

// Account is the public projection of a credential record.
type Account struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Session is the result of a successful login.
type Session struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

// Service implements the account use-cases.
type Service struct {
	store  *store.Store
	hasher *password.Hasher
	tokens *token.Service
	log    *logger.Logger
}

// NewService creates the accounts service.
func NewService(st *store.Store, hasher *password.Hasher, tokens *token.Service, log *logger.Logger) *Service {
	return &Service{
		store:  st,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("accounts"),
	}
}

// Register hashes the password and inserts a new credential record. No
// pre-insert existence check is made; the store's uniqueness constraint is
// the single authority, and a violation maps to a generic bad-request so the
// response does not confirm whether the address is taken.
func (s *Service) Register(ctx context.Context, email, plaintext, fullName string) (*Account, error) {
	out, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.log.Error("Password hashing failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.Internal(err)
	}

	user := &store.User{
		Email:        email,
		PasswordHash: out.Encoded,
		Salt:         out.Salt,
	}
	if fullName != "" {
		user.FullName = &fullName
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperrors.Validation("Invalid data")
		}
		s.log.Error("User insert failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.DatabaseError(err)
	}

	return &Account{Email: user.Email, FullName: user.DisplayName()}, nil
}

// Login verifies the credentials and issues an identity token. An unknown
// email and a wrong password produce the same error so the two cases are
// indistinguishable to the client.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*Session, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("Email or password mismatch")
		}
		s.log.Error("User lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.DatabaseError(err)
	}

	// A malformed stored hash is deliberately treated as a mismatch.
	if err := s.hasher.Verify(plaintext, user.PasswordHash); err != nil {
		return nil, apperrors.Unauthorized("Email or password mismatch")
	}

	raw, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.log.Error("Token issuance failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.Internal(err)
	}

	return &Session{Email: user.Email, FullName: user.DisplayName(), Token: raw}, nil
}

// Profile returns the account for a verified identity. A missing record
// behind a valid token is an integrity fault and surfaces as an internal
// error.
func (s *Service) Profile(ctx context.Context, email string) (*Account, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Error("Profile lookup miss for valid token", map[string]interface{}{"email": email})
			return nil, apperrors.Internal(err)
		}
		s.log.Error("User lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.DatabaseError(err)
	}

	return &Account{Email: user.Email, FullName: user.DisplayName()}, nil
}
