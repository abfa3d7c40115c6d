package store

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"

	"github.com/skillsenselab/authsvc/internal/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	log := logger.New(&logger.Config{Level: "error"}, "store-test")
	// A single connection keeps the in-memory database alive for the whole test.
	s, err := Open(context.Background(), sqlite.Open(":memory:"), Config{
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		AutoMigrate:  true,
	}, log)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndFindUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	name := "U"
	user := &User{
		Email:        "u@x.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Salt:         "c2FsdA",
		FullName:     &name,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned ID after insert")
	}

	found, err := s.FindUserByEmail(ctx, "u@x.com")
	if err != nil {
		t.Fatalf("FindUserByEmail failed: %v", err)
	}
	if found.Email != "u@x.com" || found.DisplayName() != "U" {
		t.Errorf("unexpected record: %+v", found)
	}
	if found.PasswordHash != user.PasswordHash || found.Salt != user.Salt {
		t.Error("stored credentials do not match")
	}
}

func TestFindUserNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.FindUserByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := &User{Email: "dup@x.com", PasswordHash: "h1", Salt: "s1"}
	if err := s.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	second := &User{Email: "dup@x.com", PasswordHash: "h2", Salt: "s2"}
	if err := s.CreateUser(ctx, second); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestDisplayNameNil(t *testing.T) {
	u := &User{Email: "x@y.co", PasswordHash: "h", Salt: "s"}
	if got := u.DisplayName(); got != "" {
		t.Errorf("expected empty display name, got %q", got)
	}
}

func TestPing(t *testing.T) {
	s := openTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
