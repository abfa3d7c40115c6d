package store

import (
	"context"
)

// User is the stored credential record. Created once at registration and
// never mutated afterwards.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null"`
	Salt         string  `gorm:"not null"`
	FullName     *string `gorm:"type:text"`
}

// TableName sets the table name for the User model.
func (User) TableName() string { return "users" }

// DisplayName returns the user's full name, or an empty string when unset.
func (u *User) DisplayName() string {
	if u.FullName == nil {
		return ""
	}
	return *u.FullName
}

// CreateUser inserts a new credential record. A uniqueness violation on the
// email column is returned as ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err)
	}
	return nil
}

// FindUserByEmail looks up a credential record by its unique email.
// Returns ErrNotFound when no record exists.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
