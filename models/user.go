package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     *string   `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type CreateUserInput struct {
	Email        string  `json:"email" binding:"required,email"`
	PasswordHash string  `json:"password_hash" binding:"required"`
	FullName     *string `json:"full_name"`
}

type UpdateUserInput struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}
