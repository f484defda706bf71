package userentity

import (
	"context"
	"time"
)

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Admin     bool       `json:"admin"`
	CreatedAt *time.Time `json:"createdAt"`
}

type Profile struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"omitempty,e164"`
}

type Store interface {
	GetUser(ctx context.Context, userID string) (User, error)
	CreateUser(ctx context.Context, user User) error
	UpdateProfile(ctx context.Context, userID string, profile Profile) (User, error)
	DeleteUser(ctx context.Context, userID string) error
}
