package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Login        string    `gorm:"uniqueIndex;size:20;not null" json:"login"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:USER" json:"globalRole"` // "USER"/"ADMIN"
	FullName     *string   `gorm:"size:128" json:"fullName"`
	AvatarURL    *string   `gorm:"size:255" json:"avatarUrl"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`

	Skills []Skill `gorm:"many2many:user_skills" json:"-"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	ReplaceSkills(ctx context.Context, u *User, skills []Skill) error
}
