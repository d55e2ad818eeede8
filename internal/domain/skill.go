package domain

import (
	"context"
	"time"
)

const SkillTypeGeneral = "GENERAL"

type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Type      string    `gorm:"size:32;not null;default:GENERAL" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Skill) TableName() string { return "skills" }

type SkillRepository interface {
	Create(ctx context.Context, s *Skill) error
	FindByName(ctx context.Context, name string) (*Skill, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Skill, error)
	List(ctx context.Context) ([]Skill, error)
}
