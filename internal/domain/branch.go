package domain

import (
	"context"
	"time"
)

// Branch 项目内的任务分组（与版本控制无关）
type Branch struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:191;not null" json:"name"`
	Description *string   `gorm:"size:1024" json:"description"`
	ProjectID   uint      `gorm:"index;not null" json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
}

func (Branch) TableName() string { return "branches" }

type BranchRepository interface {
	Create(ctx context.Context, b *Branch) error
	FindByID(ctx context.Context, id string) (*Branch, error)
	ListByProject(ctx context.Context, projectID uint) ([]Branch, error)
	Update(ctx context.Context, b *Branch) error
	// Delete 级联删除分支下的全部任务
	Delete(ctx context.Context, id string) error
}
