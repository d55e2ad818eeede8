package domain

import (
	"context"
	"time"
)

type Task struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	Title          string     `gorm:"column:name;size:191;not null" json:"title"`
	Description    *string    `gorm:"size:2048" json:"description"`
	ParentID       *string    `gorm:"size:36;index" json:"parentId"`
	BranchID       string     `gorm:"size:36;index;not null" json:"branchId"`
	AssignedToID   *uint      `gorm:"index" json:"assignedTo"`
	SkillID        *uint      `json:"skillId"`
	Done           bool       `gorm:"not null;default:false" json:"done"`
	HasProblem     bool       `gorm:"not null;default:false" json:"hasProblem"`
	ProblemMessage *string    `gorm:"size:1024" json:"problemMessage"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	File           *string    `gorm:"size:255" json:"file"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Task) TableName() string { return "tasks" }

// Delayed 截止日期已过且未完成；派生属性，不落库
func (t *Task) Delayed(asOf time.Time) bool {
	return t.EndDate != nil && t.EndDate.Before(asOf) && !t.Done
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	ListByBranch(ctx context.Context, branchID string) ([]Task, error)
	ListByAssignee(ctx context.Context, userID uint) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
	// SetState 单条 UPDATE 同时写 done/has_problem/problem_message，
	// 保证并发读者看不到半程状态
	SetState(ctx context.Context, id string, done, hasProblem bool, problemMessage *string) error
}
