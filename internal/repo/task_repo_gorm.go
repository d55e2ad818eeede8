package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepo) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) ListByBranch(ctx context.Context, branchID string) ([]domain.Task, error) {
	var ts []domain.Task
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("created_at asc").
		Find(&ts).Error
	return ts, err
}

func (r *TaskRepo) ListByAssignee(ctx context.Context, userID uint) ([]domain.Task, error) {
	var ts []domain.Task
	err := r.db.WithContext(ctx).
		Where("assigned_to_id = ?", userID).
		Order("created_at asc").
		Find(&ts).Error
	return ts, err
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}

// SetState done/has_problem/problem_message 一条 UPDATE 落库
func (r *TaskRepo) SetState(ctx context.Context, id string, done, hasProblem bool, problemMessage *string) error {
	return r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"done":            done,
			"has_problem":     hasProblem,
			"problem_message": problemMessage,
		}).Error
}
