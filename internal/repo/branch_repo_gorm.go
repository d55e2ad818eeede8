package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type BranchRepo struct{ db *gorm.DB }

func NewBranchRepo(db *gorm.DB) *BranchRepo { return &BranchRepo{db: db} }

func (r *BranchRepo) Create(ctx context.Context, b *domain.Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BranchRepo) FindByID(ctx context.Context, id string) (*domain.Branch, error) {
	var b domain.Branch
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepo) ListByProject(ctx context.Context, projectID uint) ([]domain.Branch, error) {
	var bs []domain.Branch
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at asc").
		Find(&bs).Error
	return bs, err
}

func (r *BranchRepo) Update(ctx context.Context, b *domain.Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Delete 分支与其任务同事务删除
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("branch_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Branch{}, "id = ?", id).Error
	})
}
