package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type ProjectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(&domain.ProjectMember{
			ProjectID: p.ID,
			UserID:    ownerID,
			Role:      domain.ProjectRoleOwner,
		}).Error
	})
}

func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) ListByMember(ctx context.Context, userID uint) ([]domain.Project, error) {
	var ps []domain.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_members pm ON pm.project_id = projects.id").
		Where("pm.user_id = ?", userID).
		Order("projects.created_at desc").
		Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete 显式级联：任务 → 分支 → 成员行 → 项目，单事务
func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("branch_id IN (?)",
			tx.Model(&domain.Branch{}).Select("id").Where("project_id = ?", id),
		).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&domain.Branch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&domain.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Project{}, "id = ?", id).Error
	})
}

func (r *ProjectRepo) AddMember(ctx context.Context, projectID, userID uint, role string) error {
	return r.db.WithContext(ctx).Create(&domain.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}).Error
}

func (r *ProjectRepo) RemoveMember(ctx context.Context, projectID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&domain.ProjectMember{}).Error
}

func (r *ProjectRepo) IsMember(ctx context.Context, projectID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *ProjectRepo) Members(ctx context.Context, projectID uint) ([]domain.MemberInfo, error) {
	var rows []domain.ProjectMember
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.MemberInfo, 0, len(rows))
	for _, m := range rows {
		var u domain.User
		if err := r.db.WithContext(ctx).First(&u, "id = ?", m.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, domain.MemberInfo{User: u, Role: m.Role})
	}
	return out, nil
}
