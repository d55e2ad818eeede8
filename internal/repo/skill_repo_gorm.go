package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type SkillRepo struct{ db *gorm.DB }

func NewSkillRepo(db *gorm.DB) *SkillRepo { return &SkillRepo{db: db} }

func (r *SkillRepo) Create(ctx context.Context, s *domain.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SkillRepo) FindByName(ctx context.Context, name string) (*domain.Skill, error) {
	var s domain.Skill
	err := r.db.WithContext(ctx).First(&s, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ss []domain.Skill
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ss).Error
	return ss, err
}

func (r *SkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	var ss []domain.Skill
	err := r.db.WithContext(ctx).Order("name asc").Find(&ss).Error
	return ss, err
}
