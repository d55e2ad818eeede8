package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type Skills struct {
	skills domain.SkillRepository
	log    *zap.Logger
}

func NewSkills(skills domain.SkillRepository, log *zap.Logger) *Skills {
	return &Skills{skills: skills, log: log}
}

func (s *Skills) List(ctx context.Context) ([]domain.Skill, error) {
	ss, err := s.skills.List(ctx)
	if err != nil {
		return nil, domain.ErrInternal("list skills failed", err)
	}
	return ss, nil
}

// Create 仅全局 ADMIN
func (s *Skills) Create(ctx context.Context, actor *domain.User, name string) (*domain.Skill, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden("not authorized")
	}
	if name == "" {
		return nil, domain.ErrValidation("skill name is required")
	}
	existing, err := s.skills.FindByName(ctx, name)
	if err != nil {
		return nil, domain.ErrInternal("lookup skill failed", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("skill already exists")
	}
	sk := &domain.Skill{Name: name, Type: domain.SkillTypeGeneral}
	if err := s.skills.Create(ctx, sk); err != nil {
		return nil, domain.ErrInternal("create skill failed", err)
	}
	s.log.Info("skill created", zap.String("name", sk.Name), zap.String("by", actor.Login))
	return sk, nil
}
