package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/core/cache"
	"github.com/SprintFox/TaskManager-Back/internal/domain"
	"github.com/SprintFox/TaskManager-Back/pkg/utils"
)

type Branches struct {
	guard
	branches domain.BranchRepository

	cache *cache.Cache
	log   *zap.Logger
}

func NewBranches(projects domain.ProjectRepository, branches domain.BranchRepository, c *cache.Cache, log *zap.Logger) *Branches {
	return &Branches{
		guard:    guard{projects: projects},
		branches: branches,
		cache:    c,
		log:      log,
	}
}

func (s *Branches) Create(ctx context.Context, actor *domain.User, projectID uint, name string) (*domain.Branch, error) {
	if name == "" {
		return nil, domain.ErrValidation("branch name is required")
	}
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, domain.ErrInternal("lookup project failed", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound("project not found")
	}
	if err := s.requireMember(ctx, p.ID, actor.ID); err != nil {
		return nil, err
	}
	b := &domain.Branch{
		ID:        utils.NewID(),
		Name:      name,
		ProjectID: p.ID,
		Active:    true,
	}
	if err := s.branches.Create(ctx, b); err != nil {
		return nil, domain.ErrInternal("create branch failed", err)
	}
	s.invalidate(ctx, p.ID)
	s.log.Info("branch created", zap.String("branch_id", b.ID), zap.Uint("project_id", p.ID))
	return b, nil
}

func (s *Branches) Edit(ctx context.Context, actor *domain.User, projectID uint, branchID, name string, description *string) (*domain.Branch, error) {
	b, err := s.loadInProject(ctx, projectID, branchID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, b.ProjectID, actor.ID); err != nil {
		return nil, err
	}
	// 两个字段都覆盖，description 传 nil 即清空
	b.Name = name
	b.Description = description
	if err := s.branches.Update(ctx, b); err != nil {
		return nil, domain.ErrInternal("update branch failed", err)
	}
	s.invalidate(ctx, b.ProjectID)
	return b, nil
}

func (s *Branches) Delete(ctx context.Context, actor *domain.User, projectID uint, branchID string) error {
	b, err := s.loadInProject(ctx, projectID, branchID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, b.ProjectID, actor.ID); err != nil {
		return err
	}
	if err := s.branches.Delete(ctx, b.ID); err != nil {
		return domain.ErrInternal("delete branch failed", err)
	}
	s.invalidate(ctx, b.ProjectID)
	s.log.Info("branch deleted", zap.String("branch_id", b.ID), zap.Uint("project_id", b.ProjectID))
	return nil
}

// loadInProject 分支不属于该项目时按 NotFound 处理，不暴露归属信息
func (s *Branches) loadInProject(ctx context.Context, projectID uint, branchID string) (*domain.Branch, error) {
	b, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		return nil, domain.ErrInternal("lookup branch failed", err)
	}
	if b == nil || b.ProjectID != projectID {
		return nil, domain.ErrNotFound("branch not found")
	}
	return b, nil
}

func (s *Branches) invalidate(ctx context.Context, projectID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, summaryKey(projectID))
	}
}
