package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/core/cache"
	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type Projects struct {
	guard
	projects domain.ProjectRepository
	branches domain.BranchRepository
	tasks    domain.TaskRepository
	users    domain.UserRepository

	cache      *cache.Cache // 可为 nil（未启用 redis）
	summaryTTL time.Duration
	log        *zap.Logger
}

func NewProjects(
	projects domain.ProjectRepository,
	branches domain.BranchRepository,
	tasks domain.TaskRepository,
	users domain.UserRepository,
	c *cache.Cache,
	summaryTTL time.Duration,
	log *zap.Logger,
) *Projects {
	return &Projects{
		guard:      guard{projects: projects},
		projects:   projects,
		branches:   branches,
		tasks:      tasks,
		users:      users,
		cache:      c,
		summaryTTL: summaryTTL,
		log:        log,
	}
}

type ProjectInput struct {
	Name        string
	Description string
	AvatarURL   *string
}

func (s *Projects) Create(ctx context.Context, actor *domain.User, in ProjectInput) (*domain.Project, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation("project name is required")
	}
	p := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		AvatarURL:   in.AvatarURL,
		IsActive:    true,
		CreatedBy:   actor.ID,
	}
	if err := s.projects.Create(ctx, p, actor.ID); err != nil {
		return nil, domain.ErrInternal("create project failed", err)
	}
	s.log.Info("project created", zap.Uint("project_id", p.ID), zap.String("by", actor.Login))
	return p, nil
}

func (s *Projects) List(ctx context.Context, actor *domain.User) ([]domain.Project, error) {
	ps, err := s.projects.ListByMember(ctx, actor.ID)
	if err != nil {
		return nil, domain.ErrInternal("list projects failed", err)
	}
	return ps, nil
}

func (s *Projects) Edit(ctx context.Context, actor *domain.User, projectID uint, in ProjectInput) (*domain.Project, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, p.ID, actor.ID); err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.AvatarURL = in.AvatarURL
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, domain.ErrInternal("update project failed", err)
	}
	return p, nil
}

func (s *Projects) Delete(ctx context.Context, actor *domain.User, projectID uint) error {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, p.ID, actor.ID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, p.ID); err != nil {
		return domain.ErrInternal("delete project failed", err)
	}
	s.invalidateSummary(ctx, p.ID)
	s.log.Info("project deleted", zap.Uint("project_id", p.ID), zap.String("by", actor.Login))
	return nil
}

func (s *Projects) AddMember(ctx context.Context, actor *domain.User, projectID, userID uint) error {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, p.ID, actor.ID); err != nil {
		return err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.ErrInternal("lookup user failed", err)
	}
	if u == nil {
		return domain.ErrNotFound("user not found")
	}
	already, err := s.projects.IsMember(ctx, p.ID, u.ID)
	if err != nil {
		return domain.ErrInternal("membership check failed", err)
	}
	if already {
		return domain.ErrConflict("user is already a member of this project")
	}
	if err := s.projects.AddMember(ctx, p.ID, u.ID, domain.ProjectRoleMember); err != nil {
		return domain.ErrInternal("add member failed", err)
	}
	s.log.Info("member added", zap.Uint("project_id", p.ID), zap.Uint("user_id", u.ID))
	return nil
}

func (s *Projects) RemoveMember(ctx context.Context, actor *domain.User, projectID, userID uint) error {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, p.ID, actor.ID); err != nil {
		return err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.ErrInternal("lookup user failed", err)
	}
	if u == nil {
		return domain.ErrNotFound("user not found")
	}
	member, err := s.projects.IsMember(ctx, p.ID, u.ID)
	if err != nil {
		return domain.ErrInternal("membership check failed", err)
	}
	if !member {
		return domain.ErrValidation("user is not a member of this project")
	}
	if err := s.projects.RemoveMember(ctx, p.ID, u.ID); err != nil {
		return domain.ErrInternal("remove member failed", err)
	}
	s.log.Info("member removed", zap.Uint("project_id", p.ID), zap.Uint("user_id", u.ID))
	return nil
}

// Summary 按分支统计并求项目级汇总，短 TTL 缓存，写路径失效
func (s *Projects) Summary(ctx context.Context, actor *domain.User, projectID uint, asOf time.Time) (*domain.ProjectSummary, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, p.ID, actor.ID); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return s.computeSummary(ctx, p.ID, asOf)
	}
	return cache.GetOrLoadJSON[domain.ProjectSummary](s.cache, ctx, summaryKey(p.ID), s.summaryTTL,
		func(ctx context.Context) (*domain.ProjectSummary, error) {
			return s.computeSummary(ctx, p.ID, asOf)
		})
}

// Info 项目详情：基础字段 + 成员列表 + 统计汇总
func (s *Projects) Info(ctx context.Context, actor *domain.User, projectID uint, asOf time.Time) (*domain.ProjectInfo, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, p.ID, actor.ID); err != nil {
		return nil, err
	}
	sum, err := s.Summary(ctx, actor, projectID, asOf)
	if err != nil {
		return nil, err
	}
	members, err := s.projects.Members(ctx, p.ID)
	if err != nil {
		return nil, domain.ErrInternal("list members failed", err)
	}
	info := &domain.ProjectInfo{
		ProjectID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		AvatarURL:   p.AvatarURL,
		Members:     make([]domain.ProjectMemberDTO, 0, len(members)),
		Summary:     *sum,
	}
	for _, m := range members {
		info.Members = append(info.Members, domain.ProjectMemberDTO{
			UserID:    m.User.ID,
			Login:     m.User.Login,
			Email:     m.User.Email,
			Role:      m.Role,
			AvatarURL: m.User.AvatarURL,
		})
	}
	return info, nil
}

func (s *Projects) computeSummary(ctx context.Context, projectID uint, asOf time.Time) (*domain.ProjectSummary, error) {
	branches, err := s.branches.ListByProject(ctx, projectID)
	if err != nil {
		return nil, domain.ErrInternal("list branches failed", err)
	}
	tasksByBranch := make(map[string][]domain.Task, len(branches))
	for _, b := range branches {
		ts, err := s.tasks.ListByBranch(ctx, b.ID)
		if err != nil {
			return nil, domain.ErrInternal("list tasks failed", err)
		}
		tasksByBranch[b.ID] = ts
	}
	sum := Summarize(projectID, branches, tasksByBranch, asOf)
	return &sum, nil
}

func (s *Projects) load(ctx context.Context, projectID uint) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, domain.ErrInternal("lookup project failed", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound("project not found")
	}
	return p, nil
}

func (s *Projects) invalidateSummary(ctx context.Context, projectID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, summaryKey(projectID))
	}
}
