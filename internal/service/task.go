package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/core/cache"
	"github.com/SprintFox/TaskManager-Back/internal/domain"
	"github.com/SprintFox/TaskManager-Back/pkg/opt"
	"github.com/SprintFox/TaskManager-Back/pkg/utils"
)

type Tasks struct {
	guard
	branches domain.BranchRepository
	tasks    domain.TaskRepository
	users    domain.UserRepository
	skills   domain.SkillRepository

	cache *cache.Cache
	log   *zap.Logger
}

func NewTasks(
	projects domain.ProjectRepository,
	branches domain.BranchRepository,
	tasks domain.TaskRepository,
	users domain.UserRepository,
	skills domain.SkillRepository,
	c *cache.Cache,
	log *zap.Logger,
) *Tasks {
	return &Tasks{
		guard:    guard{projects: projects},
		branches: branches,
		tasks:    tasks,
		users:    users,
		skills:   skills,
		cache:    c,
		log:      log,
	}
}

type CreateTaskInput struct {
	Title          string
	Description    *string
	ParentID       *string
	AssignedTo     *uint
	SkillID        *uint
	StartDate      string // 宽松解析，解析失败按无日期
	EndDate        string
	File           *string
	Done           bool
	HasProblem     bool
	ProblemMessage *string
}

func (s *Tasks) Create(ctx context.Context, actor *domain.User, projectID uint, branchID string, in CreateTaskInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, domain.ErrValidation("task title is required")
	}
	b, err := s.loadBranch(ctx, projectID, branchID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, b.ProjectID, actor.ID); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, in.AssignedTo, in.SkillID, in.ParentID); err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:             utils.NewID(),
		Title:          in.Title,
		Description:    in.Description,
		ParentID:       in.ParentID,
		BranchID:       b.ID,
		AssignedToID:   in.AssignedTo,
		SkillID:        in.SkillID,
		Done:           in.Done,
		HasProblem:     in.HasProblem,
		ProblemMessage: in.ProblemMessage,
		StartDate:      ParseDate(in.StartDate),
		EndDate:        ParseDate(in.EndDate),
		File:           in.File,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, domain.ErrInternal("create task failed", err)
	}
	s.invalidate(ctx, b.ProjectID)
	s.log.Info("task created", zap.String("task_id", t.ID), zap.String("branch_id", b.ID))
	return t, nil
}

// EditTaskInput 字段级存在性语义：缺失不改，显式 null 清空，有值覆盖
type EditTaskInput struct {
	Title          opt.Opt[string]
	Description    opt.Opt[string]
	AssignedTo     opt.Opt[uint]
	SkillID        opt.Opt[uint]
	File           opt.Opt[string]
	ProblemMessage opt.Opt[string]
	StartDate      opt.Opt[string]
	EndDate        opt.Opt[string]
}

func (s *Tasks) Edit(ctx context.Context, actor *domain.User, projectID uint, branchID, taskID string, in EditTaskInput) (*domain.Task, error) {
	t, err := s.loadTask(ctx, projectID, branchID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, projectID, actor.ID); err != nil {
		return nil, err
	}

	if in.Title.Present() {
		v, ok := in.Title.Get()
		if !ok || v == "" {
			return nil, domain.ErrValidation("task title cannot be empty")
		}
		t.Title = v
	}
	applyOpt(in.Description, &t.Description)
	applyOpt(in.File, &t.File)
	applyOpt(in.ProblemMessage, &t.ProblemMessage)

	if in.AssignedTo.Present() {
		if v, ok := in.AssignedTo.Get(); ok {
			if err := s.checkRefs(ctx, &v, nil, nil); err != nil {
				return nil, err
			}
			t.AssignedToID = &v
		} else {
			t.AssignedToID = nil
		}
	}
	if in.SkillID.Present() {
		if v, ok := in.SkillID.Get(); ok {
			if err := s.checkRefs(ctx, nil, &v, nil); err != nil {
				return nil, err
			}
			t.SkillID = &v
		} else {
			t.SkillID = nil
		}
	}
	// 起止日期各自独立解析
	if in.StartDate.Present() {
		if v, ok := in.StartDate.Get(); ok {
			t.StartDate = ParseDate(v)
		} else {
			t.StartDate = nil
		}
	}
	if in.EndDate.Present() {
		if v, ok := in.EndDate.Get(); ok {
			t.EndDate = ParseDate(v)
		} else {
			t.EndDate = nil
		}
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, domain.ErrInternal("update task failed", err)
	}
	s.invalidate(ctx, projectID)
	return t, nil
}

func (s *Tasks) Delete(ctx context.Context, actor *domain.User, projectID uint, branchID, taskID string) error {
	t, err := s.loadTask(ctx, projectID, branchID, taskID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, projectID, actor.ID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		return domain.ErrInternal("delete task failed", err)
	}
	s.invalidate(ctx, projectID)
	s.log.Info("task deleted", zap.String("task_id", t.ID))
	return nil
}

// MarkDone done=true 同时清掉问题标记；problemMessage 无条件覆盖
func (s *Tasks) MarkDone(ctx context.Context, actor *domain.User, projectID uint, branchID, taskID string, problemMessage *string) error {
	return s.setState(ctx, actor, projectID, branchID, taskID, true, false, problemMessage)
}

// MarkProblem hasProblem=true 同时取消完成标记
func (s *Tasks) MarkProblem(ctx context.Context, actor *domain.User, projectID uint, branchID, taskID string, problemMessage *string) error {
	return s.setState(ctx, actor, projectID, branchID, taskID, false, true, problemMessage)
}

func (s *Tasks) setState(ctx context.Context, actor *domain.User, projectID uint, branchID, taskID string, done, hasProblem bool, problemMessage *string) error {
	t, err := s.loadTask(ctx, projectID, branchID, taskID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, projectID, actor.ID); err != nil {
		return err
	}
	if err := s.tasks.SetState(ctx, t.ID, done, hasProblem, problemMessage); err != nil {
		return domain.ErrInternal("update task state failed", err)
	}
	s.invalidate(ctx, projectID)
	return nil
}

func (s *Tasks) ListAssigned(ctx context.Context, actor *domain.User) ([]domain.TaskDTO, error) {
	ts, err := s.tasks.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, domain.ErrInternal("list tasks failed", err)
	}
	out := make([]domain.TaskDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, taskDTO(t))
	}
	return out, nil
}

// loadBranch / loadTask 归属不匹配一律 NotFound
func (s *Tasks) loadBranch(ctx context.Context, projectID uint, branchID string) (*domain.Branch, error) {
	b, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		return nil, domain.ErrInternal("lookup branch failed", err)
	}
	if b == nil || b.ProjectID != projectID {
		return nil, domain.ErrNotFound("branch not found")
	}
	return b, nil
}

func (s *Tasks) loadTask(ctx context.Context, projectID uint, branchID, taskID string) (*domain.Task, error) {
	if _, err := s.loadBranch(ctx, projectID, branchID); err != nil {
		return nil, err
	}
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, domain.ErrInternal("lookup task failed", err)
	}
	if t == nil || t.BranchID != branchID {
		return nil, domain.ErrNotFound("task not found")
	}
	return t, nil
}

func (s *Tasks) checkRefs(ctx context.Context, assignedTo, skillID *uint, parentID *string) error {
	if assignedTo != nil {
		u, err := s.users.FindByID(ctx, *assignedTo)
		if err != nil {
			return domain.ErrInternal("lookup assignee failed", err)
		}
		if u == nil {
			return domain.ErrNotFound("assignee not found")
		}
	}
	if skillID != nil {
		ss, err := s.skills.FindByIDs(ctx, []uint{*skillID})
		if err != nil {
			return domain.ErrInternal("lookup skill failed", err)
		}
		if len(ss) == 0 {
			return domain.ErrNotFound("skill not found")
		}
	}
	if parentID != nil {
		p, err := s.tasks.FindByID(ctx, *parentID)
		if err != nil {
			return domain.ErrInternal("lookup parent task failed", err)
		}
		if p == nil {
			return domain.ErrNotFound("parent task not found")
		}
	}
	return nil
}

func (s *Tasks) invalidate(ctx context.Context, projectID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, summaryKey(projectID))
	}
}

func applyOpt(o opt.Opt[string], dst **string) {
	if !o.Present() {
		return
	}
	if v, ok := o.Get(); ok {
		*dst = &v
	} else {
		*dst = nil
	}
}
