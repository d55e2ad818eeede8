package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
	"github.com/SprintFox/TaskManager-Back/pkg/opt"
)

// scenario 一个项目 + 一个分支 + 项目所有者
type scenario struct {
	*env
	owner  *domain.User
	proj   *domain.Project
	branch *domain.Branch
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	e := newEnv()
	ctx := context.Background()

	owner := e.seedUser("alice", domain.RoleUser)
	proj, err := e.projects.Create(ctx, owner, ProjectInput{Name: "demo"})
	require.NoError(t, err)
	branch, err := e.branches.Create(ctx, owner, proj.ID, "sprint-1")
	require.NoError(t, err)

	return &scenario{env: e, owner: owner, proj: proj, branch: branch}
}

func TestTasksCreate(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	t.Run("title required", func(t *testing.T) {
		_, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("dates parsed independently", func(t *testing.T) {
		task, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{
			Title:     "deploy",
			StartDate: "not-a-date",
			EndDate:   "01.05.2024",
		})
		require.NoError(t, err)
		assert.Nil(t, task.StartDate)
		require.NotNil(t, task.EndDate)
		assert.Equal(t, 1, task.EndDate.Day())
		assert.Equal(t, time.May, task.EndDate.Month())
	})

	t.Run("unknown assignee", func(t *testing.T) {
		nobody := uint(9999)
		_, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{
			Title:      "x",
			AssignedTo: &nobody,
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		outsider := s.seedUser("mallory", domain.RoleUser)
		_, err := s.tasks.Create(ctx, outsider, s.proj.ID, s.branch.ID, CreateTaskInput{Title: "x"})
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})

	t.Run("branch from another project reads as missing", func(t *testing.T) {
		other, err := s.projects.Create(ctx, s.owner, ProjectInput{Name: "other"})
		require.NoError(t, err)
		_, err = s.tasks.Create(ctx, s.owner, other.ID, s.branch.ID, CreateTaskInput{Title: "x"})
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestTasksMarkDoneAndProblem(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	task, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{Title: "ship it"})
	require.NoError(t, err)

	reload := func() domain.Task {
		got, err := (&fakeTasks{s.db}).FindByID(ctx, task.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		return *got
	}

	// 标记问题：done 归零，消息写入
	require.NoError(t, s.tasks.MarkProblem(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, strp("ci is red")))
	got := reload()
	assert.False(t, got.Done)
	assert.True(t, got.HasProblem)
	require.NotNil(t, got.ProblemMessage)
	assert.Equal(t, "ci is red", *got.ProblemMessage)

	// 标记完成：问题位清掉，消息被无条件覆盖（这里是 nil）
	require.NoError(t, s.tasks.MarkDone(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, nil))
	got = reload()
	assert.True(t, got.Done)
	assert.False(t, got.HasProblem)
	assert.Nil(t, got.ProblemMessage)

	// 幂等
	require.NoError(t, s.tasks.MarkDone(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, nil))
	got = reload()
	assert.True(t, got.Done)
	assert.False(t, got.HasProblem)

	t.Run("non-member cannot flip state", func(t *testing.T) {
		outsider := s.seedUser("eve", domain.RoleUser)
		err := s.tasks.MarkProblem(ctx, outsider, s.proj.ID, s.branch.ID, task.ID, nil)
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})
}

func TestTasksEditFieldPresence(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	task, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{
		Title:       "write docs",
		Description: strp("draft"),
		EndDate:     "2024-05-01",
	})
	require.NoError(t, err)

	t.Run("absent fields stay untouched", func(t *testing.T) {
		got, err := s.tasks.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, EditTaskInput{
			Title: opt.Of("write better docs"),
		})
		require.NoError(t, err)
		assert.Equal(t, "write better docs", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, "draft", *got.Description)
		assert.NotNil(t, got.EndDate)
	})

	t.Run("explicit null clears", func(t *testing.T) {
		got, err := s.tasks.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, EditTaskInput{
			Description: opt.Null[string](),
			EndDate:     opt.Null[string](),
		})
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.EndDate)
	})

	t.Run("null title is rejected", func(t *testing.T) {
		_, err := s.tasks.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, EditTaskInput{
			Title: opt.Null[string](),
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("assignee set and cleared", func(t *testing.T) {
		bob := s.seedUser("bob", domain.RoleUser)
		got, err := s.tasks.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, EditTaskInput{
			AssignedTo: opt.Of(bob.ID),
		})
		require.NoError(t, err)
		require.NotNil(t, got.AssignedToID)
		assert.Equal(t, bob.ID, *got.AssignedToID)

		got, err = s.tasks.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, EditTaskInput{
			AssignedTo: opt.Null[uint](),
		})
		require.NoError(t, err)
		assert.Nil(t, got.AssignedToID)
	})

	t.Run("unparseable date value means no date", func(t *testing.T) {
		got, err := s.tasks.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, EditTaskInput{
			EndDate: opt.Of("whenever"),
		})
		require.NoError(t, err)
		assert.Nil(t, got.EndDate)
	})
}

func TestTasksDeleteAndList(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	bob := s.seedUser("bob", domain.RoleUser)
	task, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{
		Title:      "review",
		AssignedTo: &bob.ID,
	})
	require.NoError(t, err)

	assigned, err := s.tasks.ListAssigned(ctx, bob)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, task.ID, assigned[0].TaskID)

	require.NoError(t, s.tasks.Delete(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID))

	err = s.tasks.Delete(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	assigned, err = s.tasks.ListAssigned(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}
