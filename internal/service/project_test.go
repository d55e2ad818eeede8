package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

func TestProjectsCreateAndList(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice := e.seedUser("alice", domain.RoleUser)
	bob := e.seedUser("bob", domain.RoleUser)

	_, err := e.projects.Create(ctx, alice, ProjectInput{})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	p, err := e.projects.Create(ctx, alice, ProjectInput{Name: "demo", Description: "d"})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, alice.ID, p.CreatedBy)

	// 创建者自动成为成员，旁人看不到
	mine, err := e.projects.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := e.projects.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestProjectsMembership(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice := e.seedUser("alice", domain.RoleUser)
	bob := e.seedUser("bob", domain.RoleUser)

	p, err := e.projects.Create(ctx, alice, ProjectInput{Name: "demo"})
	require.NoError(t, err)

	// 非成员先被拒，加入后放行
	_, err = e.projects.Summary(ctx, bob, p.ID, time.Now())
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	require.NoError(t, e.projects.AddMember(ctx, alice, p.ID, bob.ID))

	_, err = e.projects.Summary(ctx, bob, p.ID, time.Now())
	require.NoError(t, err)

	t.Run("adding twice conflicts", func(t *testing.T) {
		err := e.projects.AddMember(ctx, alice, p.ID, bob.ID)
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("adding unknown user", func(t *testing.T) {
		err := e.projects.AddMember(ctx, alice, p.ID, 9999)
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("removing restores the fence", func(t *testing.T) {
		require.NoError(t, e.projects.RemoveMember(ctx, alice, p.ID, bob.ID))

		_, err := e.projects.Summary(ctx, bob, p.ID, time.Now())
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

		err = e.projects.RemoveMember(ctx, alice, p.ID, bob.ID)
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := e.projects.Summary(ctx, alice, 9999, time.Now())
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestProjectsSummaryDelayedLifecycle(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	task, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{
		Title:   "overdue",
		EndDate: yesterday,
	})
	require.NoError(t, err)

	sum, err := s.projects.Summary(ctx, s.owner, s.proj.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Statistics.TaskCount)
	assert.Equal(t, 1, sum.Statistics.DelayedTasksCount)
	assert.Equal(t, 0, sum.Statistics.CompletedTasksCount)

	require.NoError(t, s.tasks.MarkDone(ctx, s.owner, s.proj.ID, s.branch.ID, task.ID, nil))

	sum, err = s.projects.Summary(ctx, s.owner, s.proj.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Statistics.DelayedTasksCount)
	assert.Equal(t, 1, sum.Statistics.CompletedTasksCount)
}

func TestProjectsInfo(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	bob := s.seedUser("bob", domain.RoleUser)
	require.NoError(t, s.projects.AddMember(ctx, s.owner, s.proj.ID, bob.ID))

	info, err := s.projects.Info(ctx, s.owner, s.proj.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, s.proj.ID, info.ProjectID)
	assert.Equal(t, "demo", info.Name)
	require.Len(t, info.Members, 2)

	roles := map[string]string{}
	for _, m := range info.Members {
		roles[m.Login] = m.Role
	}
	assert.Equal(t, domain.ProjectRoleOwner, roles["alice"])
	assert.Equal(t, domain.ProjectRoleMember, roles["bob"])
	assert.Len(t, info.Summary.Branches, 1)
}

func TestProjectsDeleteCascades(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	task, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	require.NoError(t, s.projects.Delete(ctx, s.owner, s.proj.ID))

	gotP, err := (&fakeProjects{s.db}).FindByID(ctx, s.proj.ID)
	require.NoError(t, err)
	assert.Nil(t, gotP)
	gotB, err := (&fakeBranches{s.db}).FindByID(ctx, s.branch.ID)
	require.NoError(t, err)
	assert.Nil(t, gotB)
	gotT, err := (&fakeTasks{s.db}).FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, gotT)

	mine, err := s.projects.List(ctx, s.owner)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestBranchesEditAndDelete(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	b, err := s.branches.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, "sprint-2", strp("second pass"))
	require.NoError(t, err)
	assert.Equal(t, "sprint-2", b.Name)
	require.NotNil(t, b.Description)
	assert.Equal(t, "second pass", *b.Description)

	// description 不传即清空
	b, err = s.branches.Edit(ctx, s.owner, s.proj.ID, s.branch.ID, "sprint-2", nil)
	require.NoError(t, err)
	assert.Nil(t, b.Description)

	t.Run("wrong project reads as missing", func(t *testing.T) {
		other, err := s.projects.Create(ctx, s.owner, ProjectInput{Name: "other"})
		require.NoError(t, err)
		_, err = s.branches.Edit(ctx, s.owner, other.ID, s.branch.ID, "x", nil)
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("delete takes tasks along", func(t *testing.T) {
		task, err := s.tasks.Create(ctx, s.owner, s.proj.ID, s.branch.ID, CreateTaskInput{Title: "x"})
		require.NoError(t, err)

		require.NoError(t, s.branches.Delete(ctx, s.owner, s.proj.ID, s.branch.ID))

		got, err := (&fakeTasks{s.db}).FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
