package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

func TestSummarize(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	past := asOf.AddDate(0, 0, -1)
	future := asOf.AddDate(0, 0, 7)

	branches := []domain.Branch{
		{ID: "b1", Name: "backend", ProjectID: 7},
		{ID: "b2", Name: "frontend", ProjectID: 7},
	}
	tasksByBranch := map[string][]domain.Task{
		"b1": {
			{ID: "t1", Title: "done on time", BranchID: "b1", Done: true, EndDate: timep(past)},
			{ID: "t2", Title: "overdue", BranchID: "b1", EndDate: timep(past)},
			{ID: "t3", Title: "overdue with problem", BranchID: "b1", HasProblem: true, ProblemMessage: strp("blocked"), EndDate: timep(past)},
		},
		"b2": {
			{ID: "t4", Title: "in progress", BranchID: "b2", EndDate: timep(future)},
		},
	}

	sum := Summarize(7, branches, tasksByBranch, asOf)

	require.Len(t, sum.Branches, 2)
	assert.Equal(t, uint(7), sum.ProjectID)

	b1 := sum.Branches[0]
	assert.Equal(t, "b1", b1.BranchID)
	assert.Equal(t, 3, b1.Statistics.TaskCount)
	assert.Equal(t, 1, b1.Statistics.CompletedTasksCount)
	// done=true 的过期任务不算 delayed；problem 任务同时计入 delayed
	assert.Equal(t, 2, b1.Statistics.DelayedTasksCount)
	assert.Equal(t, 1, b1.Statistics.ProblemTasksCount)

	b2 := sum.Branches[1]
	assert.Equal(t, 1, b2.Statistics.TaskCount)
	assert.Equal(t, 0, b2.Statistics.DelayedTasksCount)

	// 项目级数字 = 分支级之和
	var want domain.TaskStats
	for _, b := range sum.Branches {
		want.Add(b.Statistics)
	}
	assert.Equal(t, want, sum.Statistics)
	assert.Equal(t, 4, sum.Statistics.TaskCount)
}

func TestSummarizeEmptyBranch(t *testing.T) {
	branches := []domain.Branch{{ID: "b1", Name: "empty", ProjectID: 1}}
	sum := Summarize(1, branches, map[string][]domain.Task{}, time.Now())

	require.Len(t, sum.Branches, 1)
	assert.NotNil(t, sum.Branches[0].Tasks)
	assert.Empty(t, sum.Branches[0].Tasks)
	assert.Equal(t, domain.TaskStats{}, sum.Statistics)
}

func TestTaskDelayed(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	open := domain.Task{EndDate: timep(yesterday)}
	assert.True(t, open.Delayed(now))

	done := domain.Task{EndDate: timep(yesterday), Done: true}
	assert.False(t, done.Delayed(now))

	noDeadline := domain.Task{}
	assert.False(t, noDeadline.Delayed(now))
}
