package service

import (
	"time"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

// 聚合是纯函数：同一快照 + 固定 asOf，结果必然一致。

func taskDTO(t domain.Task) domain.TaskDTO {
	return domain.TaskDTO{
		TaskID:         t.ID,
		Title:          t.Title,
		Description:    t.Description,
		StartDate:      formatDate(t.StartDate),
		EndDate:        formatDate(t.EndDate),
		Done:           t.Done,
		HasProblem:     t.HasProblem,
		ProblemMessage: t.ProblemMessage,
		SkillID:        t.SkillID,
		AssignedTo:     t.AssignedToID,
		File:           t.File,
	}
}

// summarizeBranch 单分支统计：completed/problem/delayed 互不排斥，
// 一个任务可以同时计入 problem 和 delayed
func summarizeBranch(b domain.Branch, tasks []domain.Task, asOf time.Time) domain.BranchSummary {
	out := domain.BranchSummary{
		BranchID: b.ID,
		Name:     b.Name,
		Tasks:    make([]domain.TaskDTO, 0, len(tasks)),
	}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, taskDTO(t))
		out.Statistics.TaskCount++
		if t.Done {
			out.Statistics.CompletedTasksCount++
		}
		if t.HasProblem {
			out.Statistics.ProblemTasksCount++
		}
		if t.Delayed(asOf) {
			out.Statistics.DelayedTasksCount++
		}
	}
	return out
}

// Summarize 项目汇总：先按分支统计一次，再求和。
// 项目级数字永远等于分支级数字之和。
func Summarize(projectID uint, branches []domain.Branch, tasksByBranch map[string][]domain.Task, asOf time.Time) domain.ProjectSummary {
	sum := domain.ProjectSummary{
		ProjectID: projectID,
		Branches:  make([]domain.BranchSummary, 0, len(branches)),
	}
	for _, b := range branches {
		bs := summarizeBranch(b, tasksByBranch[b.ID], asOf)
		sum.Branches = append(sum.Branches, bs)
		sum.Statistics.Add(bs.Statistics)
	}
	return sum
}
