package domain

// TaskStats 分支/项目两级通用的任务统计
type TaskStats struct {
	TaskCount           int `json:"taskCount"`
	CompletedTasksCount int `json:"completedTasksCount"`
	DelayedTasksCount   int `json:"delayedTasksCount"`
	ProblemTasksCount   int `json:"problemTasksCount"`
}

// Add 项目级汇总 = 各分支统计直接相加，不重复计算
func (s *TaskStats) Add(o TaskStats) {
	s.TaskCount += o.TaskCount
	s.CompletedTasksCount += o.CompletedTasksCount
	s.DelayedTasksCount += o.DelayedTasksCount
	s.ProblemTasksCount += o.ProblemTasksCount
}

type TaskDTO struct {
	TaskID         string  `json:"taskId"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	Done           bool    `json:"done"`
	HasProblem     bool    `json:"hasProblem"`
	ProblemMessage *string `json:"problemMessage"`
	SkillID        *uint   `json:"skillId"`
	AssignedTo     *uint   `json:"assignedTo"`
	File           *string `json:"file"`
}

type BranchSummary struct {
	BranchID   string    `json:"branchId"`
	Name       string    `json:"name"`
	Tasks      []TaskDTO `json:"tasks"`
	Statistics TaskStats `json:"statistics"`
}

type ProjectSummary struct {
	ProjectID  uint            `json:"projectId"`
	Branches   []BranchSummary `json:"branches"`
	Statistics TaskStats       `json:"statistics"`
}

type ProjectMemberDTO struct {
	UserID    uint    `json:"userId"`
	Login     string  `json:"login"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatarUrl"`
}

// ProjectInfo 项目详情：基础信息 + 成员列表 + 分支统计汇总
type ProjectInfo struct {
	ProjectID   uint               `json:"projectId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   string             `json:"createdAt"`
	AvatarURL   *string            `json:"avatarUrl"`
	Members     []ProjectMemberDTO `json:"projectMembers"`
	Summary     ProjectSummary     `json:"project"`
}
