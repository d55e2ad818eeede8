package service

import (
	"context"
	"fmt"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

// guard 所有项目域操作共用的成员资格门禁。
// 任务的归属链按 task → branch → project 逐级解析。
type guard struct {
	projects domain.ProjectRepository
}

func (g guard) requireMember(ctx context.Context, projectID, userID uint) error {
	ok, err := g.projects.IsMember(ctx, projectID, userID)
	if err != nil {
		return domain.ErrInternal("membership check failed", err)
	}
	if !ok {
		return domain.ErrForbidden("not a member of this project")
	}
	return nil
}

func summaryKey(projectID uint) string {
	return fmt.Sprintf("project:summary:%d", projectID)
}
