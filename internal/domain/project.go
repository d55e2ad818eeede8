package domain

import (
	"context"
	"time"
)

// 项目内成员角色。目前只存储，不做差异化鉴权：所有成员权限相同。
const (
	ProjectRoleOwner   = "OWNER"
	ProjectRoleMember  = "MEMBER"
	ProjectRoleManager = "MANAGER"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:191;index;not null" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	AvatarURL   *string   `gorm:"size:255" json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy   uint      `gorm:"index" json:"createdBy"`
}

func (Project) TableName() string { return "projects" }

// ProjectMember 成员关系行：增删都是单条语句，天然原子
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"projectId"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"userId"`
	Role      string    `gorm:"size:16;not null;default:MEMBER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProjectMember) TableName() string { return "project_members" }

// MemberInfo 成员展示数据（用户 + 项目内角色）
type MemberInfo struct {
	User User
	Role string
}

type ProjectRepository interface {
	// Create 同一事务内写入项目和创建者的 OWNER 成员行
	Create(ctx context.Context, p *Project, ownerID uint) error
	FindByID(ctx context.Context, id uint) (*Project, error)
	ListByMember(ctx context.Context, userID uint) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	// Delete 级联删除任务、分支、成员行与项目本身
	Delete(ctx context.Context, id uint) error

	AddMember(ctx context.Context, projectID, userID uint, role string) error
	RemoveMember(ctx context.Context, projectID, userID uint) error
	IsMember(ctx context.Context, projectID, userID uint) (bool, error)
	Members(ctx context.Context, projectID uint) ([]MemberInfo, error)
}
