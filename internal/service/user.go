package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

type Users struct {
	users  domain.UserRepository
	skills domain.SkillRepository
	log    *zap.Logger
}

func NewUsers(users domain.UserRepository, skills domain.SkillRepository, log *zap.Logger) *Users {
	return &Users{users: users, skills: skills, log: log}
}

type UserDTO struct {
	ID         uint    `json:"id"`
	Login      string  `json:"login"`
	Email      string  `json:"email"`
	FullName   *string `json:"fullName"`
	GlobalRole string  `json:"globalRole"`
	SkillIDs   []uint  `json:"skillIds"`
	CreatedAt  string  `json:"createdAt"`
	AvatarURL  *string `json:"avatarUrl"`
}

func userDTO(u *domain.User) UserDTO {
	ids := make([]uint, 0, len(u.Skills))
	for _, sk := range u.Skills {
		ids = append(ids, sk.ID)
	}
	return UserDTO{
		ID:         u.ID,
		Login:      u.Login,
		Email:      u.Email,
		FullName:   u.FullName,
		GlobalRole: u.Role,
		SkillIDs:   ids,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		AvatarURL:  u.AvatarURL,
	}
}

func (s *Users) Profile(ctx context.Context, actor *domain.User) UserDTO {
	return userDTO(actor)
}

func (s *Users) List(ctx context.Context) ([]UserDTO, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return nil, domain.ErrInternal("list users failed", err)
	}
	out := make([]UserDTO, 0, len(us))
	for i := range us {
		out = append(out, userDTO(&us[i]))
	}
	return out, nil
}

type EditUserInput struct {
	ID         uint
	Login      string
	Email      string
	FullName   *string
	GlobalRole string
	AvatarURL  *string
	SkillIDs   *[]uint // nil 表示不动技能集合
}

// Edit 只允许本人或全局 ADMIN 修改
func (s *Users) Edit(ctx context.Context, actor *domain.User, in EditUserInput) (*UserDTO, error) {
	if actor.ID != in.ID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden("not authorized to edit this user")
	}
	u, err := s.users.FindByID(ctx, in.ID)
	if err != nil {
		return nil, domain.ErrInternal("lookup user failed", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound("user not found")
	}

	u.Login = in.Login
	u.Email = in.Email
	u.FullName = in.FullName
	u.Role = in.GlobalRole
	u.AvatarURL = in.AvatarURL
	if err := s.users.Update(ctx, u); err != nil {
		return nil, domain.ErrInternal("update user failed", err)
	}

	if in.SkillIDs != nil {
		skills, err := s.skills.FindByIDs(ctx, *in.SkillIDs)
		if err != nil {
			return nil, domain.ErrInternal("lookup skills failed", err)
		}
		if err := s.users.ReplaceSkills(ctx, u, skills); err != nil {
			return nil, domain.ErrInternal("replace skills failed", err)
		}
		u.Skills = skills
	}

	s.log.Info("user edited", zap.Uint("user_id", u.ID), zap.String("by", actor.Login))
	dto := userDTO(u)
	return &dto, nil
}
