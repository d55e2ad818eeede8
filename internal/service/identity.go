package service

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/core/auth"
	"github.com/SprintFox/TaskManager-Back/internal/domain"
	"github.com/SprintFox/TaskManager-Back/pkg/utils"
)

var (
	loginRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// PasswordPolicy 密码策略，可插拔。上游当前没有启用任何规则。
type PasswordPolicy interface {
	Validate(pw string) error
}

type NoopPasswordPolicy struct{}

func (NoopPasswordPolicy) Validate(string) error { return nil }

type Identity struct {
	users  domain.UserRepository
	jwter  *auth.JWTer
	policy PasswordPolicy
	log    *zap.Logger
}

func NewIdentity(users domain.UserRepository, jwter *auth.JWTer, policy PasswordPolicy, log *zap.Logger) *Identity {
	if policy == nil {
		policy = NoopPasswordPolicy{}
	}
	return &Identity{users: users, jwter: jwter, policy: policy, log: log}
}

type RegisterInput struct {
	Login    string
	Email    string
	Password string
}

func (s *Identity) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if !loginRe.MatchString(in.Login) {
		return nil, "", domain.ErrValidation("invalid login format")
	}
	if !emailRe.MatchString(in.Email) {
		return nil, "", domain.ErrValidation("invalid email format")
	}
	if err := s.policy.Validate(in.Password); err != nil {
		return nil, "", domain.ErrValidation("password does not meet requirements")
	}

	if u, err := s.users.FindByLogin(ctx, in.Login); err != nil {
		return nil, "", domain.ErrInternal("lookup login failed", err)
	} else if u != nil {
		return nil, "", domain.ErrConflict("login already exists")
	}
	if u, err := s.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, "", domain.ErrInternal("lookup email failed", err)
	} else if u != nil {
		return nil, "", domain.ErrConflict("email already exists")
	}

	u := &domain.User{
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", domain.ErrInternal("create user failed", err)
	}

	tok, err := s.jwter.Issue(u.Login, u.Role)
	if err != nil {
		return nil, "", domain.ErrInternal("issue token failed", err)
	}
	s.log.Info("user registered", zap.String("login", u.Login))
	return u, tok, nil
}

func (s *Identity) Login(ctx context.Context, login, password string) (string, error) {
	u, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		return "", domain.ErrInternal("lookup login failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrUnauthorized("invalid login or password")
	}
	tok, err := s.jwter.Issue(u.Login, u.Role)
	if err != nil {
		return "", domain.ErrInternal("issue token failed", err)
	}
	s.log.Info("user logged in", zap.String("login", u.Login))
	return tok, nil
}

// CurrentUser 令牌 → 用户。令牌坏/过期 → Unauthorized，主体已不存在 → NotFound。
func (s *Identity) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwter.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid authentication credentials")
	}
	u, err := s.users.FindByLogin(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrInternal("lookup user failed", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound("user not found")
	}
	return u, nil
}

// Resolve 已验签的登录名 → 用户，供边界层解析操作者
func (s *Identity) Resolve(ctx context.Context, login string) (*domain.User, error) {
	u, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		return nil, domain.ErrInternal("lookup user failed", err)
	}
	if u == nil {
		return nil, domain.ErrUnauthorized("user not found")
	}
	return u, nil
}
