package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SprintFox/TaskManager-Back/internal/core/auth"
	"github.com/SprintFox/TaskManager-Back/internal/domain"
)

// 内存版仓储，实现 domain 的全部端口，供服务层测试使用。

type memDB struct {
	mu       sync.Mutex
	users    map[uint]domain.User
	projects map[uint]domain.Project
	members  []domain.ProjectMember
	branches map[string]domain.Branch
	tasks    map[string]domain.Task
	skills   map[uint]domain.Skill
	seq      uint
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uint]domain.User{},
		projects: map[uint]domain.Project{},
		branches: map[string]domain.Branch{},
		tasks:    map[string]domain.Task{},
		skills:   map[uint]domain.Skill{},
	}
}

func (db *memDB) nextID() uint {
	db.seq++
	return db.seq
}

type fakeUsers struct{ db *memDB }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u.ID = f.db.nextID()
	u.CreatedAt = time.Now()
	f.db.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if u, ok := f.db.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.Login == login {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) List(_ context.Context) ([]domain.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]domain.User, 0, len(f.db.users))
	for _, u := range f.db.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *domain.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored := f.db.users[u.ID]
	skills := stored.Skills
	cp := *u
	cp.Skills = skills
	f.db.users[u.ID] = cp
	return nil
}

func (f *fakeUsers) ReplaceSkills(_ context.Context, u *domain.User, skills []domain.Skill) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored := f.db.users[u.ID]
	stored.Skills = skills
	f.db.users[u.ID] = stored
	return nil
}

type fakeProjects struct{ db *memDB }

func (f *fakeProjects) Create(_ context.Context, p *domain.Project, ownerID uint) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p.ID = f.db.nextID()
	p.CreatedAt = time.Now()
	f.db.projects[p.ID] = *p
	f.db.members = append(f.db.members, domain.ProjectMember{
		ProjectID: p.ID, UserID: ownerID, Role: domain.ProjectRoleOwner,
	})
	return nil
}

func (f *fakeProjects) FindByID(_ context.Context, id uint) (*domain.Project, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if p, ok := f.db.projects[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProjects) ListByMember(_ context.Context, userID uint) ([]domain.Project, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []domain.Project
	for _, m := range f.db.members {
		if m.UserID == userID {
			if p, ok := f.db.projects[m.ProjectID]; ok {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeProjects) Update(_ context.Context, p *domain.Project) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.projects[p.ID] = *p
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, id uint) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for bid, b := range f.db.branches {
		if b.ProjectID == id {
			for tid, t := range f.db.tasks {
				if t.BranchID == bid {
					delete(f.db.tasks, tid)
				}
			}
			delete(f.db.branches, bid)
		}
	}
	kept := f.db.members[:0]
	for _, m := range f.db.members {
		if m.ProjectID != id {
			kept = append(kept, m)
		}
	}
	f.db.members = kept
	delete(f.db.projects, id)
	return nil
}

func (f *fakeProjects) AddMember(_ context.Context, projectID, userID uint, role string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.members = append(f.db.members, domain.ProjectMember{
		ProjectID: projectID, UserID: userID, Role: role,
	})
	return nil
}

func (f *fakeProjects) RemoveMember(_ context.Context, projectID, userID uint) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	kept := f.db.members[:0]
	for _, m := range f.db.members {
		if !(m.ProjectID == projectID && m.UserID == userID) {
			kept = append(kept, m)
		}
	}
	f.db.members = kept
	return nil
}

func (f *fakeProjects) IsMember(_ context.Context, projectID, userID uint) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, m := range f.db.members {
		if m.ProjectID == projectID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjects) Members(_ context.Context, projectID uint) ([]domain.MemberInfo, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []domain.MemberInfo
	for _, m := range f.db.members {
		if m.ProjectID == projectID {
			if u, ok := f.db.users[m.UserID]; ok {
				out = append(out, domain.MemberInfo{User: u, Role: m.Role})
			}
		}
	}
	return out, nil
}

type fakeBranches struct{ db *memDB }

func (f *fakeBranches) Create(_ context.Context, b *domain.Branch) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b.CreatedAt = time.Now()
	f.db.branches[b.ID] = *b
	return nil
}

func (f *fakeBranches) FindByID(_ context.Context, id string) (*domain.Branch, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if b, ok := f.db.branches[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBranches) ListByProject(_ context.Context, projectID uint) ([]domain.Branch, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []domain.Branch
	for _, b := range f.db.branches {
		if b.ProjectID == projectID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBranches) Update(_ context.Context, b *domain.Branch) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.branches[b.ID] = *b
	return nil
}

func (f *fakeBranches) Delete(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for tid, t := range f.db.tasks {
		if t.BranchID == id {
			delete(f.db.tasks, tid)
		}
	}
	delete(f.db.branches, id)
	return nil
}

type fakeTasks struct{ db *memDB }

func (f *fakeTasks) Create(_ context.Context, t *domain.Task) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t.CreatedAt = time.Now()
	f.db.tasks[t.ID] = *t
	return nil
}

func (f *fakeTasks) FindByID(_ context.Context, id string) (*domain.Task, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if t, ok := f.db.tasks[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTasks) ListByBranch(_ context.Context, branchID string) ([]domain.Task, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []domain.Task
	for _, t := range f.db.tasks {
		if t.BranchID == branchID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) ListByAssignee(_ context.Context, userID uint) ([]domain.Task, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []domain.Task
	for _, t := range f.db.tasks {
		if t.AssignedToID != nil && *t.AssignedToID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Update(_ context.Context, t *domain.Task) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.tasks[t.ID] = *t
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.tasks, id)
	return nil
}

func (f *fakeTasks) SetState(_ context.Context, id string, done, hasProblem bool, problemMessage *string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t := f.db.tasks[id]
	t.Done = done
	t.HasProblem = hasProblem
	t.ProblemMessage = problemMessage
	f.db.tasks[id] = t
	return nil
}

type fakeSkills struct{ db *memDB }

func (f *fakeSkills) Create(_ context.Context, s *domain.Skill) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s.ID = f.db.nextID()
	s.CreatedAt = time.Now()
	f.db.skills[s.ID] = *s
	return nil
}

func (f *fakeSkills) FindByName(_ context.Context, name string) (*domain.Skill, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, s := range f.db.skills {
		if s.Name == name {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSkills) FindByIDs(_ context.Context, ids []uint) ([]domain.Skill, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []domain.Skill
	for _, id := range ids {
		if s, ok := f.db.skills[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSkills) List(_ context.Context) ([]domain.Skill, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []domain.Skill
	for _, s := range f.db.skills {
		out = append(out, s)
	}
	return out, nil
}

// env 一套装好内存仓储的服务实例
type env struct {
	db       *memDB
	jwter    *auth.JWTer
	identity *Identity
	projects *Projects
	branches *Branches
	tasks    *Tasks
	users    *Users
	skills   *Skills
}

func newEnv() *env {
	db := newMemDB()
	log := zap.NewNop()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}

	up := &fakeUsers{db}
	pp := &fakeProjects{db}
	bp := &fakeBranches{db}
	tp := &fakeTasks{db}
	sp := &fakeSkills{db}

	return &env{
		db:       db,
		jwter:    jwter,
		identity: NewIdentity(up, jwter, nil, log),
		projects: NewProjects(pp, bp, tp, up, nil, 0, log),
		branches: NewBranches(pp, bp, nil, log),
		tasks:    NewTasks(pp, bp, tp, up, sp, nil, log),
		users:    NewUsers(up, sp, log),
		skills:   NewSkills(sp, log),
	}
}

// seedUser 直接入库，绕过 bcrypt，加快非认证用例
func (e *env) seedUser(login, role string) *domain.User {
	u := &domain.User{Login: login, Email: login + "@example.com", Role: role, IsActive: true}
	_ = (&fakeUsers{e.db}).Create(context.Background(), u)
	return u
}
