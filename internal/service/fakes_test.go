package service

import (
	"context"
	"sync"

	"code-playground-be/internal/entity"
	"code-playground-be/internal/repository/contract"
	"code-playground-be/internal/repository/specification"
	"code-playground-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes. They implement just enough behavior for
// the service tests: FindOne matching is done against recorded entities
// rather than by interpreting specifications.

type fakeUserRepo struct {
	mu            sync.Mutex
	usersByEmail  map[string]*entity.User
	refreshTokens map[string]*entity.UserRefreshToken
	providers     []*entity.UserProvider
	findOneCalls  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail:  make(map[string]*entity.User),
		refreshTokens: make(map[string]*entity.UserRefreshToken),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usersByEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findOneCalls++
	for _, spec := range specs {
		if byEmail, ok := spec.(specification.ByEmail); ok {
			return r.usersByEmail[byEmail.Email], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.usersByEmail)), nil
}

func (r *fakeUserRepo) UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string) error {
	return nil
}

func (r *fakeUserRepo) SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, provider)
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshTokens[token.TokenHash] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(ctx context.Context, specs ...specification.Specification) (*entity.UserRefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byHash, ok := spec.(specification.ByTokenHash); ok {
			return r.refreshTokens[byHash.Hash], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.refreshTokens[tokenHash]; ok {
		t.Revoked = true
	}
	return nil
}

type fakeProjectRepo struct {
	mu      sync.Mutex
	created []*entity.Project

	// createGate, when set, blocks Create until the channel is closed.
	// createStarted, when set, is closed once Create has been entered,
	// so a test can line up work against a stalled store write.
	createGate    chan struct{}
	createStarted chan struct{}
	failCreate    error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	if r.createStarted != nil {
		close(r.createStarted)
	}
	if r.createGate != nil {
		<-r.createGate
	}
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *project
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByProjectID); ok {
			for _, p := range r.created {
				if p.Id == byID.ID {
					return p, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Project, len(r.created))
	copy(out, r.created)
	return out, nil
}

func (r *fakeProjectRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.created)), nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.created {
		if p.Id == id {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeProjectRepo) snapshots() []*entity.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Project, len(r.created))
	copy(out, r.created)
	return out
}

type fakeUnitOfWork struct {
	users    contract.UserRepository
	projects contract.ProjectRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return u.users
}

func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository {
	return u.projects
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory(users contract.UserRepository, projects contract.ProjectRepository) *fakeFactory {
	return &fakeFactory{uow: &fakeUnitOfWork{users: users, projects: projects}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakeSender records frames fanned out to users.
type fakeSender struct {
	mu     sync.Mutex
	frames [][]byte
}

func (s *fakeSender) Send(userID uuid.UUID, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.frames = append(s.frames, cp)
}

func (s *fakeSender) all() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.frames))
	copy(out, s.frames)
	return out
}

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
