package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SetEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) LatestWorkspaceForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockWorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceRepository) BootstrapForUser(ctx context.Context, name string, userID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, name, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockInviteRepository mocks the InviteRepository interface
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) Create(ctx context.Context, invite *domain.WorkspaceInvite) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteRepository) GetByToken(ctx context.Context, token string) (*domain.WorkspaceInvite, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceInvite), args.Error(1)
}

func (m *MockInviteRepository) Redeem(ctx context.Context, inviteID uuid.UUID, member *domain.WorkspaceMember) error {
	args := m.Called(ctx, inviteID, member)
	return args.Error(0)
}

func (m *MockInviteRepository) MarkUsed(ctx context.Context, inviteID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, inviteID, at)
	return args.Error(0)
}

// MockAccountRepository mocks the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Category, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) CreateMany(ctx context.Context, categories []domain.Category) (int64, error) {
	args := m.Called(ctx, categories)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) DeleteByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) error {
	args := m.Called(ctx, workspaceID, ids)
	return args.Error(0)
}

func (m *MockCategoryRepository) UsageCounts(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, workspaceID, from, to)
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

// MockTransactionRepository mocks the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, workspaceID, from, to)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UsedCategoryIDs(ctx context.Context, workspaceID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, workspaceID, candidates)
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

// MockVerificationRepository mocks the VerificationRepository interface
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) CreateEmailCode(ctx context.Context, code *domain.EmailVerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockVerificationRepository) LatestEmailCode(ctx context.Context, userID uuid.UUID) (*domain.EmailVerificationCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailVerificationCode), args.Error(1)
}

func (m *MockVerificationRepository) MarkEmailCodeUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockVerificationRepository) CreateResetToken(ctx context.Context, token *domain.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockVerificationRepository) FindActiveResetToken(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}

func (m *MockVerificationRepository) ConsumeResetToken(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, tokenID, userID, passwordHash)
	return args.Error(0)
}

// fakeHintCache is an in-memory WorkspaceHintCache for tests
type fakeHintCache struct {
	mu sync.Mutex
	m  map[uuid.UUID]uuid.UUID
}

func newFakeHintCache() *fakeHintCache {
	return &fakeHintCache{m: make(map[uuid.UUID]uuid.UUID)}
}

func (f *fakeHintCache) Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m[userID], nil
}

func (f *fakeHintCache) Set(ctx context.Context, userID, workspaceID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[userID] = workspaceID
	return nil
}

func (f *fakeHintCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, userID)
	return nil
}

// fakeMailer records sent emails instead of delivering them
type fakeMailer struct {
	mu         sync.Mutex
	configured bool
	sent       []sentEmail
	sendErr    error
}

type sentEmail struct {
	to      string
	subject string
	html    string
}

func (f *fakeMailer) Configured() bool {
	return f.configured
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, html: html})
	return nil
}
