package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tutorhive/tutorhive-api/internal/entity"
	"github.com/tutorhive/tutorhive-api/internal/infra/queue"
)

var errStoreDown = errors.New("store down")

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, kind entity.LeadKind, id string) (*entity.Lead, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, kind entity.LeadKind) ([]*entity.Lead, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, kind entity.LeadKind, id, field, status string, entry entity.HistoryEntry) (*entity.Lead, error) {
	args := m.Called(ctx, kind, id, field, status, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) AppendNote(ctx context.Context, kind entity.LeadKind, id string, note entity.Note) (*entity.Lead, error) {
	args := m.Called(ctx, kind, id, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) AppendHistory(ctx context.Context, kind entity.LeadKind, id string, entry entity.HistoryEntry) error {
	args := m.Called(ctx, kind, id, entry)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, kind entity.LeadKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

// MockSettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetOrCreate(ctx context.Context, defaults entity.Settings) (*entity.Settings, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, s *entity.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockVerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockVerificationRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*entity.VerificationCode, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VerificationCode), args.Error(1)
}

func (m *MockVerificationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCaptchaVerifier
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(from, to, subject, html string) error {
	args := m.Called(from, to, subject, html)
	return args.Error(0)
}

// MockNotificationProducer
type MockNotificationProducer struct {
	mock.Mock
}

func (m *MockNotificationProducer) PublishNotification(ctx context.Context, payload queue.NotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// fakeRateLimitRepo is an in-memory counter store for exercising the windowed
// limiter; failing can be toggled to exercise the fail-open path.
type fakeRateLimitRepo struct {
	mu       sync.Mutex
	counters map[string]*entity.RateLimitCounter
	failing  bool
}

func newFakeRateLimitRepo() *fakeRateLimitRepo {
	return &fakeRateLimitRepo{counters: make(map[string]*entity.RateLimitCounter)}
}

func (f *fakeRateLimitRepo) FindByID(ctx context.Context, id string) (*entity.RateLimitCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	c, ok := f.counters[id]
	if !ok {
		return nil, entity.ErrCounterNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRateLimitRepo) Upsert(ctx context.Context, counter *entity.RateLimitCounter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errStoreDown
	}
	copied := *counter
	f.counters[counter.ID] = &copied
	return nil
}

func (f *fakeRateLimitRepo) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, c := range f.counters {
		if c.ResetAt.Before(olderThan) {
			delete(f.counters, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeAdminRepo keeps accounts in memory so password-change flows can be
// asserted end to end.
type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*entity.Admin // by id
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*entity.Admin)}
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.Email == admin.Email {
			return entity.ErrEmailAlreadyExists
		}
	}
	copied := *admin
	f.admins[admin.ID] = &copied
	return nil
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return nil, entity.ErrAdminNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, entity.ErrAdminNotFound
}

func (f *fakeAdminRepo) FindAll(ctx context.Context) ([]*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Admin{}
	for _, a := range f.admins {
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeAdminRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.admins)), nil
}

func (f *fakeAdminRepo) Update(ctx context.Context, admin *entity.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[admin.ID]; !ok {
		return entity.ErrAdminNotFound
	}
	copied := *admin
	f.admins[admin.ID] = &copied
	return nil
}

func (f *fakeAdminRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[id]; !ok {
		return entity.ErrAdminNotFound
	}
	delete(f.admins, id)
	return nil
}
