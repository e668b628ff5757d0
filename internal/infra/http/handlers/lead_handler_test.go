package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutorhive/tutorhive-api/internal/entity"
	"github.com/tutorhive/tutorhive-api/internal/usecase"
)

// mockLeadRepo
type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, kind entity.LeadKind, id string) (*entity.Lead, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) FindAll(ctx context.Context, kind entity.LeadKind) ([]*entity.Lead, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, kind entity.LeadKind, id, field, status string, entry entity.HistoryEntry) (*entity.Lead, error) {
	args := m.Called(ctx, kind, id, field, status, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) AppendNote(ctx context.Context, kind entity.LeadKind, id string, note entity.Note) (*entity.Lead, error) {
	args := m.Called(ctx, kind, id, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) AppendHistory(ctx context.Context, kind entity.LeadKind, id string, entry entity.HistoryEntry) error {
	args := m.Called(ctx, kind, id, entry)
	return args.Error(0)
}

func (m *mockLeadRepo) Delete(ctx context.Context, kind entity.LeadKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

// stubSettingsRepo always answers with its fixed settings.
type stubSettingsRepo struct {
	settings entity.Settings
}

func (s *stubSettingsRepo) GetOrCreate(ctx context.Context, defaults entity.Settings) (*entity.Settings, error) {
	copied := s.settings
	return &copied, nil
}

func (s *stubSettingsRepo) Update(ctx context.Context, settings *entity.Settings) error {
	return nil
}

// stubCaptcha accepts or rejects every token.
type stubCaptcha struct {
	accept bool
}

func (s *stubCaptcha) Verify(ctx context.Context, token string) bool {
	return s.accept
}

// stubEmailService swallows every send.
type stubEmailService struct{}

func (s *stubEmailService) Send(from, to, subject, html string) error {
	return nil
}

// memRateLimitRepo backs the real limiter in handler tests.
type memRateLimitRepo struct {
	mu       sync.Mutex
	counters map[string]*entity.RateLimitCounter
}

func newMemRateLimitRepo() *memRateLimitRepo {
	return &memRateLimitRepo{counters: make(map[string]*entity.RateLimitCounter)}
}

func (m *memRateLimitRepo) FindByID(ctx context.Context, id string) (*entity.RateLimitCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counters[id]
	if !ok {
		return nil, entity.ErrCounterNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *memRateLimitRepo) Upsert(ctx context.Context, counter *entity.RateLimitCounter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *counter
	m.counters[counter.ID] = &copied
	return nil
}

func (m *memRateLimitRepo) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func newSubmitRouter(leadRepo entity.LeadRepositoryInterface, captchaOK bool) *chi.Mux {
	uc := usecase.NewSubmitLeadUseCase(
		leadRepo,
		&stubSettingsRepo{settings: entity.Settings{FromEmail: "no-reply@tutorhive.in", AdminEmail: "leads@tutorhive.in"}},
		&stubCaptcha{accept: captchaOK},
		usecase.NewRateLimiter(newMemRateLimitRepo()),
		nil,
		&stubEmailService{},
		entity.Settings{FromEmail: "no-reply@tutorhive.in", AdminEmail: "leads@tutorhive.in"},
	)

	router := chi.NewRouter()
	router.Post("/leads/submit", NewLeadHandler(uc).HandleSubmit)
	return router
}

func postJSON(router http.Handler, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:51000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validContactBody() map[string]interface{} {
	return map[string]interface{}{
		"kind":          "contact",
		"captcha_token": "token",
		"name":          "Meera",
		"email":         "meera@example.com",
		"subject":       "Fees",
		"message":       "What are the fees for grade 8 maths?",
	}
}

func TestHandleSubmitCreatesLead(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	router := newSubmitRouter(leadRepo, true)
	rec := postJSON(router, "/leads/submit", validContactBody())

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp usecase.SubmitLeadOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Contains(t, resp.TrackingID, "CT-")
	assert.Equal(t, entity.StatusPending, resp.Status)
}

func TestHandleSubmitRejectsBadJSON(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	router := newSubmitRouter(leadRepo, true)

	req := httptest.NewRequest("POST", "/leads/submit", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")
	leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleSubmitRejectsFailedCaptcha(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	router := newSubmitRouter(leadRepo, false)

	rec := postJSON(router, "/leads/submit", validContactBody())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "CAPTCHA_FAILED")
	leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleSubmitReportsAllValidationErrors(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	router := newSubmitRouter(leadRepo, true)

	body := validContactBody()
	body["name"] = ""
	body["message"] = ""
	rec := postJSON(router, "/leads/submit", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), "name")
	assert.Contains(t, rec.Body.String(), "message")
}

func TestHandleSubmitRateLimitsPerIP(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	router := newSubmitRouter(leadRepo, true)

	for i := 0; i < 5; i++ {
		rec := postJSON(router, "/leads/submit", validContactBody())
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := postJSON(router, "/leads/submit", validContactBody())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:9999"

	assert.Equal(t, "10.0.0.1:9999", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
	assert.Equal(t, "203.0.113.9", getClientIP(req))
}
