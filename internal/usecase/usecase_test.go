package usecase_test

import (
	"context"
	"errors"
	"testing"

	"easi-website/internal/domain"
	"easi-website/internal/form"
	"easi-website/internal/usecase"
	"easi-website/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Mock Gateways
type MockContactGateway struct {
	mock.Mock
}

func (m *MockContactGateway) SubmitContact(ctx context.Context, s *domain.ContactSubmission) (*domain.ServerResponse, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServerResponse), args.Error(1)
}

type MockNewsletterGateway struct {
	mock.Mock
}

func (m *MockNewsletterGateway) SubscribeNewsletter(ctx context.Context, s *domain.NewsletterSubmission) (*domain.ServerResponse, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServerResponse), args.Error(1)
}

type MockResourceGateway struct {
	mock.Mock
}

func (m *MockResourceGateway) ListResources(ctx context.Context) ([]domain.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockResourceGateway) ResourceURL(id domain.ResourceID) string {
	return "https://backend.test/resources/" + string(id)
}

func (m *MockResourceGateway) DownloadURL(id domain.ResourceID) string {
	return "https://backend.test/resources/" + string(id) + "/download"
}

// MockGuard lets tests decide whether a form instance is already locked
type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) TryAcquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func observedAudit() (*audit.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return audit.NewWithZap(zap.New(core), "easi-website", "test"), logs
}

func validContact(t *testing.T, f *form.Contact) {
	t.Helper()
	require.NoError(t, f.SetField(domain.FieldName, "Jane"))
	require.NoError(t, f.SetField(domain.FieldEmail, "jane@example.com"))
	require.NoError(t, f.SetField(domain.FieldMessage, "Hello"))
}

func TestContactSubmit(t *testing.T) {
	t.Run("Should send once, release the lock and reset the form", func(t *testing.T) {
		gw := new(MockContactGateway)
		gw.On("SubmitContact", mock.Anything, mock.Anything).Return(&domain.ServerResponse{StatusCode: 200}, nil).Once()
		guard := new(MockGuard)
		guard.On("TryAcquire", mock.Anything, "contact:form-1").Return(true, nil).Once()
		guard.On("Release", mock.Anything, "contact:form-1").Return(nil).Once()
		auditLog, logs := observedAudit()

		uc := usecase.NewContactUsecase(gw, guard, auditLog)
		f := uc.NewForm()
		validContact(t, f)

		ctx := context.WithValue(context.Background(), domain.KeyRequestID, "req-1")
		_, err := uc.Submit(ctx, "form-1", f)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusSucceeded, f.Status().Kind)
		assert.Equal(t, "", f.Value(domain.FieldName))
		gw.AssertExpectations(t)
		guard.AssertExpectations(t)

		entries := logs.FilterMessage("contact_submitted").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "j***@example.com", entries[0].ContextMap()["subject_value"])
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})

	t.Run("Should refuse a form instance that is still pending", func(t *testing.T) {
		gw := new(MockContactGateway)
		guard := new(MockGuard)
		guard.On("TryAcquire", mock.Anything, "contact:form-1").Return(false, nil).Once()
		auditLog, logs := observedAudit()

		uc := usecase.NewContactUsecase(gw, guard, auditLog)
		f := uc.NewForm()
		validContact(t, f)

		_, err := uc.Submit(context.Background(), "form-1", f)
		assert.ErrorIs(t, err, domain.ErrSubmissionPending)
		assert.Equal(t, domain.StatusPending, f.Status().Kind)
		assert.True(t, f.Pending())
		assert.Equal(t, "Jane", f.Value(domain.FieldName))
		gw.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything)
		guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
		assert.Equal(t, 1, logs.FilterMessage("duplicate_submission").Len())
	})

	t.Run("Should fail open when the guard backend errors", func(t *testing.T) {
		gw := new(MockContactGateway)
		gw.On("SubmitContact", mock.Anything, mock.Anything).Return(&domain.ServerResponse{StatusCode: 200}, nil).Once()
		guard := new(MockGuard)
		guard.On("TryAcquire", mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Once()

		uc := usecase.NewContactUsecase(gw, guard, audit.Nop())
		f := uc.NewForm()
		validContact(t, f)

		_, err := uc.Submit(context.Background(), "form-1", f)
		require.NoError(t, err)
		gw.AssertExpectations(t)
		guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})

	t.Run("Should keep fields and audit the failure", func(t *testing.T) {
		gw := new(MockContactGateway)
		gw.On("SubmitContact", mock.Anything, mock.Anything).Return(nil, domain.ErrUpstream).Once()
		auditLog, logs := observedAudit()

		uc := usecase.NewContactUsecase(gw, form.NewMemoryGuard(0), auditLog)
		f := uc.NewForm()
		validContact(t, f)

		_, err := uc.Submit(context.Background(), "", f)
		require.ErrorIs(t, err, domain.ErrUpstream)
		assert.Equal(t, domain.Failed(form.MsgContactFailed), f.Status())
		assert.Equal(t, "jane@example.com", f.Value(domain.FieldEmail))
		assert.Equal(t, 1, logs.FilterMessage("contact_failed").Len())
	})

	t.Run("Should not call the gateway for an invalid form", func(t *testing.T) {
		gw := new(MockContactGateway)
		auditLog, logs := observedAudit()

		uc := usecase.NewContactUsecase(gw, nil, auditLog)
		f := uc.NewForm()

		_, err := uc.Submit(context.Background(), "", f)
		require.ErrorIs(t, err, domain.ErrValidation)
		gw.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything)
		assert.Equal(t, 1, logs.FilterMessage("validation_failed").Len())
	})
}

func TestNewsletterSubscribe(t *testing.T) {
	gw := new(MockNewsletterGateway)
	gw.On("SubscribeNewsletter", mock.Anything, &domain.NewsletterSubmission{Email: "jane@example.com"}).
		Return(&domain.ServerResponse{StatusCode: 201}, nil).Once()

	uc := usecase.NewNewsletterUsecase(gw, form.NewMemoryGuard(0), audit.Nop())
	f := uc.NewForm()
	require.NoError(t, f.SetField(domain.FieldEmail, "jane@example.com"))

	resp, err := uc.Subscribe(context.Background(), "nl-1", f)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, domain.StatusSucceeded, f.Status().Kind)
	gw.AssertExpectations(t)
}

func TestResourceLister(t *testing.T) {
	t.Run("Should keep server order without filtering", func(t *testing.T) {
		gw := new(MockResourceGateway)
		gw.On("ListResources", mock.Anything).Return([]domain.Resource{
			{ID: "1", Title: "A"},
			{ID: "2", Title: "B", Description: "Guide", CreatedAt: "2024-05-01T10:00:00Z"},
		}, nil).Once()

		l := usecase.NewResourceUsecase(gw).NewLister()
		assert.Equal(t, domain.ListLoading, l.State())

		require.NoError(t, l.Load(context.Background()))
		assert.Equal(t, domain.ListLoaded, l.State())

		cards := l.Cards()
		require.Len(t, cards, 2)
		assert.Equal(t, "A", cards[0].Title)
		assert.Equal(t, "No description available", cards[0].Description)
		assert.Empty(t, cards[0].Added)
		assert.Equal(t, "https://backend.test/resources/1", cards[0].DetailURL)
		assert.Equal(t, "https://backend.test/resources/1/download", cards[0].DownloadURL)

		assert.Equal(t, "B", cards[1].Title)
		assert.Equal(t, "Guide", cards[1].Description)
		assert.Equal(t, "May 1, 2024", cards[1].Added)
	})

	t.Run("Should error and retry exactly once per call", func(t *testing.T) {
		gw := new(MockResourceGateway)
		gw.On("ListResources", mock.Anything).Return(nil, domain.ErrUpstream).Once()

		l := usecase.NewResourceUsecase(gw).NewLister()
		require.ErrorIs(t, l.Load(context.Background()), domain.ErrUpstream)
		assert.Equal(t, domain.ListErrored, l.State())
		assert.Equal(t, usecase.MsgResourcesFailed, l.ErrorMessage())
		assert.Empty(t, l.Cards())

		gw.On("ListResources", mock.Anything).Return([]domain.Resource{{ID: "1", Title: "A"}}, nil).Once()
		require.NoError(t, l.Retry(context.Background()))
		gw.AssertNumberOfCalls(t, "ListResources", 2)
		assert.Equal(t, domain.ListLoaded, l.State())

		require.NoError(t, l.Retry(context.Background()))
		gw.AssertNumberOfCalls(t, "ListResources", 2)
	})

	t.Run("Should ignore results after detach", func(t *testing.T) {
		gw := new(MockResourceGateway)
		l := usecase.NewResourceUsecase(gw).NewLister()
		gw.On("ListResources", mock.Anything).Run(func(mock.Arguments) { l.Detach() }).
			Return([]domain.Resource{{ID: "1", Title: "A"}}, nil).Once()

		require.NoError(t, l.Load(context.Background()))
		assert.Equal(t, domain.ListLoading, l.State())
		assert.Empty(t, l.Resources())
	})
}

func TestHealthWithoutRedis(t *testing.T) {
	got := usecase.NewHealthUsecase(nil).Check(context.Background())
	assert.Equal(t, map[string]string{"status": "ok", "redis": "disabled"}, got)
}
