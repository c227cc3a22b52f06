package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"lead-capture-backend/internal/domain"
	"lead-capture-backend/internal/usecase"
	"lead-capture-backend/pkg/apperror"
	"lead-capture-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Sinks
type MockSheetWriter struct {
	mock.Mock
}

func (m *MockSheetWriter) Write(ctx context.Context, req *domain.SubmissionRequest) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionResult), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, lead domain.LeadContact, answers domain.Answers) domain.DispatchReport {
	args := m.Called(ctx, lead, answers)
	return args.Get(0).(domain.DispatchReport)
}

const webhookURL = "https://script.google.com/macros/s/test/exec"

func validLead() domain.LeadContact {
	return domain.LeadContact{Name: "Jane Doe", Email: "jane@x.com", Phone: "08012345678"}
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

func TestSubmitRequiredFields(t *testing.T) {
	sheet := new(MockSheetWriter)
	notifier := new(MockNotifier)
	uc := usecase.NewLeadUsecase(sheet, notifier, webhookURL, validator.New())

	lead := validLead()
	lead.Phone = ""
	err := uc.Submit(context.Background(), lead, nil, domain.SubmissionMeta{})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	assert.EqualError(t, err, "Missing required fields")
	sheet.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestSubmitMissingWebhookConfig(t *testing.T) {
	uc := usecase.NewLeadUsecase(new(MockSheetWriter), new(MockNotifier), "", validator.New())

	err := uc.Submit(context.Background(), validLead(), nil, domain.SubmissionMeta{})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appCode(t, err))
	assert.EqualError(t, err, "Missing APPS_SCRIPT_WEBAPP_URL")
}

func TestSubmitWebhookRejection(t *testing.T) {
	sheet := new(MockSheetWriter)
	notifier := new(MockNotifier)
	uc := usecase.NewLeadUsecase(sheet, notifier, webhookURL, validator.New())

	sheet.On("Write", mock.Anything, mock.AnythingOfType("*domain.SubmissionRequest")).
		Return(&domain.SubmissionResult{OK: false, Error: "quota exceeded"}, nil)

	err := uc.Submit(context.Background(), validLead(), domain.Answers{"concern": "Acne"}, domain.SubmissionMeta{})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, appCode(t, err))
	assert.EqualError(t, err, "quota exceeded")
	// no notification is attempted when persistence failed
	notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitWebhookTransportError(t *testing.T) {
	sheet := new(MockSheetWriter)
	notifier := new(MockNotifier)
	uc := usecase.NewLeadUsecase(sheet, notifier, webhookURL, validator.New())

	sheet.On("Write", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	err := uc.Submit(context.Background(), validLead(), nil, domain.SubmissionMeta{})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appCode(t, err))
	notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitIgnoresNotificationFailures(t *testing.T) {
	sheet := new(MockSheetWriter)
	notifier := new(MockNotifier)
	uc := usecase.NewLeadUsecase(sheet, notifier, webhookURL, validator.New())

	sheet.On("Write", mock.Anything, mock.Anything).Return(&domain.SubmissionResult{OK: true}, nil)
	notifier.On("Dispatch", mock.Anything, validLead(), mock.Anything).Return(domain.DispatchReport{
		ConfirmationErr: errors.New("smtp down"),
		AlertErr:        errors.New("smtp down"),
	})

	err := uc.Submit(context.Background(), validLead(), nil, domain.SubmissionMeta{})

	assert.NoError(t, err, "notification failures never change the committed result")
	notifier.AssertExpectations(t)
}

func TestSubmitForwardsMeta(t *testing.T) {
	sheet := new(MockSheetWriter)
	notifier := new(MockNotifier)
	uc := usecase.NewLeadUsecase(sheet, notifier, webhookURL, validator.New())

	meta := domain.SubmissionMeta{UserAgent: "ua", IP: "1.2.3.4", Page: "https://example.com"}
	sheet.On("Write", mock.Anything, mock.MatchedBy(func(req *domain.SubmissionRequest) bool {
		return req.Meta == meta && req.Answers["concern"] == "Acne"
	})).Return(&domain.SubmissionResult{OK: true}, nil)
	notifier.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return(domain.DispatchReport{})

	err := uc.Submit(context.Background(), validLead(), domain.Answers{"concern": "Acne"}, meta)

	assert.NoError(t, err)
	sheet.AssertExpectations(t)
}
