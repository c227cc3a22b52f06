package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lead-capture-backend/config"
	v1 "lead-capture-backend/internal/delivery/http/v1"
	"lead-capture-backend/internal/domain"
	"lead-capture-backend/pkg/apperror"
	"lead-capture-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLeadUsecase struct {
	mock.Mock
}

func (m *MockLeadUsecase) Submit(ctx context.Context, lead domain.LeadContact, answers domain.Answers, meta domain.SubmissionMeta) error {
	args := m.Called(ctx, lead, answers, meta)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init()
	m.Run()
}

func newRouter(uc domain.LeadUsecase) http.Handler {
	return v1.NewRouter(v1.RouterDeps{
		LeadUC: uc,
		Config: &config.Config{SiteURL: "https://www.serenityspang.com"},
	})
}

func postLead(t *testing.T, handler http.Handler, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/lead", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

const validBody = `{"lead":{"name":"Jane Doe","email":"jane@x.com","phone":"08012345678"},"answers":{"concern":"Acne"}}`

func TestSubmitLeadOK(t *testing.T) {
	uc := new(MockLeadUsecase)
	uc.On("Submit", mock.Anything, domain.LeadContact{Name: "Jane Doe", Email: "jane@x.com", Phone: "08012345678"},
		domain.Answers{"concern": "Acne"}, mock.AnythingOfType("domain.SubmissionMeta")).Return(nil)

	w, envelope := postLead(t, newRouter(uc), validBody, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope["ok"])
	assert.NotContains(t, envelope, "error")
	uc.AssertExpectations(t)
}

func TestSubmitLeadStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     *apperror.AppError
		code    int
		message string
	}{
		{"missing fields", apperror.BadRequest("Missing required fields"), http.StatusBadRequest, "Missing required fields"},
		{"missing config", apperror.Internal("Missing APPS_SCRIPT_WEBAPP_URL", nil), http.StatusInternalServerError, "Missing APPS_SCRIPT_WEBAPP_URL"},
		{"webhook rejection", apperror.BadGateway("quota exceeded", nil), http.StatusBadGateway, "quota exceeded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(MockLeadUsecase)
			uc.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tc.err)

			w, envelope := postLead(t, newRouter(uc), validBody, nil)

			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, false, envelope["ok"])
			assert.Equal(t, tc.message, envelope["error"])
		})
	}
}

func TestSubmitLeadMalformedBody(t *testing.T) {
	uc := new(MockLeadUsecase)

	w, envelope := postLead(t, newRouter(uc), `{"lead":`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, envelope["ok"])
	uc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitLeadBuildsMetaFromHeaders(t *testing.T) {
	uc := new(MockLeadUsecase)
	var got domain.SubmissionMeta
	uc.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(3).(domain.SubmissionMeta)
		}).Return(nil)

	postLead(t, newRouter(uc), validBody, map[string]string{
		"User-Agent":      "funnel-test/1.0",
		"X-Forwarded-For": "203.0.113.9",
	})

	assert.Equal(t, "funnel-test/1.0", got.UserAgent)
	assert.Equal(t, "203.0.113.9", got.IP)
	assert.Equal(t, "https://www.serenityspang.com", got.Page)
}

func TestPanicBecomesEnvelope(t *testing.T) {
	uc := new(MockLeadUsecase)
	uc.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("boom") }).Return(nil)

	w, envelope := postLead(t, newRouter(uc), validBody, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, envelope["ok"])
	assert.Equal(t, "boom", envelope["error"])
}
