package v1

import (
	"lead-capture-backend/internal/delivery/http/response"
	"lead-capture-backend/internal/domain"
	"lead-capture-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadUC  domain.LeadUsecase
	siteURL string
}

// NewLeadHandler registers the lead submission route (public, no auth).
func NewLeadHandler(public *gin.RouterGroup, leadUC domain.LeadUsecase, siteURL string) {
	handler := &LeadHandler{
		leadUC:  leadUC,
		siteURL: siteURL,
	}

	public.POST("/lead", handler.SubmitLead)
}

// leadPayload is the client-facing body. Meta is never read from here; the
// server fills it from headers and configuration.
type leadPayload struct {
	Lead    domain.LeadContact `json:"lead"`
	Answers domain.Answers     `json:"answers"`
}

// SubmitLead godoc
// @Summary      Submit a captured lead
// @Description  Persists a lead through the spreadsheet webhook and triggers best-effort notification emails. Public endpoint.
// @Tags         lead
// @Accept       json
// @Produce      json
// @Param        lead  body      leadPayload  true  "Lead and questionnaire answers"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Failure      502   {object}  response.Envelope
// @Router       /lead [post]
func (h *LeadHandler) SubmitLead(c *gin.Context) {
	var req leadPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		// An undecodable body is an unexpected failure, not a field
		// validation miss; only absent lead fields get a 400.
		c.Error(apperror.Internal(err.Error(), err))
		return
	}

	meta := domain.SubmissionMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.GetHeader("X-Forwarded-For"),
		Page:      h.siteURL,
	}
	if meta.IP == "" {
		meta.IP = c.ClientIP()
	}

	if err := h.leadUC.Submit(c.Request.Context(), req.Lead, req.Answers, meta); err != nil {
		c.Error(err)
		return
	}

	response.OK(c)
}
