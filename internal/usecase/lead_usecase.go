package usecase

import (
	"context"

	"lead-capture-backend/internal/domain"
	"lead-capture-backend/pkg/apperror"
	"lead-capture-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type leadUsecase struct {
	sheet      domain.SheetWriter
	notifier   domain.Notifier
	webhookURL string
	validate   *validator.Validate
}

// NewLeadUsecase wires the submission pipeline. webhookURL is passed
// separately from the writer so a missing configuration can be reported as a
// deployment fault distinct from an upstream failure.
func NewLeadUsecase(sheet domain.SheetWriter, notifier domain.Notifier, webhookURL string, validate *validator.Validate) domain.LeadUsecase {
	return &leadUsecase{
		sheet:      sheet,
		notifier:   notifier,
		webhookURL: webhookURL,
		validate:   validate,
	}
}

// Submit runs the whole pipeline for one lead. Ordering is fixed: required
// fields, configuration, sheet write, then notifications. The notification
// outcome is logged and discarded — persistence is the only durability
// guarantee this service makes.
func (u *leadUsecase) Submit(ctx context.Context, lead domain.LeadContact, answers domain.Answers, meta domain.SubmissionMeta) error {
	if err := u.validate.Struct(lead); err != nil {
		return apperror.BadRequest("Missing required fields")
	}

	if u.webhookURL == "" {
		return apperror.Internal("Missing APPS_SCRIPT_WEBAPP_URL", nil)
	}

	result, err := u.sheet.Write(ctx, &domain.SubmissionRequest{
		Lead:    lead,
		Answers: answers,
		Meta:    meta,
	})
	if err != nil {
		return apperror.Internal(err.Error(), err)
	}
	if !result.OK {
		message := result.Error
		if message == "" {
			message = "Sheet write failed"
		}
		return apperror.BadGateway(message, nil)
	}

	// Fire-and-forget: the report is computed so failures stay visible in
	// code and logs, then dropped. It must never change the response.
	report := u.notifier.Dispatch(ctx, lead, answers)
	if report.ConfirmationErr != nil {
		logger.Log.Warn("confirmation email failed", "error", report.ConfirmationErr, "email", lead.Email)
	}
	if report.AlertErr != nil {
		logger.Log.Warn("internal alert failed", "error", report.AlertErr)
	}

	return nil
}
