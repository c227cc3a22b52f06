package domain

import "context"

// LeadContact is the contact block of a submission. All three fields are
// required; the server only checks presence, the wizard applies the stricter
// (but still deliberately loose) format predicates before submitting.
type LeadContact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// Answers maps a question ID to the option the lead selected. Keys for
// optional questions may be absent.
type Answers map[string]string

// SubmissionMeta is populated server-side from request headers and
// configuration. It is never trusted from the client.
type SubmissionMeta struct {
	UserAgent string `json:"userAgent"`
	IP        string `json:"ip"`
	Page      string `json:"page"`
}

// SubmissionRequest is the payload forwarded to the persistence webhook.
type SubmissionRequest struct {
	Lead    LeadContact    `json:"lead" validate:"required"`
	Answers Answers        `json:"answers"`
	Meta    SubmissionMeta `json:"meta"`
}

// SubmissionResult is the only contract between server and client: a boolean
// ok plus an optional error string. No other field is guaranteed.
type SubmissionResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// SheetWriter persists a submission through the spreadsheet webhook.
type SheetWriter interface {
	Write(ctx context.Context, req *SubmissionRequest) (*SubmissionResult, error)
}

// Notifier sends the post-persistence emails. Implementations report per-send
// failures through the returned DispatchReport; callers are expected to
// discard it (best-effort contract).
type Notifier interface {
	Dispatch(ctx context.Context, lead LeadContact, answers Answers) DispatchReport
}

// DispatchReport carries the outcome of the two notification sends. It exists
// so the fire-and-forget contract is visible in code: the orchestrator
// computes it, logs it, and deliberately ignores it.
type DispatchReport struct {
	ConfirmationErr error
	AlertErr        error
}

// LeadUsecase drives the submission pipeline.
type LeadUsecase interface {
	// Submit validates the lead, persists via the webhook, and dispatches
	// best-effort notifications. The returned error is nil exactly when the
	// result is ok.
	Submit(ctx context.Context, lead LeadContact, answers Answers, meta SubmissionMeta) error
}
