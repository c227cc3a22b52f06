// Package wizard implements the conversational flow as an explicit state
// machine: an ordered run of gated questions, a contact form, and a terminal
// success state. Rendering is someone else's job; this package only owns
// state and transitions, which keeps every rule unit-testable.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"math"

	"lead-capture-backend/internal/domain"
	"lead-capture-backend/pkg/validation"
)

// Phase is the transient submission sub-state. It is orthogonal to the step:
// the machine sits on the contact form while a request is in flight.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
)

// Submitter sends the collected lead and answers to the server.
type Submitter interface {
	Submit(ctx context.Context, lead domain.LeadContact, answers domain.Answers) (*domain.SubmissionResult, error)
}

// ErrSubmissionInFlight is returned when Submit is called while a previous
// attempt has not finished.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Machine holds the wizard state. Step 0 is the hero screen, steps 1..N the
// questions, step N+1 the contact form. Submitted is terminal and only set
// after a confirmed ok result.
type Machine struct {
	questions []domain.Question
	submitter Submitter

	step      int
	answers   domain.Answers
	lead      domain.LeadContact
	phase     Phase
	submitted bool
}

// New creates a machine over the given question sequence. The questions are
// injected, never read from ambient globals.
func New(questions []domain.Question, submitter Submitter) *Machine {
	return &Machine{
		questions: questions,
		submitter: submitter,
		answers:   domain.Answers{},
	}
}

func (m *Machine) Step() int                { return m.step }
func (m *Machine) Phase() Phase             { return m.phase }
func (m *Machine) Submitted() bool          { return m.submitted }
func (m *Machine) Lead() domain.LeadContact { return m.lead }

// TotalSteps counts the questions plus the contact form.
func (m *Machine) TotalSteps() int { return len(m.questions) + 1 }

// CurrentQuestion returns the question for the current step, if the machine
// is on one.
func (m *Machine) CurrentQuestion() (domain.Question, bool) {
	if m.step < 1 || m.step > len(m.questions) {
		return domain.Question{}, false
	}
	return m.questions[m.step-1], true
}

// OnContactForm reports whether the machine has passed every question.
func (m *Machine) OnContactForm() bool {
	return m.step == m.TotalSteps()
}

// Answers returns a snapshot of the collected answers.
func (m *Machine) Answers() domain.Answers {
	snapshot := make(domain.Answers, len(m.answers))
	for k, v := range m.answers {
		snapshot[k] = v
	}
	return snapshot
}

// SetAnswer records the selection for one question. Only that key changes,
// and the step never moves.
func (m *Machine) SetAnswer(id, value string) {
	m.answers[id] = value
}

// SetLead replaces the contact fields. No transition.
func (m *Machine) SetLead(lead domain.LeadContact) {
	m.lead = lead
}

// CanAdvance reports whether Advance would move. The hero step always may;
// a question step may when it is optional or answered; the contact form
// advances only through Submit.
func (m *Machine) CanAdvance() bool {
	if m.step == 0 {
		return true
	}
	q, ok := m.CurrentQuestion()
	if !ok {
		return false
	}
	return !q.Required || m.answers[q.ID] != ""
}

// Advance moves one step forward. A rejected guard is a no-op, not an error;
// the return value just tells the caller whether anything happened.
func (m *Machine) Advance() bool {
	if !m.CanAdvance() {
		return false
	}
	m.step++
	return true
}

// Back moves one step toward the hero, clamped at 0. Answers entered so far
// are kept untouched.
func (m *Machine) Back() {
	if m.step > 0 {
		m.step--
	}
}

// LeadValid applies the three contact predicates.
func (m *Machine) LeadValid() bool {
	return validation.Lead(m.lead.Name, m.lead.Email, m.lead.Phone)
}

// Progress derives the completion percentage from the current step alone.
func (m *Machine) Progress() int {
	total := m.TotalSteps()
	step := m.step
	if step > total {
		step = total
	}
	return int(math.Round(float64(step) / float64(total) * 100))
}

// Submit sends the collected data. It is a no-op unless the machine is on
// the contact form with a valid lead, and refuses to double-send while a
// request is in flight. On any failure the machine stays on the contact form
// with the phase reset, so the user can retry; on ok it becomes Submitted.
func (m *Machine) Submit(ctx context.Context) error {
	if !m.OnContactForm() || !m.LeadValid() {
		return nil
	}
	if m.phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}

	m.phase = PhaseSubmitting
	result, err := m.submitter.Submit(ctx, m.lead, m.Answers())
	m.phase = PhaseIdle
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	if !result.OK {
		if result.Error != "" {
			return errors.New(result.Error)
		}
		return errors.New("submission rejected")
	}

	m.submitted = true
	return nil
}
