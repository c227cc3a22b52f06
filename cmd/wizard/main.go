// Command wizard runs the lead capture flow in a terminal. It drives the
// same state machine the web page uses, posting the finished lead to the
// API and ending with the countdown redirect.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lead-capture-backend/internal/domain"
	"lead-capture-backend/internal/wizard"
	"lead-capture-backend/pkg/leadclient"
	"lead-capture-backend/pkg/validation"
)

func main() {
	endpoint := os.Getenv("LEAD_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080/v1/lead"
	}

	funnel := domain.DefaultFunnel()
	client := leadclient.New(endpoint, nil)
	machine := wizard.New(funnel.Questions, client)
	in := bufio.NewScanner(os.Stdin)

	for !machine.Submitted() {
		switch {
		case machine.Step() == 0:
			runHero(machine, funnel, in)
		case machine.OnContactForm():
			runContactForm(machine, in)
		default:
			runQuestion(machine, in)
		}
	}

	runSuccess(funnel, in)
}

func runHero(m *wizard.Machine, funnel domain.Funnel, in *bufio.Scanner) {
	fmt.Printf("\n%s — %s\n\n", funnel.BrandName, funnel.Tagline)
	fmt.Println(funnel.Headline)
	fmt.Println(funnel.Sub)
	fmt.Printf("\n[enter] Start • %s\n> ", funnel.CTA)
	if !in.Scan() {
		os.Exit(0)
	}
	m.Advance()
}

func runQuestion(m *wizard.Machine, in *bufio.Scanner) {
	q, ok := m.CurrentQuestion()
	if !ok {
		return
	}

	fmt.Printf("\n[%d%%] %s\n", m.Progress(), q.Label)
	for i, opt := range q.Options {
		marker := " "
		if m.Answers()[q.ID] == opt {
			marker = "*"
		}
		fmt.Printf("  %s %d) %s\n", marker, i+1, opt)
	}
	fmt.Print("Pick a number, [b]ack, or [enter] to continue\n> ")
	if !in.Scan() {
		os.Exit(0)
	}

	input := strings.TrimSpace(in.Text())
	switch {
	case input == "b":
		m.Back()
	case input == "":
		if !m.Advance() {
			fmt.Println("This question is required.")
		}
	default:
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
			m.SetAnswer(q.ID, q.Options[n-1])
		} else {
			fmt.Println("Not an option.")
		}
	}
}

func runContactForm(m *wizard.Machine, in *bufio.Scanner) {
	fmt.Printf("\n[%d%%] Almost there — where should we send your offer?\n", m.Progress())

	lead := m.Lead()
	lead.Name = prompt(in, "Name", lead.Name, validation.Name, "Please enter at least 2 characters.")
	lead.Email = prompt(in, "Email", lead.Email, validation.Email, "That doesn't look like an email address.")
	lead.Phone = prompt(in, "Phone", lead.Phone, validation.Phone, "Please enter at least 7 digits.")
	m.SetLead(lead)

	fmt.Print("[enter] Submit, or [b]ack\n> ")
	if !in.Scan() {
		os.Exit(0)
	}
	if strings.TrimSpace(in.Text()) == "b" {
		m.Back()
		return
	}

	if err := m.Submit(context.Background()); err != nil {
		// Same blocking alert the web page shows; the form state is kept
		// so the user can retry.
		fmt.Printf("\n!! %v\n", err)
	}
}

func prompt(in *bufio.Scanner, label, current string, valid func(string) bool, complaint string) string {
	for {
		if current != "" {
			fmt.Printf("%s [%s]: ", label, current)
		} else {
			fmt.Printf("%s: ", label)
		}
		if !in.Scan() {
			os.Exit(0)
		}
		input := strings.TrimSpace(in.Text())
		if input == "" {
			input = current
		}
		if valid(input) {
			return input
		}
		fmt.Println(complaint)
	}
}

func runSuccess(funnel domain.Funnel, in *bufio.Scanner) {
	fmt.Printf("\n✓ %s\n%s\n", funnel.ThankYouTitle, funnel.ThankYouBody)

	done := make(chan struct{})
	timer := wizard.StartRedirect(funnel.RedirectDelay,
		func(remaining int) {
			fmt.Printf("Redirecting to website in %ds...\n", remaining)
		},
		func() {
			fmt.Printf("Visit %s\n", funnel.RedirectURL)
			close(done)
		})

	// Enter goes now; the timers become no-ops once navigation happened.
	go func() {
		if in.Scan() {
			timer.GoNow()
		}
	}()

	<-done
}
