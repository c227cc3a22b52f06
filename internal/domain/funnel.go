package domain

import "time"

// Question is one step of the conversational flow. Options are the only
// accepted answers; Required gates advancing past the step.
type Question struct {
	ID          string
	Label       string
	Placeholder string
	Options     []string
	Required    bool
}

// Funnel bundles the static copy and flow settings for one landing funnel.
// It is built once at startup and passed around as an immutable value; no
// package-level mutable configuration.
type Funnel struct {
	BrandName     string
	Tagline       string
	Headline      string
	Sub           string
	CTA           string
	ThankYouTitle string
	ThankYouBody  string
	RedirectURL   string
	RedirectDelay time.Duration
	Questions     []Question
}

// DefaultFunnel returns the Serenity Med Spa funnel as shipped.
func DefaultFunnel() Funnel {
	return Funnel{
		BrandName:     "Serenity Med Spa",
		Tagline:       "Doctor-Led Med Spa, Ikoyi, Lagos",
		Headline:      "Refresh Your Glow: Get 10% Off Your First Treatment!",
		Sub:           "Answer 3 quick questions to claim your discount and personalize your spa experience.",
		CTA:           "Reveal My Offer",
		ThankYouTitle: "Check your email!",
		ThankYouBody:  "Discount details have been sent.",
		RedirectURL:   "https://www.serenityspang.com/",
		RedirectDelay: 5 * time.Second,
		Questions:     DefaultQuestions(),
	}
}

// DefaultQuestions returns the shipped question sequence. heardFrom is the
// only optional step.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:          "concern",
			Label:       "What's your primary skincare or beauty concern?",
			Placeholder: "Select a concern",
			Options:     []string{"Acne", "Dark Spots", "Aging", "Laser Hair Removal", "Hydration / Dryness", "Other"},
			Required:    true,
		},
		{
			ID:          "service",
			Label:       "Which service interests you most?",
			Placeholder: "Select a service",
			Options:     []string{"AI Skin Analysis", "Facials", "Laser Hair Removal", "Chemical Peel", "Infusions", "Microneedling"},
			Required:    true,
		},
		{
			ID:          "timeline",
			Label:       "How soon are you looking to book?",
			Placeholder: "Choose a timeframe",
			Options:     []string{"Within 1 week", "1-2 weeks", "Later"},
			Required:    true,
		},
		{
			ID:          "heardFrom",
			Label:       "How did you hear about us? (optional)",
			Placeholder: "Select a channel",
			Options:     []string{"Instagram", "Referral", "Google Search", "Other"},
			Required:    false,
		},
	}
}
