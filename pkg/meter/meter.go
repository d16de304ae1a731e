package meter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxScore is the number of checks a password can pass.
	MaxScore = 4

	minPasswordLength = 8
	specialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// Strength is the label derived from a score.
type Strength string

const (
	StrengthStrong   Strength = "Cyber-Secure Password!"
	StrengthModerate Strength = "Moderate Encryption Level"
	StrengthWeak     Strength = "Security Breach Risk Detected"
)

// Level is a machine friendly form of Strength.
type Level string

const (
	LevelStrong   Level = "strong"
	LevelModerate Level = "moderate"
	LevelWeak     Level = "weak"
)

// Feedback messages, one per check.
const (
	FeedbackLength  = "Password should be at least 8 characters long."
	FeedbackCase    = "Include both uppercase and lowercase letters."
	FeedbackDigit   = "Add at least one number (0-9)."
	FeedbackSpecial = "Include at least one special character."
)

type check struct {
	name    string
	passes  func(string) bool
	message string
}

// checks run in this order and feedback follows it.
var checks = []check{
	{name: "length", passes: hasMinLength, message: FeedbackLength},
	{name: "case", passes: hasMixedCase, message: FeedbackCase},
	{name: "digit", passes: hasDigit, message: FeedbackDigit},
	{name: "special", passes: hasSpecial, message: FeedbackSpecial},
}

// Result is the outcome of a single evaluation.
type Result struct {
	Score    int      `json:"score" yaml:"score"`
	Strength Strength `json:"strength" yaml:"strength"`
	Feedback []string `json:"feedback" yaml:"feedback"`
}

// Evaluate scores the password against all checks. It accepts any string,
// including the empty one, and never fails.
func Evaluate(password string) *Result {
	r := &Result{Feedback: make([]string, 0, len(checks))}
	for _, c := range checks {
		if c.passes(password) {
			r.Score++
			continue
		}
		r.Feedback = append(r.Feedback, c.message)
	}
	r.Strength = StrengthFor(r.Score)
	return r
}

// Checks returns the check names in evaluation order.
func Checks() []string {
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.name)
	}
	return names
}

// StrengthFor maps a score to its label.
func StrengthFor(score int) Strength {
	switch {
	case score >= MaxScore:
		return StrengthStrong
	case score == MaxScore-1:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Percent is the score as a share of MaxScore.
func (r *Result) Percent() int {
	return r.Score * 100 / MaxScore
}

func (r *Result) Level() Level {
	switch r.Strength {
	case StrengthStrong:
		return LevelStrong
	case StrengthModerate:
		return LevelModerate
	default:
		return LevelWeak
	}
}

func hasMinLength(s string) bool {
	return utf8.RuneCountInString(s) >= minPasswordLength
}

// hasMixedCase only considers ASCII letters.
func hasMixedCase(s string) bool {
	var upper, lower bool
	for i := 0; i < len(s); i++ {
		switch b := s[i]; {
		case b >= 'A' && b <= 'Z':
			upper = true
		case b >= 'a' && b <= 'z':
			lower = true
		}
		if upper && lower {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasSpecial(s string) bool {
	return strings.ContainsAny(s, specialCharacters)
}
