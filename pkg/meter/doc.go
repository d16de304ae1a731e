// Package meter scores passwords against a fixed set of heuristic checks
// (length, case mixing, digits, special characters) and lays out the gauge
// used to display the score.
//
// The score is the number of checks a password passes, 0 through MaxScore.
// Every failed check contributes exactly one feedback message, so
// Score == MaxScore - len(Feedback) for any input. Evaluation holds no state
// and is safe for concurrent use.
package meter
