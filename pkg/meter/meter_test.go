package meter

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		score    int
		strength Strength
		feedback []string
	}{
		{
			name:     "empty",
			password: "",
			score:    0,
			strength: StrengthWeak,
			feedback: []string{FeedbackLength, FeedbackCase, FeedbackDigit, FeedbackSpecial},
		},
		{
			name:     "all checks pass",
			password: "Abcdefg1!",
			score:    4,
			strength: StrengthStrong,
			feedback: []string{},
		},
		{
			name:     "lowercase only",
			password: "abcdefgh",
			score:    1,
			strength: StrengthWeak,
			feedback: []string{FeedbackCase, FeedbackDigit, FeedbackSpecial},
		},
		{
			name:     "missing special",
			password: "Abcdefg1",
			score:    3,
			strength: StrengthModerate,
			feedback: []string{FeedbackSpecial},
		},
		{
			name:     "short but otherwise strong",
			password: "Ab1!",
			score:    3,
			strength: StrengthModerate,
			feedback: []string{FeedbackLength},
		},
		{
			name:     "uppercase only",
			password: "ABCDEFGH1$",
			score:    3,
			strength: StrengthModerate,
			feedback: []string{FeedbackCase},
		},
		{
			name:     "digits only",
			password: "12345678",
			score:    2,
			strength: StrengthWeak,
			feedback: []string{FeedbackCase, FeedbackSpecial},
		},
		{
			name:     "backtick and tilde are not special",
			password: "Abcdefg1`~",
			score:    3,
			strength: StrengthModerate,
			feedback: []string{FeedbackSpecial},
		},
		{
			name:     "non ascii letters do not count for case",
			password: "ÄÖÜäöüß1!",
			score:    3,
			strength: StrengthModerate,
			feedback: []string{FeedbackCase},
		},
		{
			name:     "unicode decimal digit",
			password: "Abcdefg٣!",
			score:    4,
			strength: StrengthStrong,
			feedback: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(tt.password)
			require.NotNil(t, r)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.strength, r.Strength)
			assert.Equal(t, tt.feedback, r.Feedback)
		})
	}
}

func TestEvaluate_Length(t *testing.T) {
	for n := 0; n < 8; n++ {
		r := Evaluate(strings.Repeat("a", n))
		assert.Contains(t, r.Feedback, FeedbackLength, "length %d", n)
	}

	for _, n := range []int{8, 9, 12, 64, 1024} {
		r := Evaluate(strings.Repeat("a", n))
		assert.NotContains(t, r.Feedback, FeedbackLength, "length %d", n)
		// no extra credit beyond the minimum
		assert.Equal(t, 1, r.Score, "length %d", n)
	}
}

func TestEvaluate_LengthCountsRunes(t *testing.T) {
	// 7 runes, 14 bytes
	r := Evaluate("ééééééé")
	assert.Contains(t, r.Feedback, FeedbackLength)

	r = Evaluate("éééééééé")
	assert.NotContains(t, r.Feedback, FeedbackLength)
}

func TestEvaluate_SpecialCharacters(t *testing.T) {
	for _, c := range specialCharacters {
		r := Evaluate(string(c))
		assert.NotContains(t, r.Feedback, FeedbackSpecial, "char %q", c)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	for _, p := range []string{"", "abc", "Abcdefg1!", "pa ss\tword\n"} {
		assert.Equal(t, Evaluate(p), Evaluate(p))
	}
}

func TestEvaluate_ScoreMatchesFeedback(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	alphabet := []rune("abcXYZ019!@#_ \t`~éß٣漢\x00")

	for i := 0; i < 5000; i++ {
		n := rng.IntN(16)
		b := make([]rune, n)
		for j := range b {
			b[j] = alphabet[rng.IntN(len(alphabet))]
		}

		r := Evaluate(string(b))
		require.Equal(t, MaxScore-len(r.Feedback), r.Score, "password %q", string(b))
		require.GreaterOrEqual(t, r.Score, 0)
		require.LessOrEqual(t, r.Score, MaxScore)
		require.Equal(t, StrengthFor(r.Score), r.Strength)
	}
}

func TestStrengthFor(t *testing.T) {
	tests := []struct {
		score int
		want  Strength
		level Level
	}{
		{0, StrengthWeak, LevelWeak},
		{1, StrengthWeak, LevelWeak},
		{2, StrengthWeak, LevelWeak},
		{3, StrengthModerate, LevelModerate},
		{4, StrengthStrong, LevelStrong},
	}

	for _, tt := range tests {
		got := StrengthFor(tt.score)
		assert.Equal(t, tt.want, got, "score %d", tt.score)

		r := &Result{Score: tt.score, Strength: got}
		assert.Equal(t, tt.level, r.Level(), "score %d", tt.score)
		assert.Equal(t, tt.score*25, r.Percent(), "score %d", tt.score)
	}
}

func TestChecks(t *testing.T) {
	assert.Equal(t, []string{"length", "case", "digit", "special"}, Checks())
	assert.Len(t, Checks(), MaxScore)
}

func FuzzEvaluate(f *testing.F) {
	for _, s := range []string{"", "abcdefgh", "Abcdefg1", "Abcdefg1!", "\xff\xfe"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		r := Evaluate(s)
		if r.Score != MaxScore-len(r.Feedback) {
			t.Fatalf("score %d with %d feedback messages for %q", r.Score, len(r.Feedback), s)
		}
		if r.Strength != StrengthFor(r.Score) {
			t.Fatalf("strength %q for score %d", r.Strength, r.Score)
		}
	})
}
