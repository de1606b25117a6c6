package services

import (
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_Decide(t *testing.T) {
	testCases := []struct {
		name     string
		verdict  models.Verdict
		expected models.Decision
		err      error
	}{
		{"rejected without feedback", models.Verdict{Selected: false, Feedback: ""}, "", models.ErrInvalidOracleResponse},
		{"selected without feedback", models.Verdict{Selected: true, Feedback: "  "}, "", models.ErrInvalidOracleResponse},
		{"rejected with feedback", models.Verdict{Selected: false, Feedback: "improve X"}, models.NotifyRejected, nil},
		{"selected with feedback", models.Verdict{Selected: true, Feedback: "great fit"}, models.NotifySelected, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := Decide(tc.verdict)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, decision)
		})
	}
}
