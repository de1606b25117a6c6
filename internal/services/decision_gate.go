package services

import (
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"strings"
)

// Decide maps an oracle verdict to the next notification step. A verdict
// without feedback text is a broken oracle contract in both directions.
func Decide(verdict models.Verdict) (models.Decision, error) {
	if strings.TrimSpace(verdict.Feedback) == "" {
		return "", fmt.Errorf("%w: verdict has no feedback", models.ErrInvalidOracleResponse)
	}

	if verdict.Selected {
		return models.NotifySelected, nil
	}
	return models.NotifyRejected, nil
}
