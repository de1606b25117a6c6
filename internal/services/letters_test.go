package services

import (
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func rejectedApplication(feedback string) models.Application {
	app := models.NewApplication(models.NewApplicationKey("a@x.com", models.BackendEngineer), "cv.pdf", "resume")
	app.Stage = models.StageRejected
	app.Verdict = &models.Verdict{
		Selected:      false,
		Feedback:      feedback,
		MissingSkills: []string{"Kubernetes", "CI/CD"},
	}
	return app
}

func Test_Letters_Rejection_ShouldEmbedFeedbackAndResources(t *testing.T) {
	letters := NewLetters("Acme")

	message, err := letters.Rejection(rejectedApplication("missing Kubernetes"))

	require.NoError(t, err)
	assert.Equal(t, models.RejectionMessage, message.Kind)
	assert.Equal(t, "a@x.com", message.Recipient)
	assert.Contains(t, message.Body, "missing Kubernetes")
	assert.Contains(t, message.Body, "https://www.coursera.org/search?query=kubernetes")
	assert.Contains(t, message.Body, "https://www.coursera.org/search?query=ci%2Fcd")
	assert.Contains(t, message.Body, "backend engineer")
	assert.Contains(t, message.Body, "acme")
	assert.True(t, len(message.Body) > len(signature))
	assert.Equal(t, signature, message.Body[len(message.Body)-len(signature):])
}

func Test_Letters_Rejection_EmptyFeedback_ShouldReturnMissingFeedback(t *testing.T) {
	letters := NewLetters("Acme")

	_, err := letters.Rejection(rejectedApplication(" "))

	assert.ErrorIs(t, err, models.ErrMissingFeedback)
}

func Test_Letters_Confirmation_ShouldContainLocalTimeAndJoinLink(t *testing.T) {
	location, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	app := models.NewApplication(models.NewApplicationKey("a@x.com", models.AIMLEngineer), "cv.pdf", "resume")
	slot := models.InterviewSlot{
		Start:    time.Date(2026, 10, 19, 11, 0, 0, 0, location),
		Duration: time.Hour,
		Timezone: "Asia/Kolkata",
	}
	meeting := models.MeetingReference{ID: "1", JoinURL: "https://zoom.us/j/1"}

	message := NewLetters("").Confirmation(app, meeting, slot)

	assert.Equal(t, models.ConfirmationMessage, message.Kind)
	assert.Contains(t, message.Body, "monday, 19 oct 2026 at 11:00 ist")
	assert.Contains(t, message.Body, "Asia/Kolkata")
	assert.Contains(t, message.Body, "https://zoom.us/j/1")
	assert.Contains(t, message.Body, "5 minutes early")
	assert.Contains(t, message.Body, "our company")
}

func Test_Letters_Selection_ShouldMentionRole(t *testing.T) {
	app := models.NewApplication(models.NewApplicationKey("a@x.com", models.FrontendEngineer), "cv.pdf", "resume")

	message := NewLetters("Acme").Selection(app)

	assert.Equal(t, models.SelectionMessage, message.Kind)
	assert.Contains(t, message.Body, "frontend engineer")
	assert.Contains(t, message.Subject, "acme")
}
