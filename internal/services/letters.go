package services

import (
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"net/url"
	"strings"
)

const signature = "best,\nthe ai recruiting team"

// Letters renders candidate messages. Template text is lowercase; the oracle
// feedback is embedded exactly as stored.
type Letters struct {
	companyName string
}

func NewLetters(companyName string) *Letters {
	return &Letters{companyName: companyName}
}

func (l *Letters) Selection(app models.Application) models.Message {
	role := roleName(app.Key.Role)

	var sb strings.Builder
	sb.WriteString("hi there,\n\n")
	fmt.Fprintf(&sb, "congratulations! you've been selected for the %s position at %s.\n\n", role, l.company())
	sb.WriteString("we really liked what we saw in your resume. ")
	sb.WriteString("next step is a technical interview with our team, ")
	sb.WriteString("you'll receive the interview details in a separate email shortly.\n\n")
	sb.WriteString(signature)

	return models.Message{
		Kind:      models.SelectionMessage,
		Recipient: app.Key.CandidateEmail,
		Subject:   fmt.Sprintf("you've been selected for the %s role at %s", role, l.company()),
		Body:      sb.String(),
	}
}

// Rejection embeds the stored feedback and points to learning material for
// every missing skill. Empty feedback is refused.
func (l *Letters) Rejection(app models.Application) (models.Message, error) {
	feedback := strings.TrimSpace(app.Feedback())
	if feedback == "" {
		return models.Message{}, fmt.Errorf("%w: %s", models.ErrMissingFeedback, app.Key)
	}

	role := roleName(app.Key.Role)

	var sb strings.Builder
	sb.WriteString("hi there,\n\n")
	fmt.Fprintf(&sb, "thanks a lot for applying for the %s position at %s. ", role, l.company())
	sb.WriteString("we won't be moving forward with your application this time, ")
	sb.WriteString("but we wanted to share some honest feedback:\n\n")
	sb.WriteString(feedback)
	sb.WriteString("\n\n")

	if app.Verdict != nil && len(app.Verdict.MissingSkills) > 0 {
		sb.WriteString("a few resources that might help you level up:\n")
		for _, skill := range app.Verdict.MissingSkills {
			fmt.Fprintf(&sb, "- %s: %s\n", strings.ToLower(skill), learningResource(skill))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("keep building and please try again, we'd love to hear from you.\n\n")
	sb.WriteString(signature)

	return models.Message{
		Kind:      models.RejectionMessage,
		Recipient: app.Key.CandidateEmail,
		Subject:   fmt.Sprintf("your %s application at %s", role, l.company()),
		Body:      sb.String(),
	}, nil
}

func (l *Letters) Confirmation(app models.Application, meeting models.MeetingReference,
	slot models.InterviewSlot) models.Message {

	role := roleName(app.Key.Role)

	var sb strings.Builder
	sb.WriteString("hi there,\n\n")
	fmt.Fprintf(&sb, "your technical interview for the %s position at %s is booked.\n\n", role, l.company())
	fmt.Fprintf(&sb, "when: %s\n", strings.ToLower(slot.LocalTime()))
	fmt.Fprintf(&sb, "timezone: %s\n", slot.Timezone)
	fmt.Fprintf(&sb, "duration: %d minutes\n", slot.DurationMinutes())
	fmt.Fprintf(&sb, "join link: %s\n\n", meeting.JoinURL)
	sb.WriteString("please join 5 minutes early. ")
	sb.WriteString("be confident, don't be nervous, and prepare well. you've got this.\n\n")
	sb.WriteString(signature)

	return models.Message{
		Kind:      models.ConfirmationMessage,
		Recipient: app.Key.CandidateEmail,
		Subject:   fmt.Sprintf("%s interview at %s: %s", role, l.company(), strings.ToLower(slot.LocalTime())),
		Body:      sb.String(),
	}
}

func (l *Letters) company() string {
	if l.companyName == "" {
		return "our company"
	}
	return strings.ToLower(l.companyName)
}

func roleName(role models.Role) string {
	return strings.ToLower(role.Title())
}

func learningResource(skill string) string {
	return "https://www.coursera.org/search?query=" + url.QueryEscape(strings.ToLower(skill))
}
