package api

import (
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"time"
)

type applicationResponse struct {
	CandidateEmail string                   `json:"candidate_email"`
	Role           models.Role              `json:"role"`
	Filename       string                   `json:"filename"`
	Stage          models.Stage             `json:"stage"`
	Verdict        *models.Verdict          `json:"verdict,omitempty"`
	Meeting        *models.MeetingReference `json:"meeting,omitempty"`
	UploadedAt     time.Time                `json:"uploaded_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func toApplicationResponse(app models.Application) applicationResponse {
	return applicationResponse{
		CandidateEmail: app.Key.CandidateEmail,
		Role:           app.Key.Role,
		Filename:       app.Filename,
		Stage:          app.Stage,
		Verdict:        app.Verdict,
		Meeting:        app.Meeting,
		UploadedAt:     app.UploadedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}

type roleResponse struct {
	ID           models.Role `json:"id"`
	Title        string      `json:"title"`
	Requirements string      `json:"requirements"`
}

type transitionResponse struct {
	From models.Stage `json:"from"`
	To   models.Stage `json:"to"`
	At   time.Time    `json:"at"`
}

// CredentialsStatus reports which external integrations are configured.
type CredentialsStatus struct {
	Oracle   bool `json:"oracle"`
	Mail     bool `json:"mail"`
	Meeting  bool `json:"meeting"`
	Telegram bool `json:"telegram"`
}
