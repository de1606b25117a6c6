package models

import "time"

// StageTransition is a journal row describing one stage change of an application.
type StageTransition struct {
	ID             int
	CandidateEmail string `gorm:"index:idx_transition_key"`
	Role           Role   `gorm:"index:idx_transition_key"`
	FromStage      Stage
	ToStage        Stage
	CreatedAt      time.Time `gorm:"index"`
}
