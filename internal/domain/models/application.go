package models

import (
	"strings"
	"time"
)

// ApplicationKey identifies one candidate's submission for one role.
type ApplicationKey struct {
	CandidateEmail string
	Role           Role
}

func NewApplicationKey(candidateEmail string, role Role) ApplicationKey {
	return ApplicationKey{CandidateEmail: strings.ToLower(strings.TrimSpace(candidateEmail)), Role: role}
}

func (k ApplicationKey) String() string {
	return k.CandidateEmail + "_" + string(k.Role)
}

type MeetingReference struct {
	ID       string    `json:"id"`
	JoinURL  string    `json:"join_url"`
	StartsAt time.Time `json:"starts_at"`
	Timezone string    `json:"timezone"`
}

type Application struct {
	Key        ApplicationKey
	ResumeText string
	Filename   string
	Stage      Stage
	Verdict    *Verdict
	Meeting    *MeetingReference
	UploadedAt time.Time
	UpdatedAt  time.Time
}

func NewApplication(key ApplicationKey, filename string, resumeText string) Application {
	return Application{
		Key:        key,
		ResumeText: resumeText,
		Filename:   filename,
		Stage:      StageUploaded,
	}
}

// Clone returns a deep copy so that callers never share verdict or meeting pointers with the store.
func (a Application) Clone() Application {
	clone := a
	if a.Verdict != nil {
		verdict := *a.Verdict
		verdict.MatchingSkills = append([]string(nil), a.Verdict.MatchingSkills...)
		verdict.MissingSkills = append([]string(nil), a.Verdict.MissingSkills...)
		clone.Verdict = &verdict
	}
	if a.Meeting != nil {
		meeting := *a.Meeting
		clone.Meeting = &meeting
	}
	return clone
}

func (a Application) IsSelected() bool {
	return a.Verdict != nil && a.Verdict.Selected
}

func (a Application) Feedback() string {
	if a.Verdict == nil {
		return ""
	}
	return a.Verdict.Feedback
}
