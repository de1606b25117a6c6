package models

import "slices"

type ExperienceLevel string

const (
	Junior ExperienceLevel = "junior"
	Mid    ExperienceLevel = "mid"
	Senior ExperienceLevel = "senior"
)

// Verdict is the scoring oracle's judgement of a resume against a role.
type Verdict struct {
	Selected        bool            `json:"selected"`
	Feedback        string          `json:"feedback"`
	MatchingSkills  []string        `json:"matching_skills"`
	MissingSkills   []string        `json:"missing_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
}

type Decision string

const (
	NotifySelected Decision = "notify_selected"
	NotifyRejected Decision = "notify_rejected"
)

func (d Decision) Stage() Stage {
	if d == NotifySelected {
		return StageSelected
	}
	return StageRejected
}

// Equal compares two possibly nil verdicts; nil and empty skill lists are equal.
func (v *Verdict) Equal(other *Verdict) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.Selected == other.Selected &&
		v.Feedback == other.Feedback &&
		v.ExperienceLevel == other.ExperienceLevel &&
		slices.Equal(v.MatchingSkills, other.MatchingSkills) &&
		slices.Equal(v.MissingSkills, other.MissingSkills)
}
