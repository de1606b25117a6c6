package events

import (
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"time"
)

var StageChangedTopic = "ApplicationStageChangedEvent"

type StageChanged struct {
	Application models.Application
	From        models.Stage
	To          models.Stage
	At          time.Time
}
