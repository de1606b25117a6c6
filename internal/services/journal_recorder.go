package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/recruit-agent/internal/domain/events"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/logger"
	log "github.com/sirupsen/logrus"
)

type stageJournal interface {
	Record(ctx context.Context, transition models.StageTransition) error
}

// JournalRecorder writes every published stage change to the journal.
type JournalRecorder struct {
	journal stageJournal
}

func NewJournalRecorder(bus EventBus.Bus, journal stageJournal) (*JournalRecorder, error) {
	recorder := &JournalRecorder{journal: journal}

	err := bus.SubscribeAsync(events.StageChangedTopic, recorder.onStageChanged, true)
	if err != nil {
		return nil, err
	}

	return recorder, nil
}

func (r *JournalRecorder) onStageChanged(event events.StageChanged) {
	transition := models.StageTransition{
		CandidateEmail: event.Application.Key.CandidateEmail,
		Role:           event.Application.Key.Role,
		FromStage:      event.From,
		ToStage:        event.To,
		CreatedAt:      event.At,
	}

	if err := r.journal.Record(context.Background(), transition); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to record stage change %s -> %s for %s: %v",
				event.From, event.To, event.Application.Key, err)
	}
}
