package services

import (
	"context"
	"github.com/maxaizer/recruit-agent/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type JournalCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

// JournalCleaner prunes stage journal rows older than the retention period every night.
type JournalCleaner struct {
	journal         JournalCleanupRepository
	cron            *cron.Cron
	retentionInDays int
	now             func() time.Time
}

func NewJournalCleaner(journal JournalCleanupRepository, retentionInDays int) (*JournalCleaner, error) {

	if retentionInDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	jc := &JournalCleaner{
		journal:         journal,
		cron:            cron.New(),
		retentionInDays: retentionInDays,
		now:             time.Now,
	}

	_, err := jc.cron.AddFunc("0 0 * * *", jc.cleanOldTransitions)
	if err != nil {
		return nil, err
	}

	return jc, nil
}

func (jc *JournalCleaner) Start() {
	jc.cron.Start()
	log.Infof("journal cleaner started, retention in days: %d", jc.retentionInDays)
}

func (jc *JournalCleaner) Stop() {
	<-jc.cron.Stop().Done()
}

func (jc *JournalCleaner) cleanOldTransitions() {
	expirationTime := jc.now().Add(-time.Duration(jc.retentionInDays) * 24 * time.Hour)
	rowsAffected, err := jc.journal.RemoveOlderThan(context.Background(), expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clean stage journal: %v", err)
	} else {
		log.Infof("stage journal was cleaned at %v, affected rows: %v", jc.now(), rowsAffected)
	}
}
