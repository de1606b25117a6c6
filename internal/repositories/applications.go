package repositories

import (
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"sync"
	"time"
)

// Applications is the process-local store of every candidate submission.
// Records are copied on the way in and out; callers never hold store memory.
type Applications struct {
	mu      sync.RWMutex
	records map[models.ApplicationKey]models.Application
	now     func() time.Time
}

func NewApplicationsRepository() *Applications {
	return &Applications{
		records: make(map[models.ApplicationKey]models.Application),
		now:     time.Now,
	}
}

// Put inserts or fully replaces the record for key. The stored record always
// starts at Uploaded with no verdict and no meeting.
func (repo *Applications) Put(key models.ApplicationKey, record models.Application) models.Application {
	now := repo.now()

	record = record.Clone()
	record.Key = key
	record.Stage = models.StageUploaded
	record.Verdict = nil
	record.Meeting = nil
	record.UploadedAt = now
	record.UpdatedAt = now

	repo.mu.Lock()
	repo.records[key] = record
	repo.mu.Unlock()

	return record.Clone()
}

func (repo *Applications) Get(key models.ApplicationKey) (models.Application, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	record, ok := repo.records[key]
	if !ok {
		return models.Application{}, fmt.Errorf("%w: %s", models.ErrNotFound, key)
	}
	return record.Clone(), nil
}

// Update applies mutate to a copy of the current record and stores the result
// only if mutate succeeds and the stage change is allowed by the stage graph.
func (repo *Applications) Update(key models.ApplicationKey,
	mutate func(app *models.Application) error) (models.Application, error) {

	repo.mu.Lock()
	defer repo.mu.Unlock()

	current, ok := repo.records[key]
	if !ok {
		return models.Application{}, fmt.Errorf("%w: %s", models.ErrNotFound, key)
	}

	next := current.Clone()
	if err := mutate(&next); err != nil {
		return models.Application{}, err
	}

	if next.Key != key {
		return models.Application{}, fmt.Errorf("%w: key can't be changed by update", models.ErrInvalidTransition)
	}

	decided := next.Stage != current.Stage && next.Stage.IsDecided()
	if !decided && !next.Verdict.Equal(current.Verdict) {
		return models.Application{}, fmt.Errorf("%w: verdict can only change when moving to %s or %s",
			models.ErrInvalidTransition, models.StageSelected, models.StageRejected)
	}

	if err := models.ValidateTransition(current.Stage, next.Stage, next.Verdict); err != nil {
		return models.Application{}, err
	}

	next.UploadedAt = current.UploadedAt
	next.UpdatedAt = repo.now()
	repo.records[key] = next

	return next.Clone(), nil
}

func (repo *Applications) List() []models.Application {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	result := make([]models.Application, 0, len(repo.records))
	for _, record := range repo.records {
		result = append(result, record.Clone())
	}
	return result
}
