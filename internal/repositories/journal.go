package repositories

import (
	"context"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"gorm.io/gorm"
	"time"
)

// Journal keeps an audit trail of stage transitions. It is informational only,
// application state itself lives in Applications.
type Journal struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

func (repo *Journal) Record(ctx context.Context, transition models.StageTransition) error {
	return repo.db.WithContext(ctx).Create(&transition).Error
}

func (repo *Journal) History(ctx context.Context, key models.ApplicationKey) ([]models.StageTransition, error) {
	var transitions []models.StageTransition
	err := repo.db.WithContext(ctx).
		Where("candidate_email = ? AND role = ?", key.CandidateEmail, key.Role).
		Order("id").
		Find(&transitions).Error
	if err != nil {
		return nil, err
	}
	return transitions, nil
}

func (repo *Journal) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&models.StageTransition{}, "created_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
