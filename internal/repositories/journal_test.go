package repositories

import (
	"context"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
	"time"
)

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func Test_Journal_RecordAndHistory(t *testing.T) {
	journal := NewJournalRepository(newTestDbContext(t).DB)
	ctx := context.Background()
	other := models.NewApplicationKey("b@x.com", models.BackendEngineer)

	require.NoError(t, journal.Record(ctx, models.StageTransition{CandidateEmail: testKey.CandidateEmail,
		Role: testKey.Role, FromStage: models.StageUploaded, ToStage: models.StageSelected}))
	require.NoError(t, journal.Record(ctx, models.StageTransition{CandidateEmail: testKey.CandidateEmail,
		Role: testKey.Role, FromStage: models.StageSelected, ToStage: models.StageNotified}))
	require.NoError(t, journal.Record(ctx, models.StageTransition{CandidateEmail: other.CandidateEmail,
		Role: other.Role, FromStage: models.StageUploaded, ToStage: models.StageRejected}))

	history, err := journal.History(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StageSelected, history[0].ToStage)
	assert.Equal(t, models.StageNotified, history[1].ToStage)
}

func Test_Journal_RemoveOlderThan(t *testing.T) {
	journal := NewJournalRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	require.NoError(t, journal.Record(ctx, models.StageTransition{CandidateEmail: testKey.CandidateEmail,
		Role: testKey.Role, FromStage: models.StageUploaded, ToStage: models.StageSelected,
		CreatedAt: time.Now().AddDate(0, 0, -100)}))
	require.NoError(t, journal.Record(ctx, models.StageTransition{CandidateEmail: testKey.CandidateEmail,
		Role: testKey.Role, FromStage: models.StageSelected, ToStage: models.StageNotified}))

	removed, err := journal.RemoveOlderThan(ctx, time.Now().AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	history, err := journal.History(ctx, testKey)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
