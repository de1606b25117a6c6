package repositories

import (
	"errors"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

var testKey = models.NewApplicationKey("a@x.com", models.BackendEngineer)

func selectedVerdict() *models.Verdict {
	return &models.Verdict{Selected: true, Feedback: "strong go background"}
}

func Test_Applications_Put_AlwaysResetsToUploaded(t *testing.T) {
	repo := NewApplicationsRepository()

	record := models.NewApplication(testKey, "cv.pdf", "resume")
	record.Stage = models.StageScheduled
	record.Verdict = selectedVerdict()
	record.Meeting = &models.MeetingReference{ID: "1"}

	repo.Put(testKey, record)

	stored, err := repo.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, models.StageUploaded, stored.Stage)
	assert.Nil(t, stored.Verdict)
	assert.Nil(t, stored.Meeting)
	assert.Equal(t, "resume", stored.ResumeText)
}

func Test_Applications_Put_ReuploadDiscardsVerdict(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "first"))

	_, err := repo.Update(testKey, func(app *models.Application) error {
		app.Verdict = selectedVerdict()
		app.Stage = models.StageSelected
		return nil
	})
	require.NoError(t, err)

	repo.Put(testKey, models.NewApplication(testKey, "cv2.pdf", "second"))

	stored, err := repo.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, models.StageUploaded, stored.Stage)
	assert.Nil(t, stored.Verdict)
	assert.Equal(t, "cv2.pdf", stored.Filename)
}

func Test_Applications_Get_NotFound(t *testing.T) {
	_, err := NewApplicationsRepository().Get(testKey)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Applications_Update_NotFound(t *testing.T) {
	_, err := NewApplicationsRepository().Update(testKey, func(app *models.Application) error { return nil })
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Applications_Update_UploadedToScheduled_ShouldFail(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))

	_, err := repo.Update(testKey, func(app *models.Application) error {
		app.Verdict = selectedVerdict()
		app.Stage = models.StageScheduled
		return nil
	})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	stored, _ := repo.Get(testKey)
	assert.Equal(t, models.StageUploaded, stored.Stage)
	assert.Nil(t, stored.Verdict, "failed update must not leave partial data")
}

func Test_Applications_Update_MutatorError_LeavesRecordUntouched(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))

	mutatorErr := errors.New("boom")
	_, err := repo.Update(testKey, func(app *models.Application) error {
		app.ResumeText = "changed"
		return mutatorErr
	})
	assert.ErrorIs(t, err, mutatorErr)

	stored, _ := repo.Get(testKey)
	assert.Equal(t, "resume", stored.ResumeText)
}

func Test_Applications_Update_BackwardTransition_ShouldFail(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))

	_, err := repo.Update(testKey, func(app *models.Application) error {
		app.Verdict = selectedVerdict()
		app.Stage = models.StageSelected
		return nil
	})
	require.NoError(t, err)

	_, err = repo.Update(testKey, func(app *models.Application) error {
		app.Stage = models.StageUploaded
		return nil
	})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func Test_Applications_Update_VerdictIsFixedOnceDecided(t *testing.T) {
	tests := []struct {
		name  string
		stage models.Stage
	}{
		{name: "same stage", stage: models.StageSelected},
		{name: "alongside notify", stage: models.StageNotified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewApplicationsRepository()
			repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))
			_, err := repo.Update(testKey, func(app *models.Application) error {
				app.Verdict = selectedVerdict()
				app.Stage = models.StageSelected
				return nil
			})
			require.NoError(t, err)

			_, err = repo.Update(testKey, func(app *models.Application) error {
				app.Verdict.Selected = false
				app.Verdict.Feedback = "changed our mind"
				app.Stage = tt.stage
				return nil
			})
			assert.ErrorIs(t, err, models.ErrInvalidTransition)

			stored, err := repo.Get(testKey)
			require.NoError(t, err)
			assert.Equal(t, models.StageSelected, stored.Stage)
			assert.True(t, stored.Verdict.Selected)
			assert.Equal(t, "strong go background", stored.Verdict.Feedback)
		})
	}
}

func Test_Applications_Update_VerdictOnUploaded_ShouldFail(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))

	_, err := repo.Update(testKey, func(app *models.Application) error {
		app.Verdict = selectedVerdict()
		return nil
	})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	stored, err := repo.Get(testKey)
	require.NoError(t, err)
	assert.Nil(t, stored.Verdict)
}

func Test_Applications_Update_UnchangedVerdictAllowsAdvance(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))
	_, err := repo.Update(testKey, func(app *models.Application) error {
		app.Verdict = &models.Verdict{Selected: true, Feedback: "ok", MatchingSkills: []string{}}
		app.Stage = models.StageSelected
		return nil
	})
	require.NoError(t, err)

	updated, err := repo.Update(testKey, func(app *models.Application) error {
		app.Stage = models.StageNotified
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StageNotified, updated.Stage)
}

func Test_Applications_Get_ReturnsCopy(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))
	_, err := repo.Update(testKey, func(app *models.Application) error {
		app.Verdict = selectedVerdict()
		app.Stage = models.StageSelected
		return nil
	})
	require.NoError(t, err)

	first, _ := repo.Get(testKey)
	first.Verdict.Feedback = "tampered"

	second, _ := repo.Get(testKey)
	assert.Equal(t, "strong go background", second.Verdict.Feedback)
}

func Test_Applications_ConcurrentUpdates_OnlyOneAdvances(t *testing.T) {
	repo := NewApplicationsRepository()
	repo.Put(testKey, models.NewApplication(testKey, "cv.pdf", "resume"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(testKey, func(app *models.Application) error {
				if app.Stage != models.StageUploaded {
					return models.ErrInvalidState
				}
				app.Verdict = selectedVerdict()
				app.Stage = models.StageSelected
				return nil
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.List(), 1)
}
