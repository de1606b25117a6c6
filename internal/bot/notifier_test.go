package bot

import (
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/recruit-agent/internal/domain/events"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type mockTelegramAPI struct {
	mu   sync.Mutex
	sent []botApi.MessageConfig
}

func (m *mockTelegramAPI) Send(c botApi.Chattable) (botApi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c.(botApi.MessageConfig))
	return botApi.Message{}, nil
}

func (m *mockTelegramAPI) GetUpdatesChan(_ botApi.UpdateConfig) botApi.UpdatesChannel {
	return make(chan botApi.Update)
}

func (m *mockTelegramAPI) StopReceivingUpdates() {}

func (m *mockTelegramAPI) messages() []botApi.MessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]botApi.MessageConfig(nil), m.sent...)
}

type stubApplications []models.Application

func (s stubApplications) List() []models.Application {
	return s
}

const testChatID = int64(-100500)

func application(email string, stage models.Stage) models.Application {
	app := models.NewApplication(models.NewApplicationKey(email, models.BackendEngineer), "cv.pdf", "")
	app.Stage = stage
	return app
}

func Test_Notifier_ScheduledEvent_ShouldPostMeetingDetails(t *testing.T) {
	bus := EventBus.New()
	api := &mockTelegramAPI{}
	_, err := newNotifier(api, testChatID, bus, stubApplications{})
	require.NoError(t, err)

	app := application("a@x.com", models.StageScheduled)
	app.Meeting = &models.MeetingReference{
		ID:       "42",
		JoinURL:  "https://zoom.us/j/42",
		StartsAt: time.Date(2026, 10, 19, 11, 0, 0, 0, time.UTC),
		Timezone: "Asia/Kolkata",
	}

	bus.Publish(events.StageChangedTopic, events.StageChanged{Application: app,
		From: models.StageNotified, To: models.StageScheduled})
	bus.WaitAsync()

	messages := api.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, testChatID, messages[0].ChatID)
	assert.Contains(t, messages[0].Text, "a@x.com")
	assert.Contains(t, messages[0].Text, "https://zoom.us/j/42")
}

func Test_Notifier_RejectedEvent_ShouldPostFeedback(t *testing.T) {
	bus := EventBus.New()
	api := &mockTelegramAPI{}
	_, err := newNotifier(api, testChatID, bus, stubApplications{})
	require.NoError(t, err)

	app := application("a@x.com", models.StageRejected)
	app.Verdict = &models.Verdict{Feedback: "missing Kubernetes"}

	bus.Publish(events.StageChangedTopic, events.StageChanged{Application: app,
		From: models.StageUploaded, To: models.StageRejected})
	bus.WaitAsync()

	messages := api.messages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "missing Kubernetes")
}

func Test_Notifier_NotifiedEvent_ShouldStayQuiet(t *testing.T) {
	bus := EventBus.New()
	api := &mockTelegramAPI{}
	_, err := newNotifier(api, testChatID, bus, stubApplications{})
	require.NoError(t, err)

	bus.Publish(events.StageChangedTopic, events.StageChanged{Application: application("a@x.com", models.StageNotified),
		From: models.StageSelected, To: models.StageNotified})
	bus.WaitAsync()

	assert.Empty(t, api.messages())
}

func Test_Notifier_PipelineCommand_ShouldSummariseStages(t *testing.T) {
	api := &mockTelegramAPI{}
	notifier, err := newNotifier(api, testChatID, EventBus.New(), stubApplications{
		application("a@x.com", models.StageScheduled),
		application("b@x.com", models.StageScheduled),
		application("c@x.com", models.StageUploaded),
	})
	require.NoError(t, err)

	notifier.handleMessage(&botApi.Message{
		Text:     "/pipeline",
		Chat:     &botApi.Chat{ID: testChatID},
		Entities: []botApi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 9}},
	})

	messages := api.messages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "applications: 3")
	assert.Contains(t, messages[0].Text, "scheduled: 2")
	assert.Contains(t, messages[0].Text, "uploaded: 1")
}

func Test_NewNotifier_NilBus_ShouldFail(t *testing.T) {
	_, err := newNotifier(&mockTelegramAPI{}, testChatID, nil, stubApplications{})
	assert.Error(t, err)
}
