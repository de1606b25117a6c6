package bot

import (
	"errors"
	"fmt"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/recruit-agent/internal/domain/events"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
)

const pipelineCommandName = "pipeline"

type telegramAPI interface {
	Send(c botApi.Chattable) (botApi.Message, error)
	GetUpdatesChan(config botApi.UpdateConfig) botApi.UpdatesChannel
	StopReceivingUpdates()
}

type applicationLister interface {
	List() []models.Application
}

// Notifier posts recruiter alerts to a single telegram chat and answers the
// /pipeline command there.
type Notifier struct {
	api          telegramAPI
	chatID       int64
	applications applicationLister
}

func NewNotifier(token string, chatID int64, bus EventBus.Bus, applications applicationLister) (*Notifier, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	return newNotifier(api, chatID, bus, applications)
}

func newNotifier(api telegramAPI, chatID int64, bus EventBus.Bus, applications applicationLister) (*Notifier, error) {
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if applications == nil {
		return nil, errors.New("application repository is nil")
	}

	n := &Notifier{api: api, chatID: chatID, applications: applications}

	err := bus.SubscribeAsync(events.StageChangedTopic, n.onStageChanged, false)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifier) Run() {
	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := n.api.GetUpdatesChan(updateConfig)

	for update := range updates {
		if update.Message == nil || update.Message.Chat == nil || update.Message.Chat.ID != n.chatID {
			continue
		}

		n.handleMessage(update.Message)
	}
}

func (n *Notifier) Stop() {
	n.api.StopReceivingUpdates()
}

func (n *Notifier) handleMessage(message *botApi.Message) {
	if message.Command() != pipelineCommandName {
		return
	}
	n.send(n.pipelineSummary())
}

func (n *Notifier) onStageChanged(event events.StageChanged) {
	key := event.Application.Key

	switch event.To {
	case models.StageRejected:
		n.send(fmt.Sprintf("❌ %s rejected for %s\nfeedback: %s",
			key.CandidateEmail, key.Role.Title(), event.Application.Feedback()))
	case models.StageSelected:
		n.send(fmt.Sprintf("✅ %s selected for %s", key.CandidateEmail, key.Role.Title()))
	case models.StageScheduled:
		meeting := event.Application.Meeting
		if meeting == nil {
			return
		}
		n.send(fmt.Sprintf("📅 interview with %s for %s at %s (%s)\n%s",
			key.CandidateEmail, key.Role.Title(),
			meeting.StartsAt.Format("Mon, 02 Jan 2006 15:04 MST"), meeting.Timezone, meeting.JoinURL))
	}
}

func (n *Notifier) pipelineSummary() string {
	applications := n.applications.List()
	if len(applications) == 0 {
		return "no applications yet"
	}

	byStage := lo.CountValuesBy(applications, func(app models.Application) models.Stage {
		return app.Stage
	})

	stages := []models.Stage{models.StageUploaded, models.StageSelected, models.StageRejected,
		models.StageNotified, models.StageScheduled}

	var sb strings.Builder
	fmt.Fprintf(&sb, "applications: %d\n", len(applications))
	for _, stage := range stages {
		fmt.Fprintf(&sb, "%s: %d\n", stage, byStage[stage])
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (n *Notifier) send(text string) {
	msg := botApi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
	}
}
