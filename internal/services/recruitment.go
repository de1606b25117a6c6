package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/recruit-agent/internal/clients/pdf"
	"github.com/maxaizer/recruit-agent/internal/domain/events"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

type applicationStore interface {
	Put(key models.ApplicationKey, record models.Application) models.Application
	Get(key models.ApplicationKey) (models.Application, error)
	Update(key models.ApplicationKey, mutate func(app *models.Application) error) (models.Application, error)
	List() []models.Application
}

type resumeScorer interface {
	ScoreResume(ctx context.Context, role models.Role, text string) (models.Verdict, error)
}

type textExtractor interface {
	Extract(data []byte) (string, error)
}

type messageSender interface {
	Send(ctx context.Context, message models.Message) error
}

type meetingCreator interface {
	CreateMeeting(ctx context.Context, token string, request models.MeetingRequest) (models.MeetingReference, error)
}

type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type slotCalculator interface {
	ComputeSlot(durationMinutes int, timezone string) (models.InterviewSlot, error)
}

// Dependencies wires the orchestrator. Scorer, Sender, Meetings and Tokens stay
// nil when their credentials are not configured; the workflows needing them
// then fail with ErrMisconfiguredCredentials.
type Dependencies struct {
	Applications applicationStore
	Extractor    textExtractor
	Scorer       resumeScorer
	Sender       messageSender
	Meetings     meetingCreator
	Tokens       tokenProvider
	Slots        slotCalculator
	Letters      *Letters
	Bus          EventBus.Bus
}

type SchedulingOptions struct {
	Timezone                 string
	InterviewDurationMinutes int
}

const (
	workflowUpload   = "upload"
	workflowAnalyze  = "analyze"
	workflowNotify   = "notify"
	workflowSchedule = "schedule"
	workflowProcess  = "process"
)

// Recruitment sequences the upload, analyze, notify and schedule workflows.
// Workflows on the same application key never run concurrently.
type Recruitment struct {
	deps    Dependencies
	options SchedulingOptions
	keys    *keyedMutex
	now     func() time.Time
}

func NewRecruitment(deps Dependencies, options SchedulingOptions) (*Recruitment, error) {
	if deps.Applications == nil || deps.Extractor == nil || deps.Slots == nil || deps.Letters == nil {
		return nil, errors.New("applications, extractor, slots and letters are required")
	}
	if options.InterviewDurationMinutes <= 0 {
		return nil, errors.New("interview duration must be greater than zero")
	}

	return &Recruitment{
		deps:    deps,
		options: options,
		keys:    newKeyedMutex(),
		now:     time.Now,
	}, nil
}

func (r *Recruitment) Get(key models.ApplicationKey) (models.Application, error) {
	return r.deps.Applications.Get(key)
}

func (r *Recruitment) List() []models.Application {
	return r.deps.Applications.List()
}

// Upload stores a fresh application for candidateEmail and roleID. A repeated
// upload under the same key discards the previous verdict and meeting.
func (r *Recruitment) Upload(ctx context.Context, candidateEmail string, roleID string,
	filename string, data []byte) (app models.Application, err error) {

	defer r.observe(workflowUpload, time.Now(), &err)

	role, err := models.ToRole(roleID)
	if err != nil {
		return models.Application{}, err
	}

	if !pdf.IsPDF(filename, data) {
		return models.Application{}, fmt.Errorf("%w: %q is not a pdf document", models.ErrUnsupportedFormat, filename)
	}

	text, err := r.deps.Extractor.Extract(data)
	if err != nil {
		if !errors.Is(err, models.ErrExtractionFailed) && !errors.Is(err, models.ErrUnsupportedFormat) {
			err = fmt.Errorf("%w: %v", models.ErrExtractionFailed, err)
		}
		return models.Application{}, err
	}

	key := models.NewApplicationKey(candidateEmail, role)
	unlock := r.keys.Lock(key)
	defer unlock()

	previous, getErr := r.deps.Applications.Get(key)
	app = r.deps.Applications.Put(key, models.NewApplication(key, filename, text))

	from := models.Stage("")
	if getErr == nil {
		from = previous.Stage
		log.Infof("application %s re-uploaded, previous stage %s discarded", key, previous.Stage)
	}
	r.publish(app, from)

	log.Infof("application %s uploaded from %s, %d characters extracted", key, filename, len(text))
	return app, nil
}

// Analyze scores the stored resume and moves the application to Selected or
// Rejected. Already decided applications are returned unchanged.
func (r *Recruitment) Analyze(ctx context.Context, key models.ApplicationKey) (app models.Application, err error) {
	defer r.observe(workflowAnalyze, time.Now(), &err)

	unlock := r.keys.Lock(key)
	defer unlock()

	app, err = r.deps.Applications.Get(key)
	if err != nil {
		return models.Application{}, err
	}

	if app.Stage != models.StageUploaded {
		log.Infof("application %s already analyzed, stage %s", key, app.Stage)
		return app, nil
	}

	if r.deps.Scorer == nil {
		return models.Application{}, fmt.Errorf("%w: scoring oracle", models.ErrMisconfiguredCredentials)
	}

	verdict, err := r.deps.Scorer.ScoreResume(ctx, key.Role, app.ResumeText)
	if err != nil {
		return models.Application{}, err
	}

	decision, err := Decide(verdict)
	if err != nil {
		return models.Application{}, err
	}

	from := app.Stage
	app, err = r.deps.Applications.Update(key, func(current *models.Application) error {
		current.Verdict = &verdict
		current.Stage = decision.Stage()
		return nil
	})
	if err != nil {
		return models.Application{}, err
	}

	metrics.DecisionsCounter.WithLabelValues(string(decision)).Inc()
	r.publish(app, from)

	log.Infof("application %s analyzed: %s, experience level %s", key, decision, verdict.ExperienceLevel)
	return app, nil
}

// Notify sends the selection or rejection message and moves the application to Notified.
func (r *Recruitment) Notify(ctx context.Context, key models.ApplicationKey) (app models.Application, err error) {
	defer r.observe(workflowNotify, time.Now(), &err)

	unlock := r.keys.Lock(key)
	defer unlock()

	return r.notify(ctx, key)
}

// Schedule books an interview for a notified, selected candidate and sends the
// confirmation. Meeting failures leave the application at Notified.
func (r *Recruitment) Schedule(ctx context.Context, key models.ApplicationKey) (app models.Application, err error) {
	defer r.observe(workflowSchedule, time.Now(), &err)

	unlock := r.keys.Lock(key)
	defer unlock()

	return r.schedule(ctx, key)
}

// ProcessApplication runs notify and schedule for a selected candidate in one go.
// A candidate already notified of selection only gets scheduled.
func (r *Recruitment) ProcessApplication(ctx context.Context, key models.ApplicationKey) (app models.Application, err error) {
	defer r.observe(workflowProcess, time.Now(), &err)

	unlock := r.keys.Lock(key)
	defer unlock()

	app, err = r.deps.Applications.Get(key)
	if err != nil {
		return models.Application{}, err
	}

	if !app.IsSelected() || (app.Stage != models.StageSelected && app.Stage != models.StageNotified) {
		return models.Application{}, fmt.Errorf("%w: %s is %s, expected a selected candidate",
			models.ErrInvalidState, key, app.Stage)
	}

	if app.Stage == models.StageSelected {
		if _, err = r.notify(ctx, key); err != nil {
			return models.Application{}, err
		}
	}

	return r.schedule(ctx, key)
}

func (r *Recruitment) notify(ctx context.Context, key models.ApplicationKey) (models.Application, error) {
	app, err := r.deps.Applications.Get(key)
	if err != nil {
		return models.Application{}, err
	}

	if !app.Stage.IsDecided() {
		return models.Application{}, fmt.Errorf("%w: %s is %s, expected selected or rejected",
			models.ErrInvalidState, key, app.Stage)
	}

	var message models.Message
	if app.Stage == models.StageSelected {
		message = r.deps.Letters.Selection(app)
	} else {
		message, err = r.deps.Letters.Rejection(app)
		if err != nil {
			return models.Application{}, err
		}
	}

	if r.deps.Sender == nil {
		return models.Application{}, fmt.Errorf("%w: message sender", models.ErrMisconfiguredCredentials)
	}

	if err = r.deps.Sender.Send(ctx, message); err != nil {
		return models.Application{}, wrapNotificationError(err)
	}

	from := app.Stage
	app, err = r.deps.Applications.Update(key, func(current *models.Application) error {
		current.Stage = models.StageNotified
		return nil
	})
	if err != nil {
		return models.Application{}, err
	}
	r.publish(app, from)

	log.Infof("application %s notified with %s message", key, message.Kind)
	return app, nil
}

func (r *Recruitment) schedule(ctx context.Context, key models.ApplicationKey) (models.Application, error) {
	app, err := r.deps.Applications.Get(key)
	if err != nil {
		return models.Application{}, err
	}

	if app.Stage != models.StageNotified || !app.IsSelected() {
		return models.Application{}, fmt.Errorf("%w: %s is %s, expected a notified selected candidate",
			models.ErrInvalidState, key, app.Stage)
	}

	if r.deps.Meetings == nil || r.deps.Tokens == nil {
		return models.Application{}, fmt.Errorf("%w: meeting provider", models.ErrMisconfiguredCredentials)
	}
	if r.deps.Sender == nil {
		return models.Application{}, fmt.Errorf("%w: message sender", models.ErrMisconfiguredCredentials)
	}

	token, err := r.deps.Tokens.Token(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrCredentialFetchFailed) {
			err = fmt.Errorf("%w: %v", models.ErrCredentialFetchFailed, err)
		}
		return models.Application{}, err
	}

	slot, err := r.deps.Slots.ComputeSlot(r.options.InterviewDurationMinutes, r.options.Timezone)
	if err != nil {
		if !errors.Is(err, models.ErrSchedulingFailed) {
			err = fmt.Errorf("%w: %v", models.ErrSchedulingFailed, err)
		}
		return models.Application{}, err
	}

	meeting, err := r.deps.Meetings.CreateMeeting(ctx, token, models.MeetingRequest{
		Title:    key.Role.Title() + " technical interview",
		Slot:     slot,
		Attendee: key.CandidateEmail,
	})
	if err != nil {
		return models.Application{}, fmt.Errorf("%w: %v", models.ErrSchedulingFailed, err)
	}

	from := app.Stage
	app, err = r.deps.Applications.Update(key, func(current *models.Application) error {
		current.Stage = models.StageScheduled
		current.Meeting = &meeting
		return nil
	})
	if err != nil {
		return models.Application{}, err
	}
	r.publish(app, from)

	log.Infof("interview for %s booked at %s, meeting %s", key, slot.LocalTime(), meeting.ID)

	if err = r.deps.Sender.Send(ctx, r.deps.Letters.Confirmation(app, meeting, slot)); err != nil {
		return app, wrapNotificationError(err)
	}

	return app, nil
}

func (r *Recruitment) publish(app models.Application, from models.Stage) {
	if r.deps.Bus == nil || from == app.Stage {
		return
	}
	r.deps.Bus.Publish(events.StageChangedTopic, events.StageChanged{
		Application: app,
		From:        from,
		To:          app.Stage,
		At:          r.now(),
	})
}

func (r *Recruitment) observe(workflow string, start time.Time, err *error) {
	metrics.WorkflowDuration.WithLabelValues(workflow).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if *err != nil {
		outcome = "failed"
		log.Warnf("%s workflow failed: %v", workflow, *err)
	}
	metrics.WorkflowCounter.WithLabelValues(workflow, outcome).Inc()
}

func wrapNotificationError(err error) error {
	if errors.Is(err, models.ErrNotificationFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrNotificationFailed, err)
}
