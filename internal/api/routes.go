package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/metrics"
	"github.com/samber/lo"
	"io"
	"net/http"
	"slices"
	"strings"
)

type recruitment interface {
	Upload(ctx context.Context, candidateEmail string, roleID string, filename string, data []byte) (models.Application, error)
	Analyze(ctx context.Context, key models.ApplicationKey) (models.Application, error)
	Notify(ctx context.Context, key models.ApplicationKey) (models.Application, error)
	Schedule(ctx context.Context, key models.ApplicationKey) (models.Application, error)
	ProcessApplication(ctx context.Context, key models.ApplicationKey) (models.Application, error)
	Get(key models.ApplicationKey) (models.Application, error)
	List() []models.Application
}

type stageHistory interface {
	History(ctx context.Context, key models.ApplicationKey) ([]models.StageTransition, error)
}

type workflow func(ctx context.Context, key models.ApplicationKey) (models.Application, error)

type API struct {
	recruitment recruitment
	history     stageHistory
	credentials CredentialsStatus
}

func NewAPI(recruitment recruitment, history stageHistory, credentials CredentialsStatus) *API {
	return &API{recruitment: recruitment, history: history, credentials: credentials}
}

func registerRoutes(r *gin.Engine, api *API) {
	r.GET("/health", api.handleHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/roles", api.handleListRoles)
		apiGroup.GET("/config", api.handleConfig)

		apiGroup.POST("/applications", api.handleUpload)
		apiGroup.GET("/applications", api.handleListApplications)
		apiGroup.GET("/applications/:email/:role", api.handleGetApplication)
		apiGroup.GET("/applications/:email/:role/history", api.handleHistory)
		apiGroup.POST("/applications/:email/:role/analyze", api.runWorkflow(api.recruitment.Analyze))
		apiGroup.POST("/applications/:email/:role/notify", api.runWorkflow(api.recruitment.Notify))
		apiGroup.POST("/applications/:email/:role/schedule", api.runWorkflow(api.recruitment.Schedule))
		apiGroup.POST("/applications/:email/:role/process", api.runWorkflow(api.recruitment.ProcessApplication))
	}
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) handleListRoles(c *gin.Context) {
	roles := lo.Map(models.Roles(), func(role models.Role, _ int) roleResponse {
		return roleResponse{ID: role, Title: role.Title(), Requirements: role.Requirements()}
	})
	c.JSON(http.StatusOK, roles)
}

func (a *API) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, a.credentials)
}

func (a *API) handleUpload(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if email == "" {
		respondMessage(c, http.StatusBadRequest, "missing candidate email")
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondMessage(c, http.StatusRequestEntityTooLarge, "resume is too large")
			return
		}
		respondMessage(c, http.StatusBadRequest, "missing resume file")
		return
	}

	upload, err := fileHeader.Open()
	if err != nil {
		respondMessage(c, http.StatusInternalServerError, "unable to read uploaded file")
		return
	}
	defer upload.Close()

	data, err := io.ReadAll(upload)
	if err != nil {
		respondMessage(c, http.StatusInternalServerError, "unable to read uploaded file")
		return
	}

	app, err := a.recruitment.Upload(c.Request.Context(), email, c.PostForm("role"), fileHeader.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toApplicationResponse(app))
}

func (a *API) handleListApplications(c *gin.Context) {
	applications := a.recruitment.List()
	slices.SortFunc(applications, func(x, y models.Application) int {
		return strings.Compare(x.Key.String(), y.Key.String())
	})
	c.JSON(http.StatusOK, lo.Map(applications, func(app models.Application, _ int) applicationResponse {
		return toApplicationResponse(app)
	}))
}

func (a *API) handleGetApplication(c *gin.Context) {
	key, err := applicationKey(c)
	if err != nil {
		respondError(c, err)
		return
	}

	app, err := a.recruitment.Get(key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationResponse(app))
}

func (a *API) handleHistory(c *gin.Context) {
	key, err := applicationKey(c)
	if err != nil {
		respondError(c, err)
		return
	}

	transitions, err := a.history.History(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(transitions, func(t models.StageTransition, _ int) transitionResponse {
		return transitionResponse{From: t.FromStage, To: t.ToStage, At: t.CreatedAt}
	}))
}

// runWorkflow adapts an orchestrator step keyed by the :email and :role path params.
// The step keeps running after a client disconnect.
func (a *API) runWorkflow(run workflow) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := applicationKey(c)
		if err != nil {
			respondError(c, err)
			return
		}

		app, err := run(context.WithoutCancel(c.Request.Context()), key)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, toApplicationResponse(app))
	}
}

func applicationKey(c *gin.Context) (models.ApplicationKey, error) {
	role, err := models.ToRole(c.Param("role"))
	if err != nil {
		return models.ApplicationKey{}, err
	}

	email := c.Param("email")
	if strings.TrimSpace(email) == "" {
		return models.ApplicationKey{}, fmt.Errorf("%w: empty candidate email", models.ErrNotFound)
	}

	return models.NewApplicationKey(email, role), nil
}
