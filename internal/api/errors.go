package api

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"net/http"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{models.ErrNotFound, http.StatusNotFound},
	{models.ErrUnknownRole, http.StatusBadRequest},
	{models.ErrUnsupportedFormat, http.StatusBadRequest},
	{models.ErrExtractionFailed, http.StatusBadRequest},
	{models.ErrMissingFeedback, http.StatusBadRequest},
	{models.ErrMisconfiguredCredentials, http.StatusBadRequest},
	{models.ErrInvalidState, http.StatusConflict},
	{models.ErrInvalidTransition, http.StatusConflict},
	{models.ErrOracleResponseInvalid, http.StatusBadGateway},
	{models.ErrCredentialFetchFailed, http.StatusBadGateway},
	{models.ErrSchedulingFailed, http.StatusBadGateway},
	{models.ErrNotificationFailed, http.StatusBadGateway},
}

func statusOf(err error) int {
	for _, candidate := range errorStatuses {
		if errors.Is(err, candidate.err) {
			return candidate.status
		}
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	respondMessage(c, statusOf(err), err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message, "request_id": c.GetString(requestIDKey)})
}
