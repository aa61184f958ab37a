package controllers

import (
	"errors"
	"github.com/alex-pricope/hackathon-scoring/api/models"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

// respondError maps scoring and storage errors onto HTTP status codes.
func respondError(g *gin.Context, prefix string, err error) {
	var (
		validationErr *scoring.ValidationError
		forbiddenErr  *scoring.ForbiddenError
		notFoundErr   *scoring.NotFoundError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &forbiddenErr):
		status = http.StatusForbidden
	case errors.As(err, &notFoundErr), errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrVersionConflict), errors.Is(err, storage.ErrItemWithIDAlreadyExists):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logging.Log.Errorf("%s: %s %s failed: %v", prefix, g.Request.Method, g.Request.URL.Path, err)
	} else {
		logging.Log.Warnf("%s: %s %s rejected (%d): %v", prefix, g.Request.Method, g.Request.URL.Path, status, err)
	}
	g.JSON(status, &models.ErrorResponse{Error: err.Error()})
}

// includeUnpublished reads the optional ?unpublished= flag.
func includeUnpublished(g *gin.Context) (bool, bool) {
	raw := g.Query("unpublished")
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "unpublished must be a boolean"})
		return false, false
	}
	return v, true
}
