package api

import (
	"chronicrelief/server/internal/catalog"
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/llm"
	"chronicrelief/server/internal/resolver"
	"chronicrelief/server/internal/service"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler handles the lookup-and-summarize endpoint.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request/Response Structs ---

type LookupRequest struct {
	NameOrSlug string `json:"nameOrSlug"`
}

type LookupResponse struct {
	OK     bool             `json:"ok"`
	ID     string           `json:"id"`
	Answer string           `json:"answer"`
	Cached bool             `json:"cached,omitempty"`
	Data   *domain.Exercise `json:"data"`
}

// --- Handler Methods ---

// Lookup resolves a free-text exercise query and returns the record with
// its generated summary.
func (h *ExerciseHandler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.NameOrSlug == "" {
		abortWithError(c, http.StatusBadRequest, "nameOrSlug is required")
		return
	}

	result, err := h.exerciseService.LookupAndSummarize(c.Request.Context(), req.NameOrSlug)
	if err != nil {
		var notFound *resolver.NotFoundError
		if errors.As(err, &notFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":    "Exercise not found",
				"searched": notFound.Searched,
				"slug":     notFound.Slug,
				"hint":     notFound.Hint,
			})
			return
		}
		handleLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, LookupResponse{
		OK:     true,
		ID:     result.Exercise.ID,
		Answer: result.Answer,
		Cached: result.Cached,
		Data:   result.Exercise,
	})
}

// handleLookupError maps service, catalog, and generation failures to a
// status. Shared by the lookup and FAQ endpoints.
func handleLookupError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrValidationFailed) {
		abortWithError(c, http.StatusBadRequest, "nameOrSlug is required")
		return
	}

	// The resolver's catalog stage is the only upstream on this path that
	// can be rate-limited or rejected; its failures keep their status.
	if errors.Is(err, catalog.ErrRateLimited) {
		abortWithError(c, http.StatusTooManyRequests, "Exercise catalog rate limit exceeded, try again shortly")
		return
	}
	if errors.Is(err, catalog.ErrUnauthorized) {
		abortWithError(c, http.StatusUnauthorized, "Exercise catalog rejected the API key")
		return
	}

	switch llm.KindOf(err) {
	case llm.KindAuthFailed:
		abortWithError(c, http.StatusUnauthorized, "Text generation API key was rejected")
	case llm.KindRateLimited:
		abortWithError(c, http.StatusTooManyRequests, "Text generation rate limit exceeded, try again shortly")
	default:
		log.Printf("ERROR: request failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
