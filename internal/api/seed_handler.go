package api

import (
	"chronicrelief/server/internal/catalog"
	"chronicrelief/server/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SeedHandler exposes the admin-only glossary seeding endpoints.
type SeedHandler struct {
	seedService service.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedService service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedGlossary upserts the built-in curated rehab set. Safe to re-run.
func (h *SeedHandler) SeedGlossary(c *gin.Context) {
	report, err := h.seedService.SeedGlossary(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: glossary seeding failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Seeding failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "insertedOrUpdated": report.InsertedOrUpdated})
}

// SeedFromCatalog imports staples and body-part batches from ExerciseDB.
func (h *SeedHandler) SeedFromCatalog(c *gin.Context) {
	report, err := h.seedService.SeedFromCatalog(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeedNotConfigured):
			abortWithError(c, http.StatusInternalServerError, err.Error())
		case errors.Is(err, catalog.ErrUnauthorized):
			abortWithError(c, http.StatusUnauthorized, "Exercise catalog rejected the API key")
		case errors.Is(err, catalog.ErrRateLimited):
			abortWithError(c, http.StatusTooManyRequests, "Exercise catalog rate limit exceeded")
		default:
			log.Printf("ERROR: catalog seeding failed: %v", err)
			abortWithError(c, http.StatusInternalServerError, "Seeding failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                true,
		"insertedOrUpdated": report.InsertedOrUpdated,
		"sampleIds":         report.SampleIDs,
	})
}
