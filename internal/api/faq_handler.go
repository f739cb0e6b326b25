package api

import (
	"chronicrelief/server/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FAQHandler handles the in-app FAQ assistant endpoint.
type FAQHandler struct {
	faqService service.FAQService
}

// NewFAQHandler creates a new FAQHandler.
func NewFAQHandler(faqService service.FAQService) *FAQHandler {
	return &FAQHandler{faqService: faqService}
}

type FAQRequest struct {
	Question string `json:"question"`
}

type FAQResponse struct {
	Answer string `json:"answer"`
}

// Ask forwards the user's question to the assistant. Questions over the
// service limit are truncated, never rejected.
func (h *FAQHandler) Ask(c *gin.Context) {
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	answer, err := h.faqService.Answer(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "question is required")
			return
		}
		if errors.Is(err, service.ErrFAQNotConfigured) {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		handleLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, FAQResponse{Answer: answer})
}
