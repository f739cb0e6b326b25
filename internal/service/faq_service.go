package service

import (
	"chronicrelief/server/internal/llm"
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrFAQNotConfigured = errors.New("FAQ assistant is not configured: missing text-generation API key")
)

// Questions longer than this are truncated, not rejected.
const maxQuestionLength = 500

const faqSystemInstruction = "You are the Chronic Relief FAQ assistant. Be concise and only answer about the app. " +
	"If unsure, say you don't know and suggest the next step."

const faqFallbackAnswer = "Sorry, I don't have an answer."

// --- Service Interface ---
type FAQService interface {
	Answer(ctx context.Context, question string) (string, error)
}

// faqService implements the FAQService interface.
type faqService struct {
	llm llm.Generator
}

// NewFAQService creates a new instance of faqService.
func NewFAQService(gen llm.Generator) FAQService {
	return &faqService{llm: gen}
}

// Answer asks the text-generation service the user's question. Unlike
// exercise summaries there is no local fallback; generation failures
// propagate so the API can map them to a status.
func (s *faqService) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrValidationFailed
	}
	if len(question) > maxQuestionLength {
		// Cut on a rune boundary so the truncated question stays valid UTF-8.
		cut := maxQuestionLength
		for cut > 0 && !utf8.RuneStart(question[cut]) {
			cut--
		}
		question = question[:cut]
	}

	if !s.llm.Configured() {
		return "", ErrFAQNotConfigured
	}

	answer, err := s.llm.Generate(ctx, faqSystemInstruction, question)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return faqFallbackAnswer, nil
	}
	return answer, nil
}
