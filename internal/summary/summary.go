// Package summary turns a resolved glossary record into the short
// bulleted text the app shows. Generation failures never escape this
// layer; they degrade to a deterministic local rendering of the same
// record fields.
package summary

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/llm"
	"context"
	"encoding/json"
	"log"
	"strings"
)

const systemInstruction = "You are a concise, safety-aware exercise assistant for the Chronic Relief app. " +
	"Use ONLY the provided JSON; do not invent data; be brief and bullet the answer."

const userInstruction = "Create a short bulleted answer with sections: What it is, Target areas, Helps with, May aggravate, Safety notes. " +
	"Keep it under ~120 words. JSON:\n"

const genericSafetyNote = "Move through a pain-free range, control the tempo, and stop with sharp pain, numbness, or tingling."

// Generator produces exercise summaries, preferring the text-generation
// service and falling back to local formatting.
type Generator struct {
	llm llm.Generator
}

// NewGenerator creates a summary generator. llm may be nil for a
// fallback-only generator.
func NewGenerator(gen llm.Generator) *Generator {
	return &Generator{llm: gen}
}

// Summarize returns non-empty bulleted text for the record. The
// generation call is attempted once; any failure or empty response falls
// back to Fallback.
func (g *Generator) Summarize(ctx context.Context, exercise *domain.Exercise) string {
	if g.llm != nil && g.llm.Configured() {
		payload, err := json.MarshalIndent(exercise, "", "  ")
		if err == nil {
			answer, err := g.llm.Generate(ctx, systemInstruction, userInstruction+string(payload))
			if err == nil && strings.TrimSpace(answer) != "" {
				return strings.TrimSpace(answer)
			}
			if err != nil {
				log.Printf("WARN: summary generation failed, using fallback: %v", err)
			}
		}
	}
	return Fallback(exercise)
}

// Fallback renders the five sections directly from record fields. Every
// section is non-empty; missing safety notes get the generic sentence.
func Fallback(exercise *domain.Exercise) string {
	var b strings.Builder

	b.WriteString("• What it is: ")
	if exercise.Description != "" {
		b.WriteString(exercise.Description)
	} else {
		b.WriteString(exercise.Name + ".")
	}
	b.WriteString("\n")

	writeListSection(&b, "Target areas", exercise.TargetAreas, "General conditioning")
	writeListSection(&b, "Helps with", exercise.HelpsWith, "General strength and mobility")
	writeListSection(&b, "May aggravate", exercise.MayAggravate, "Discomfort if performed with poor form")

	b.WriteString("• Safety notes: ")
	if len(exercise.SafetyNotes) > 0 {
		b.WriteString(strings.Join(exercise.SafetyNotes, " "))
	} else {
		b.WriteString(genericSafetyNote)
	}

	return b.String()
}

func writeListSection(b *strings.Builder, label string, values []string, fallback string) {
	b.WriteString("• ")
	b.WriteString(label)
	b.WriteString(": ")
	if len(values) > 0 {
		b.WriteString(strings.Join(values, ", "))
	} else {
		b.WriteString(fallback)
	}
	b.WriteString("\n")
}
