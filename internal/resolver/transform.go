package resolver

import (
	"chronicrelief/server/internal/catalog"
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/slug"
	"strings"
)

// FromCatalogItem derives a glossary record from a raw catalog item:
// target areas from bodyPart/target/secondary muscles, a brief
// description from the instructions, heuristic helps-with / may-aggravate
// / safety notes from keyword rules, and the full alias set for the name.
func FromCatalogItem(item catalog.Item) *domain.Exercise {
	name := capitalize(item.Name)
	aliases := slug.AliasVariants(item.Name)
	lower := strings.ToLower(strings.TrimSpace(item.Name))
	aliases = appendUnique(aliases, lower)
	aliases = appendUnique(aliases, strings.ReplaceAll(lower, " ", "_"))

	helps, aggravate, notes := safetyHeuristics(item.BodyPart, item.Target, item.Equipment)

	return &domain.Exercise{
		ID:               slug.Slugify(item.Name),
		Name:             name,
		TargetAreas:      targetAreas(item),
		Description:      briefDescription(item),
		HelpsWith:        helps,
		MayAggravate:     aggravate,
		SafetyNotes:      notes,
		Aliases:          aliases,
		Equipment:        item.Equipment,
		BodyPart:         item.BodyPart,
		Target:           item.Target,
		SecondaryMuscles: item.SecondaryMuscles,
		GifURL:           item.GifURL,
	}
}

// targetAreas merges bodyPart, target, and secondary muscles into at most
// six capitalized areas.
func targetAreas(item catalog.Item) []string {
	var areas []string
	if item.BodyPart != "" {
		areas = append(areas, capitalize(item.BodyPart))
	}
	if item.Target != "" {
		areas = append(areas, capitalize(item.Target))
	}
	for _, m := range item.SecondaryMuscles {
		areas = append(areas, capitalize(m))
	}
	areas = uniqueStrings(areas)
	if len(areas) > 6 {
		areas = areas[:6]
	}
	return areas
}

// briefDescription takes the first two sentences of the vendor
// instructions, or composes a one-liner from name/equipment/target.
func briefDescription(item catalog.Item) string {
	joined := strings.TrimSpace(strings.Join(item.Instructions, " "))
	if joined != "" {
		sentences := splitSentences(joined)
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		if brief := strings.TrimSpace(strings.Join(sentences, " ")); brief != "" {
			return brief
		}
	}

	var b strings.Builder
	b.WriteString("A ")
	b.WriteString(item.Name)
	if item.Equipment != "" {
		b.WriteString(" using ")
		b.WriteString(item.Equipment)
	}
	if item.Target != "" {
		b.WriteString(" targeting ")
		b.WriteString(item.Target)
	}
	b.WriteString(".")
	return b.String()
}

// safetyHeuristics fills helpsWith / mayAggravate / safetyNotes from
// small keyword rules over bodyPart, target, and equipment. The notes
// always include the generic pain-free guidance.
func safetyHeuristics(bodyPart, target, equipment string) (helps, aggravate, notes []string) {
	bp := strings.ToLower(bodyPart)
	t := strings.ToLower(target)
	eq := strings.ToLower(equipment)

	if strings.Contains(bp, "back") || strings.Contains(t, "lats") || strings.Contains(t, "spine") {
		helps = append(helps, "Upper-back strength", "Posture and scapular control")
	}
	if strings.Contains(bp, "chest") || strings.Contains(t, "pectorals") {
		helps = append(helps, "Upper-body pressing strength")
	}
	if strings.Contains(bp, "lower legs") || strings.Contains(bp, "upper legs") || strings.Contains(t, "glute") {
		helps = append(helps, "Lower-body strength and control")
	}
	if strings.Contains(bp, "shoulders") || strings.Contains(t, "delts") {
		helps = append(helps, "Shoulder stability and endurance")
	}
	if strings.Contains(t, "abs") || strings.Contains(bp, "waist") {
		helps = append(helps, "Core stability and trunk control")
	}

	if strings.Contains(bp, "back") {
		aggravate = append(aggravate, "Low-back discomfort if technique is lost")
	}
	if strings.Contains(bp, "shoulders") {
		aggravate = append(aggravate, "Shoulder irritation with poor control")
	}
	if strings.Contains(bp, "upper legs") || strings.Contains(bp, "lower legs") {
		aggravate = append(aggravate, "Knee pain if depth or volume is excessive")
	}
	if strings.Contains(t, "forearms") || strings.Contains(t, "biceps") {
		aggravate = append(aggravate, "Elbow tendinopathy with excessive volume")
	}

	notes = append(notes, "Move through a pain-free range and control the tempo.")
	if eq != "" && eq != "body weight" {
		notes = append(notes, "Use "+eq+" you can control with good form.")
	}
	notes = append(notes, "Stop with sharp pain, numbness, or tingling.")

	return uniqueStrings(helps), uniqueStrings(aggravate), uniqueStrings(notes)
}

// splitSentences breaks text after each period followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '.' && (text[i+1] == ' ' || text[i+1] == '\n' || text[i+1] == '\t') {
			sentences = append(sentences, strings.TrimSpace(text[start:i+1]))
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
