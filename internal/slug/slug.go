// Package slug holds the string normalization helpers the glossary
// lookup relies on. Everything here is a pure function.
package slug

import "strings"

// Slugify converts a display name into its canonical document id:
// lowercase, every run of non-alphanumerics collapsed to a single hyphen,
// no leading or trailing hyphen. Slugify is idempotent.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tight strips everything except lowercase letters and digits.
// "Pull-Up" and "pull up" both become "pullup".
func Tight(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AliasVariants produces the lookup keys a user might type for a name:
// the lowercase original, space/hyphen/concatenated joins, the slug, and
// a pluralized last word in the same three joins. The result is
// de-duplicated and keeps first-seen order so callers get stable output.
func AliasVariants(name string) []string {
	n := strings.TrimSpace(strings.ToLower(name))
	if n == "" {
		return nil
	}
	words := strings.Fields(n)

	variants := []string{
		n,
		strings.Join(words, " "),
		strings.Join(words, "-"),
		strings.Join(words, ""),
		Slugify(n),
		Tight(n),
	}

	if len(words) > 0 {
		last := words[len(words)-1]
		plural := last
		if !strings.HasSuffix(last, "s") {
			plural = last + "s"
		}
		pluralWords := append(append([]string{}, words[:len(words)-1]...), plural)
		variants = append(variants,
			strings.Join(pluralWords, " "),
			strings.Join(pluralWords, "-"),
			strings.Join(pluralWords, ""),
		)
	}

	seen := make(map[string]struct{}, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
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
