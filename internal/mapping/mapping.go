// Package mapping normalizes the raw nationality, team, and position codes
// stored by the stats backend into display names and URL/image slugs. Every
// page renders through these functions, so all of them are pure and total:
// unknown input degrades to a verbatim or best-effort value, never an error.
package mapping

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

var positionNames = map[string]string{
	"GK": "Goalkeeper",
	"DF": "Defender",
	"MF": "Midfielder",
	"FW": "Forward",
}

// positionOrder is the fixed display order used by filter dropdowns.
var positionOrder = []string{"GK", "DF", "MF", "FW"}

// NationDisplayName resolves a raw nationality code to its display name.
// The match accepts either the full raw code ("br BRA") or just its first
// space-delimited token ("br"), because upstream rows sometimes carry only
// the prefix. Unknown codes are returned verbatim.
func NationDisplayName(raw string) string {
	if n, ok := lookupNation(raw); ok {
		return n.DisplayName
	}
	return raw
}

// FlagSlug resolves a raw nationality code to its flag image slug, falling
// back to Slugify(raw) for codes outside the table.
func FlagSlug(raw string) string {
	if n, ok := lookupNation(raw); ok {
		return n.FlagSlug
	}
	return Slugify(raw)
}

// NationByFlagSlug finds the table entry whose flag slug equals slug. Nation
// detail URLs are keyed by flag slug, so this is the reverse route lookup.
func NationByFlagSlug(slug string) (Nation, bool) {
	for _, n := range nations {
		if n.FlagSlug == slug {
			return n, true
		}
	}
	return Nation{}, false
}

// TeamDisplayName strips the nation prefix from a raw team code
// ("eng Manchester City" -> "Manchester City"). A raw value without an
// interior space is returned unchanged. A team whose real name starts with a
// prefix-shaped token loses that token too; the encoding cannot distinguish
// the two cases, so the behavior is kept as-is.
func TeamDisplayName(raw string) string {
	parts := strings.Split(raw, " ")
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return raw
}

// PositionDisplayName maps GK/DF/MF/FW to the long form, anything else to
// itself.
func PositionDisplayName(raw string) string {
	if name, ok := positionNames[raw]; ok {
		return name
	}
	return raw
}

// PositionCodes returns the closed set of position codes in display order.
func PositionCodes() []string {
	out := make([]string, len(positionOrder))
	copy(out, positionOrder)
	return out
}

// Slugify lowercases s and collapses every whitespace run into a single
// hyphen. Empty input yields an empty slug. Punctuation and accents pass
// through untouched; the curated table never contains them.
func Slugify(s string) string {
	if s == "" {
		return ""
	}
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "-")
}

func lookupNation(raw string) (Nation, bool) {
	for _, n := range nations {
		if n.RawCode == raw {
			return n, true
		}
		if prefix, _, ok := strings.Cut(n.RawCode, " "); ok && prefix == raw {
			return n, true
		}
	}
	return Nation{}, false
}
