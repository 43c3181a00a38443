package catalog

import (
	"regexp"
	"strings"
)

// DefaultShortNameMax is the longest product name a card displays.
const DefaultShortNameMax = 52

var (
	// Slightly looser than the color extractor: tolerates "-Grau" without a
	// space after the hyphen when trimming for display.
	displaySuffixRe = regexp.MustCompile(`\s+-\s*[A-Za-zäöüÄÖÜß0-9\s]+$`)

	quotedNameRe    = regexp.MustCompile(`"([^"]+)"`)
	nameSeparatorRe = regexp.MustCompile(`\s+-\s+`)
	licenseMarkerRe = regexp.MustCompile(`\s*\((?i:mit Lizenz)\)\s*`)
)

// BaseSKU returns the product-family identifier shared by all variants:
// the prefix before the first hyphen, or the whole id when no hyphen
// exists. SKUs are assumed BASE-VARIANT, with VARIANT itself possibly
// hyphenated.
func BaseSKU(p Product) string {
	if idx := strings.Index(p.ID, "-"); idx >= 0 {
		return p.ID[:idx]
	}
	return p.ID
}

// BaseProductName removes the trailing " - <color>" suffix from the name
// when the derived color is set and the name literally ends with it.
func BaseProductName(p Product) string {
	if p.Color == "" {
		return p.Name
	}
	suffix := " - " + p.Color
	return strings.TrimSuffix(p.Name, suffix)
}

// ShortProductName shortens a free-text marketing name for card display:
// strip a trailing color-like suffix, prefer a quoted model name, else
// take the text before the first " - " separator, then truncate with an
// ellipsis. Best effort over messy input; ambiguous names take the first
// quoted match.
func ShortProductName(fullName string, maxLength int) string {
	if strings.TrimSpace(fullName) == "" {
		return fullName
	}
	if maxLength <= 0 {
		maxLength = DefaultShortNameMax
	}

	name := strings.TrimSpace(fullName)
	if loc := displaySuffixRe.FindStringIndex(name); loc != nil {
		name = strings.TrimSpace(name[:loc[0]])
	}

	if quoted := quotedNameRe.FindStringSubmatch(name); quoted != nil {
		name = strings.TrimSpace(quoted[1])
	} else {
		parts := nameSeparatorRe.Split(name, 2)
		name = strings.TrimSpace(parts[0])
	}

	if runes := []rune(name); len(runes) > maxLength {
		name = strings.TrimSpace(string(runes[:maxLength-1])) + "…"
	}
	return name
}

// StripLicenseMarker removes the "(mit Lizenz)" marker some licensed
// vehicle names carry, collapsing the surrounding whitespace.
func StripLicenseMarker(name string) string {
	return strings.TrimSpace(licenseMarkerRe.ReplaceAllString(name, " "))
}
