package domain

import (
	"regexp"
	"strings"
)

// Severity indicator tables. Matching is by raw substring rather than by
// tokenizer output so a truncated or garbled report that still carries a
// hazard marker is classified correctly even when no group parses.
var (
	severeIndicators = []string{"TS", "+TS", "TSRA", "CB", "FC", "+GR", "VA", "SQ"}

	precipIndicators = []string{"RA", "+RA", "-RA", "SN", "+SN", "-SN", "DZ", "SHRA", "SHSN"}

	visibilityIndicators = []string{"BR", "FG", "HZ"}

	// lowCloudRe flags broken or overcast layers below 3000 ft.
	lowCloudRe = regexp.MustCompile(`(BKN|OVC)(00\d|01\d|02\d)`)
)

// ClassifySeverity grades a raw METAR on the CLEAR/MODERATE/SEVERE scale.
// An empty report is UNKNOWN. Any severe indicator (thunderstorms,
// cumulonimbus, funnel cloud, heavy hail, volcanic ash, squalls) wins
// outright. Otherwise one point per condition family — precipitation,
// visibility-reducing phenomena, low cloud — and any point means MODERATE.
func ClassifySeverity(raw string) Severity {
	if strings.TrimSpace(raw) == "" {
		return SeverityUnknown
	}

	text := strings.ToUpper(raw)

	for _, indicator := range severeIndicators {
		if strings.Contains(text, indicator) {
			return SeveritySevere
		}
	}

	score := 0
	if containsAny(text, precipIndicators) {
		score++
	}
	if containsAny(text, visibilityIndicators) {
		score++
	}
	if lowCloudRe.MatchString(text) {
		score++
	}

	if score >= 1 {
		return SeverityModerate
	}
	return SeverityClear
}

func containsAny(text string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}
