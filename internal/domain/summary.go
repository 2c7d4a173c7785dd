package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ifrVisibilities are the visibility tokens that put a field under
// instrument flight rules on their own.
var ifrVisibilities = map[string]bool{
	"1/4": true,
	"1/2": true,
	"3/4": true,
	"1":   true,
	"2":   true,
}

// Summarize renders tokens as a plain-English conditions summary. It is a
// pure function of the tokens: every number in the output comes straight
// from a token value, which is what makes the output trustworthy as the
// fallback for rejected generative narratives. Returns "" when no group
// was decoded.
func Summarize(t MetarTokens) string {
	var clauses []string

	ceiling, hasCeiling := t.CeilingFt()

	if ifrVisibilities[t.Visibility] || (hasCeiling && ceiling < 1000) {
		clauses = append(clauses, "IFR conditions")
	}

	if t.Visibility != "" {
		clauses = append(clauses, "Visibility "+t.Visibility+"SM")
	}

	switch {
	case hasCeiling:
		clauses = append(clauses, fmt.Sprintf("Ceiling %d ft", ceiling))
	case len(t.Clouds) > 0:
		layers := make([]string, len(t.Clouds))
		for i, layer := range t.Clouds {
			layers[i] = fmt.Sprintf("%s %d ft", layer.Coverage, layer.BaseFt)
		}
		clauses = append(clauses, "Clouds "+strings.Join(layers, ", "))
	}

	if t.Wind != nil {
		clauses = append(clauses, windClause(*t.Wind))
	}

	if len(t.WeatherPhenomena) > 0 {
		clauses = append(clauses, "Weather "+strings.Join(t.WeatherPhenomena, ", "))
	}

	if t.TemperatureC != nil && t.DewpointC != nil {
		clauses = append(clauses, fmt.Sprintf("Temp %d°C, dew %d°C", *t.TemperatureC, *t.DewpointC))
	}

	if t.Altimeter != "" {
		clauses = append(clauses, "Altimeter "+t.Altimeter)
	}

	if len(clauses) == 0 {
		return ""
	}
	return strings.Join(clauses, ". ") + "."
}

func windClause(w Wind) string {
	var b strings.Builder
	if w.Direction == "VRB" {
		fmt.Fprintf(&b, "Winds variable at %d kt", w.SpeedKt)
	} else {
		fmt.Fprintf(&b, "Winds %s° at %d kt", w.Direction, w.SpeedKt)
	}
	if w.GustKt != nil {
		fmt.Fprintf(&b, ", gusting %d kt", *w.GustKt)
	}
	return b.String()
}

// VerifyNarrative checks a generated narrative against the tokens it claims
// to describe. It accepts only narratives that preserve the literal
// visibility string, the altimeter numeric value, and every wind numeric
// (direction, speed, gust) exactly as tokenized. Callers substitute
// [Summarize] output when verification fails; a wrong number in a weather
// briefing is worse than a dull one.
func VerifyNarrative(t MetarTokens, narrative string) bool {
	if strings.TrimSpace(narrative) == "" {
		return false
	}

	if t.Visibility != "" && !strings.Contains(narrative, t.Visibility) {
		return false
	}

	if t.Altimeter != "" {
		value := strings.TrimSuffix(t.Altimeter, " inHg")
		if !strings.Contains(narrative, value) {
			return false
		}
	}

	if t.Wind != nil {
		if !strings.Contains(narrative, t.Wind.Direction) {
			return false
		}
		if !strings.Contains(narrative, strconv.Itoa(t.Wind.SpeedKt)) {
			return false
		}
		if t.Wind.GustKt != nil && !strings.Contains(narrative, strconv.Itoa(*t.Wind.GustKt)) {
			return false
		}
	}

	return true
}
