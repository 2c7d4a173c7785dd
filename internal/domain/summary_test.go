package domain

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_FullReport(t *testing.T) {
	tokens := Tokenize("KTUS 261152Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992")

	got := Summarize(tokens)

	assert.Equal(t,
		"Visibility 10SM. Ceiling 6000 ft. Winds 090° at 15 kt, gusting 25 kt. "+
			"Weather TS. Temp 28°C, dew 22°C. Altimeter 29.92 inHg.",
		got)
}

func TestSummarize_IFRFlag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantIFR bool
	}{
		{"half mile visibility", "KXXX 1/2SM FG VV004", true},
		{"two miles visibility", "KXXX 2SM BR SCT030", true},
		{"low ceiling", "KXXX 5SM OVC008", true},
		{"good conditions", "KXXX 10SM SCT030", false},
		{"three miles is not IFR", "KXXX 3SM BR BKN040", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(Tokenize(tt.raw))
			assert.Equal(t, tt.wantIFR, strings.HasPrefix(got, "IFR conditions"), "summary: %s", got)
		})
	}
}

func TestSummarize_CloudLayersWhenNoCeiling(t *testing.T) {
	got := Summarize(Tokenize("KXXX 10SM FEW015 SCT250"))
	assert.Contains(t, got, "Clouds FEW 1500 ft, SCT 25000 ft")
	assert.NotContains(t, got, "Ceiling")
}

func TestSummarize_VariableWind(t *testing.T) {
	got := Summarize(Tokenize("KXXX VRB04KT 10SM CLR"))
	assert.Contains(t, got, "Winds variable at 4 kt")
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(MetarTokens{}))
	assert.Empty(t, Summarize(Tokenize("")))
	assert.Empty(t, Summarize(Tokenize("no recognizable groups here")))
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Every numeric literal in the summary must appear in a token value. This
// is the no-hallucination property that makes the deterministic summary a
// safe fallback for rejected narratives.
func TestSummarize_NumbersComeFromTokens(t *testing.T) {
	raws := []string{
		"KTUS 261152Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992",
		"KLAX 251753Z 25012KT 6SM BR FEW015 SCT250 22/18 A2995",
		"KJFK 251753Z 28015G20KT 8SM BKN020 OVC040 18/15 A3015",
		"KXXX 1/2SM FG VV004 M05/M10 A3010",
		"KXXX VRB04KT 10SM CLR",
	}

	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			tokens := Tokenize(raw)
			summary := Summarize(tokens)

			allowed := tokenNumbers(tokens)
			for _, num := range numberRe.FindAllString(summary, -1) {
				assert.Contains(t, allowed, num, "summary %q emits %q not present in tokens", summary, num)
			}
		})
	}
}

// tokenNumbers collects every numeric literal that a summary is allowed to
// mention for the given tokens.
func tokenNumbers(t MetarTokens) map[string]bool {
	allowed := map[string]bool{}
	add := func(s string) {
		for _, num := range numberRe.FindAllString(s, -1) {
			allowed[num] = true
		}
	}

	add(t.Visibility)
	add(t.Altimeter)
	if t.Wind != nil {
		add(t.Wind.Direction)
		add(intString(t.Wind.SpeedKt))
		if t.Wind.GustKt != nil {
			add(intString(*t.Wind.GustKt))
		}
	}
	for _, layer := range t.Clouds {
		add(intString(layer.BaseFt))
	}
	if t.VerticalVisibilityFt != nil {
		add(intString(*t.VerticalVisibilityFt))
	}
	if t.TemperatureC != nil {
		add(intString(*t.TemperatureC))
	}
	if t.DewpointC != nil {
		add(intString(*t.DewpointC))
	}
	return allowed
}

// intString renders the magnitude only; the summary never prints a minus
// sign as part of a number literal ("-5" appears as "-5°C", digits "5").
func intString(v int) string {
	if v < 0 {
		v = -v
	}
	return strconv.Itoa(v)
}

func TestVerifyNarrative(t *testing.T) {
	tokens := Tokenize("KTUS 261152Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992")

	tests := []struct {
		name      string
		narrative string
		want      bool
	}{
		{
			"faithful narrative",
			"Winds from 090 at 15 knots gusting to 25. Visibility 10 statute miles. Altimeter 29.92.",
			true,
		},
		{
			"empty narrative",
			"",
			false,
		},
		{
			"wrong visibility",
			"Winds from 090 at 15 knots gusting to 25. Visibility 6 statute miles. Altimeter 29.92.",
			false,
		},
		{
			"missing altimeter",
			"Winds from 090 at 15 knots gusting to 25. Visibility 10 statute miles.",
			false,
		},
		{
			"dropped gust",
			"Winds from 090 at 15 knots. Visibility 10 statute miles. Altimeter 29.92.",
			false,
		},
		{
			"hallucinated wind direction",
			"Winds from 180 at 15 knots gusting to 25. Visibility 10 statute miles. Altimeter 29.92.",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyNarrative(tokens, tt.narrative))
		})
	}
}

func TestVerifyNarrative_NoConstraintsAcceptsAnything(t *testing.T) {
	assert.True(t, VerifyNarrative(MetarTokens{}, "Skies are unremarkable today."))
	assert.False(t, VerifyNarrative(MetarTokens{}, "   "))
}

func TestVerifyNarrative_DeterministicSummaryAlwaysPasses(t *testing.T) {
	for _, raw := range []string{
		"KTUS 261152Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992",
		"KLAX 251753Z 25012KT 6SM BR FEW015 SCT250 22/18 A2995",
		"KXXX 1/2SM FG VV004 M05/M10 A3010",
	} {
		tokens := Tokenize(raw)
		require.True(t, VerifyNarrative(tokens, Summarize(tokens)), "raw: %s", raw)
	}
}
