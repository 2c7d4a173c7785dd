package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const severeTucsonRaw = "KTUS 261152Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992"

func testAirport(code string, lat, lon float64) AirportRef {
	return AirportRef{
		ICAO:      code,
		Name:      code + " Intl",
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func tucson() AirportRef { return testAirport("KTUS", 32.1161, -110.9410) }

func TestRecommend_EmptyReportIsInactive(t *testing.T) {
	route := []RouteLeg{
		{Code: "KPHX", Airport: testAirport("KPHX", 33.4342, -112.0116), Severity: SeverityClear},
	}

	got := Recommend(tucson(), "", SeverityUnknown, route)

	assert.False(t, got.Active)
	assert.Empty(t, got.Reason)
	assert.Empty(t, got.RiskAlerts)
	assert.Empty(t, got.DelayAdvisory)
	assert.Empty(t, got.AlternateCandidates)
	assert.Empty(t, got.DetourSuggestions)
}

func TestRecommend_BenignReportIsInactive(t *testing.T) {
	got := Recommend(tucson(), "KTUS 251753Z 10008KT 10SM FEW120 32/05 A2995", SeverityClear, nil)
	assert.False(t, got.Active)
}

// Gusts below the activation threshold do not activate the engine on
// their own, even though an active decision would alert on them.
func TestRecommend_ModerateGustsAloneStayInactive(t *testing.T) {
	got := Recommend(tucson(), "KTUS 251753Z 27018G25KT 10SM FEW120 32/05 A2995", SeverityClear, nil)
	assert.False(t, got.Active)
}

func TestRecommend_SevereTucsonScenario(t *testing.T) {
	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, nil)

	assert.True(t, got.Active)
	assert.Equal(t, "SEVERE conditions", got.Reason)

	require.Len(t, got.RiskAlerts, 1)
	assert.Equal(t, "Gusts 25 kt — crosswind/turbulence considerations.", got.RiskAlerts[0])
	for _, alert := range got.RiskAlerts {
		assert.NotContains(t, alert, "visibility")
		assert.NotContains(t, alert, "ceiling")
	}
}

func TestRecommend_SoftActivation(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantAlerts []string
	}{
		{
			"marginal visibility",
			"KTUS 251753Z 10008KT 2SM BR BKN040 18/15 A2992",
			nil,
		},
		{
			"low visibility and ceiling",
			"KTUS 251753Z 00000KT 1/2SM FG VV004 10/09 A2990",
			[]string{
				"Low visibility 0.5SM — IFR, CAT II/III may be required.",
				"Low ceiling 400 ft — approach minima constraints.",
			},
		},
		{
			"low ceiling only",
			"KTUS 251753Z 10008KT 10SM OVC008 18/15 A2992",
			[]string{"Low ceiling 800 ft — approach minima constraints."},
		},
		{
			"strong gusts",
			"KTUS 251753Z 27020G35KT 10SM FEW120 32/05 A2995",
			[]string{"Gusts 35 kt — crosswind/turbulence considerations."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tucson(), tt.raw, SeverityModerate, nil)

			assert.True(t, got.Active)
			assert.Equal(t, "Marginal visibility/ceiling or strong gusts", got.Reason)
			assert.Equal(t, tt.wantAlerts, got.RiskAlerts)
		})
	}
}

func TestRecommend_AllSevereRouteHasNoAlternatesButDetour(t *testing.T) {
	route := []RouteLeg{
		{Code: "KTUS", Airport: tucson(), Severity: SeveritySevere},
		{Code: "KPHX", Airport: testAirport("KPHX", 33.4342, -112.0116), Severity: SeveritySevere},
		{Code: "KELP", Airport: testAirport("KELP", 31.8072, -106.3778), Severity: SeveritySevere},
	}

	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, route)

	assert.True(t, got.Active)
	assert.Empty(t, got.AlternateCandidates)
	assert.Equal(t, []string{detourSuggestionText}, got.DetourSuggestions)
	assert.Equal(t, delayAdvisoryText, got.DelayAdvisory)
}

func TestRecommend_AlternateRanking(t *testing.T) {
	route := []RouteLeg{
		// CLEAR at ~300 NM, CLEAR at ~120 NM, MODERATE at ~60 NM.
		{Code: "AAAA", Airport: testAirport("AAAA", 37.1161, -110.9410), Severity: SeverityClear},
		{Code: "CCCC", Airport: testAirport("CCCC", 34.1161, -110.9410), Severity: SeverityClear},
		{Code: "BBBB", Airport: testAirport("BBBB", 33.1161, -110.9410), Severity: SeverityModerate},
	}

	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, route)

	require.Len(t, got.AlternateCandidates, 3)
	assert.Equal(t, "CCCC", got.AlternateCandidates[0].Code)
	assert.Equal(t, "AAAA", got.AlternateCandidates[1].Code)
	assert.Equal(t, "BBBB", got.AlternateCandidates[2].Code)
	assert.InDelta(t, 60, got.AlternateCandidates[2].DistanceNM, 2)
}

func TestRecommend_AlternatesBeyondRangeExcluded(t *testing.T) {
	route := []RouteLeg{
		// KLAX is ~391 NM from KTUS, past the 350 NM diversion range.
		{Code: "KLAX", Airport: testAirport("KLAX", 33.9425, -118.4081), Severity: SeverityClear},
		{Code: "KPHX", Airport: testAirport("KPHX", 33.4342, -112.0116), Severity: SeverityClear},
	}

	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, route)

	require.Len(t, got.AlternateCandidates, 1)
	assert.Equal(t, "KPHX", got.AlternateCandidates[0].Code)
}

func TestRecommend_AlternatesTruncatedToFive(t *testing.T) {
	var route []RouteLeg
	for i := 0; i < 7; i++ {
		lat := 32.6161 + float64(i)*0.5
		route = append(route, RouteLeg{
			Code:     string(rune('A'+i)) + "AAA",
			Airport:  testAirport(string(rune('A'+i))+"AAA", lat, -110.9410),
			Severity: SeverityClear,
		})
	}

	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, route)

	require.Len(t, got.AlternateCandidates, 5)
	assert.Equal(t, "AAAA", got.AlternateCandidates[0].Code)
	assert.Equal(t, "EAAA", got.AlternateCandidates[4].Code)
}

func TestRecommend_PrimaryExcludedFromAlternates(t *testing.T) {
	route := []RouteLeg{
		{Code: "KTUS", Airport: tucson(), Severity: SeverityClear},
		{Code: "KPHX", Airport: testAirport("KPHX", 33.4342, -112.0116), Severity: SeverityClear},
	}

	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, route)

	require.Len(t, got.AlternateCandidates, 1)
	assert.Equal(t, "KPHX", got.AlternateCandidates[0].Code)
}

func TestRecommend_MissingCoordinatesSkipped(t *testing.T) {
	route := []RouteLeg{
		{Code: "ZZZZ", Airport: FallbackAirport("ZZZZ"), Severity: SeverityClear},
		{Code: "KPHX", Airport: testAirport("KPHX", 33.4342, -112.0116), Severity: SeverityClear},
	}

	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, route)

	require.Len(t, got.AlternateCandidates, 1)
	assert.Equal(t, "KPHX", got.AlternateCandidates[0].Code)
}

func TestRecommend_NoAlternatesWithoutPrimaryCoordinates(t *testing.T) {
	route := []RouteLeg{
		{Code: "KPHX", Airport: testAirport("KPHX", 33.4342, -112.0116), Severity: SeverityClear},
	}

	got := Recommend(FallbackAirport("KTUS"), severeTucsonRaw, SeveritySevere, route)

	assert.True(t, got.Active)
	assert.Empty(t, got.AlternateCandidates)
}

func TestRecommend_DelayAdvisory(t *testing.T) {
	clearLeg := func(code string) RouteLeg {
		return RouteLeg{Code: code, Severity: SeverityClear}
	}
	degradedLeg := func(code string, s Severity) RouteLeg {
		return RouteLeg{Code: code, Severity: s}
	}

	tests := []struct {
		name       string
		route      []RouteLeg
		wantAdvice bool
	}{
		{
			"half of four degraded",
			[]RouteLeg{degradedLeg("A", SeveritySevere), degradedLeg("B", SeverityModerate), clearLeg("C"), clearLeg("D")},
			true,
		},
		{
			"one of four degraded",
			[]RouteLeg{degradedLeg("A", SeveritySevere), clearLeg("B"), clearLeg("C"), clearLeg("D")},
			false,
		},
		{
			"single degraded short route below floor",
			[]RouteLeg{degradedLeg("A", SeveritySevere), clearLeg("B")},
			false,
		},
		{
			"two degraded short route meets floor",
			[]RouteLeg{degradedLeg("A", SeveritySevere), degradedLeg("B", SeverityModerate), clearLeg("C")},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, tt.route)
			if tt.wantAdvice {
				assert.Equal(t, delayAdvisoryText, got.DelayAdvisory)
			} else {
				assert.Empty(t, got.DelayAdvisory)
			}
		})
	}
}

func TestRecommend_NilRouteSkipsRouteFeatures(t *testing.T) {
	got := Recommend(tucson(), severeTucsonRaw, SeveritySevere, nil)

	assert.True(t, got.Active)
	assert.Empty(t, got.AlternateCandidates)
	assert.Empty(t, got.DetourSuggestions)
	assert.Empty(t, got.DelayAdvisory)
}
