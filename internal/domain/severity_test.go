package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Severity
	}{
		{"empty report", "", SeverityUnknown},
		{"whitespace only", "   ", SeverityUnknown},
		{"clear report", "KXXX 251200Z 10008KT 10SM CLR 25/10 A3000", SeverityClear},
		{"thunderstorm", "KTUS 261152Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992", SeveritySevere},
		{"thunderstorm with rain", "KXXX 3SM TSRA BKN020", SeveritySevere},
		{"cumulonimbus", "KXXX 10SM SCT030 BKN060CB 28/22 A2992", SeveritySevere},
		{"funnel cloud", "KXXX 5SM FC SCT040", SeveritySevere},
		{"heavy hail", "KXXX 2SM +GR BKN030", SeveritySevere},
		{"volcanic ash", "KXXX 4SM VA SCT050", SeveritySevere},
		{"squall", "KXXX 6SM SQ BKN040", SeveritySevere},
		{"rain only", "KLAX 251753Z 25012KT 6SM RA FEW150 22/18 A2995", SeverityModerate},
		{"mist only", "KLAX 251753Z 25012KT 6SM BR FEW150 22/18 A2995", SeverityModerate},
		{"snow", "KORD 251753Z 30010KT 4SM -SN OVC035 M02/M05 A3005", SeverityModerate},
		{"low broken layer", "KJFK 251753Z 28015KT 8SM BKN020 OVC040 18/15 A3015", SeverityModerate},
		{"low overcast layer", "EGLL 251200Z 25015KT 8000 OVC008 12/10 Q1018", SeverityModerate},
		{"high layers only", "KPHX 251753Z 10008KT 10SM FEW120 SCT250 32/05 A2995", SeverityClear},
		{"lowercase input", "ktus 261152z 09015kt 10sm ts sct030", SeveritySevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeverity(tt.raw))
		})
	}
}

// Two moderate condition families still clamp to MODERATE; the scale only
// escalates past it on an explicit severe indicator.
func TestClassifySeverity_MultipleModerateConditionsClamp(t *testing.T) {
	raw := "KSEA 251753Z 18012KT 2SM -RA BR OVC008 10/08 A2980"
	assert.Equal(t, SeverityModerate, ClassifySeverity(raw))
}

// Classification works on the raw substring level so truncated reports
// with a hazard marker still classify without a successful parse.
func TestClassifySeverity_GarbledReportStillClassifies(t *testing.T) {
	assert.Equal(t, SeveritySevere, ClassifySeverity("////TS////"))
	assert.Equal(t, SeverityModerate, ClassifySeverity("@@RA@@"))
}

func TestWorstSeverity(t *testing.T) {
	tests := []struct {
		name       string
		severities []Severity
		want       Severity
	}{
		{"empty", nil, SeverityUnknown},
		{"severe dominates", []Severity{SeverityClear, SeveritySevere, SeverityModerate}, SeveritySevere},
		{"moderate over clear", []Severity{SeverityClear, SeverityModerate}, SeverityModerate},
		{"unknown over clear", []Severity{SeverityClear, SeverityUnknown}, SeverityUnknown},
		{"all clear", []Severity{SeverityClear, SeverityClear}, SeverityClear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorstSeverity(tt.severities...))
		})
	}
}
