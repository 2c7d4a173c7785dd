package domain

import "time"

// Severity is the four-level hazard classification of a METAR.
type Severity string

const (
	SeverityClear    Severity = "CLEAR"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
	SeverityUnknown  Severity = "UNKNOWN"
)

// rank orders severities for worst-of comparisons. UNKNOWN sits between
// CLEAR and MODERATE: missing data is worse than confirmed-clear but not
// evidence of hazardous weather.
func (s Severity) rank() int {
	switch s {
	case SeveritySevere:
		return 3
	case SeverityModerate:
		return 2
	case SeverityUnknown:
		return 1
	default:
		return 0
	}
}

// Degraded reports whether the severity calls for operational attention.
func (s Severity) Degraded() bool {
	return s == SeverityModerate || s == SeveritySevere
}

// WorstSeverity returns the most hazardous of the given severities,
// or UNKNOWN when the list is empty.
func WorstSeverity(severities ...Severity) Severity {
	worst := SeverityUnknown
	for i, s := range severities {
		if i == 0 || s.rank() > worst.rank() {
			worst = s
		}
	}
	return worst
}

// Wind is the decoded wind group. Direction is degrees true as a string
// ("270") or "VRB" for variable winds.
type Wind struct {
	Direction string `json:"direction"`
	SpeedKt   int    `json:"speed_kt"`
	GustKt    *int   `json:"gust_kt,omitempty"`
}

// CloudLayer is one decoded cloud group with its base in feet AGL.
type CloudLayer struct {
	Coverage string `json:"coverage"`
	BaseFt   int    `json:"base_ft"`
}

// MetarTokens is the structured decode of a METAR. Groups missing from the
// report stay at their zero values; no field is ever invalid.
type MetarTokens struct {
	Wind                 *Wind        `json:"wind,omitempty"`
	Visibility           string       `json:"visibility,omitempty"`
	WeatherPhenomena     []string     `json:"weather_phenomena,omitempty"`
	Clouds               []CloudLayer `json:"clouds,omitempty"`
	VerticalVisibilityFt *int         `json:"vertical_visibility_ft,omitempty"`
	TemperatureC         *int         `json:"temperature_c,omitempty"`
	DewpointC            *int         `json:"dewpoint_c,omitempty"`
	Altimeter            string       `json:"altimeter,omitempty"`
}

// VisibilitySM returns the visibility as a number of statute miles.
// Fractions ("1/2") are evaluated. The second return is false when the
// report carried no parseable visibility group.
func (t MetarTokens) VisibilitySM() (float64, bool) {
	return parseVisibilitySM(t.Visibility)
}

// CeilingFt returns the ceiling in feet AGL: the vertical visibility when
// the sky is obscured, otherwise the lowest broken or overcast layer base.
// The second return is false when the report has no ceiling.
func (t MetarTokens) CeilingFt() (int, bool) {
	if t.VerticalVisibilityFt != nil {
		return *t.VerticalVisibilityFt, true
	}
	ceiling := 0
	found := false
	for _, layer := range t.Clouds {
		if layer.Coverage != "BKN" && layer.Coverage != "OVC" {
			continue
		}
		if !found || layer.BaseFt < ceiling {
			ceiling = layer.BaseFt
			found = true
		}
	}
	return ceiling, found
}

// GustKt returns the gust speed in knots, or 0 when no gusts were reported.
func (t MetarTokens) GustKt() int {
	if t.Wind == nil || t.Wind.GustKt == nil {
		return 0
	}
	return *t.Wind.GustKt
}

// AirportRef identifies an airport and its position. Coordinates are
// pointers because reference data for small fields is often incomplete.
type AirportRef struct {
	ICAO      string   `json:"icao"`
	IATA      string   `json:"iata,omitempty"`
	Name      string   `json:"name"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Source    string   `json:"source,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (a AirportRef) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// FallbackAirport builds a minimal reference record for a code that no
// data source recognizes, so briefings degrade instead of failing.
func FallbackAirport(code string) AirportRef {
	return AirportRef{
		ICAO:    code,
		Name:    "Airport " + code,
		City:    "Unknown",
		Country: "Unknown",
		Source:  "fallback",
	}
}

// Report is a raw weather observation fetched from an upstream provider.
type Report struct {
	ICAO       string    `json:"icao"`
	Raw        string    `json:"raw_text"`
	Source     string    `json:"source"`
	ObservedAt time.Time `json:"observed_at"`
}

// RouteLeg is one airport on a planned route with its current conditions,
// as seen by the decision engine.
type RouteLeg struct {
	Code     string
	Airport  AirportRef
	Raw      string
	Severity Severity
}

// RouteAlert is a severe-weather notification emitted for a route member.
type RouteAlert struct {
	ICAO        string    `json:"icao"`
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	RiskAlerts  []string  `json:"risk_alerts,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// AlternateCandidate is a ranked diversion option near a primary airport.
type AlternateCandidate struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Severity   Severity `json:"severity"`
	DistanceNM float64  `json:"distance_nm"`
}

// OperationalDecision is the advisory produced by [Recommend]. Inactive
// decisions carry no alerts or suggestions.
type OperationalDecision struct {
	Active              bool                 `json:"active"`
	Reason              string               `json:"reason,omitempty"`
	RiskAlerts          []string             `json:"risk_alerts,omitempty"`
	DelayAdvisory       string               `json:"delay_advisory,omitempty"`
	AlternateCandidates []AlternateCandidate `json:"alternate_candidates,omitempty"`
	DetourSuggestions   []string             `json:"detour_suggestions,omitempty"`
}
