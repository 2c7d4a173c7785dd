package briefing

import (
	"fmt"

	"github.com/sykeriin/aerobrief/internal/domain"
)

// severityBriefing produces the rule-based briefing prose for an airport.
// The text is keyed entirely off the severity class so it stays stable
// regardless of narrator availability.
func severityBriefing(icao string, severity domain.Severity, airport domain.AirportRef) BriefingText {
	switch severity {
	case domain.SeveritySevere:
		return BriefingText{
			ExecutiveSummary:  fmt.Sprintf("SEVERE weather conditions at %s (%s). Thunderstorms and/or other hazardous weather present. Expect significant operational disruptions including delays, diversions, and possible ground stops.", icao, airport.Name),
			OperationalImpact: "Major operational impact expected. Flight delays likely. Ground operations may be suspended. Consider alternate airports and routing.",
			Recommendations:   []string{
				fmt.Sprintf("Consider delaying departure to %s until conditions improve", airport.City),
				"File multiple alternate airports for contingency planning",
				"Brief flight crew thoroughly on severe weather procedures",
				"Monitor weather radar and updates closely for rapid changes",
				"Coordinate with dispatch for possible route modifications",
			},
		}
	case domain.SeverityModerate:
		return BriefingText{
			ExecutiveSummary:  fmt.Sprintf("MODERATE weather conditions at %s (%s). Weather impacts present that require operational attention and may affect flight operations.", icao, airport.Name),
			OperationalImpact: "Some operational impacts expected. Possible flight delays. Crew briefing recommended. Monitor conditions closely.",
			Recommendations:   []string{
				fmt.Sprintf("Monitor weather developments at %s", airport.City),
				"Brief flight crew on current weather conditions and trends",
				"Consider additional fuel for possible holding or diversions",
				"Review alternate airport options and brief crew accordingly",
				"Maintain communication with ATC regarding weather conditions",
			},
		}
	case domain.SeverityUnknown:
		return BriefingText{
			ExecutiveSummary:  fmt.Sprintf("Weather conditions at %s (%s) could not be determined. No usable observation is available.", icao, airport.Name),
			OperationalImpact: "Operational impact unknown. Obtain a current observation before dispatch.",
			Recommendations:   []string{
				"Obtain weather from an alternate source before departure",
				"Treat conditions as degraded until an observation is available",
				"Brief crew that destination weather is unverified",
			},
		}
	default:
		return BriefingText{
			ExecutiveSummary:  fmt.Sprintf("Weather conditions at %s (%s) are favorable for normal flight operations. No significant weather impacts expected.", icao, airport.Name),
			OperationalImpact: "Normal flight operations expected. Standard weather briefing procedures apply. Routine monitoring recommended.",
			Recommendations:   []string{
				"Standard weather briefing completed - no special procedures required",
				"Normal flight planning and fuel calculations apply",
				"Continue routine weather monitoring during flight planning",
				"Brief crew on standard operating procedures",
				"Weather conditions support normal approach and departure operations",
			},
		}
	}
}

// routeRecommendations returns route-level guidance keyed off the worst
// severity across the route.
func routeRecommendations(overall domain.Severity) []string {
	switch overall {
	case domain.SeveritySevere:
		return []string{
			"Consider delaying departure due to severe weather conditions",
			"File alternate airports for all destinations",
			"Ensure aircraft is equipped for severe weather operations",
			"Monitor weather updates closely",
		}
	case domain.SeverityModerate:
		return []string{
			"Brief crew on moderate weather conditions along route",
			"Consider alternate routing if available",
			"Carry extra fuel for possible delays or diversions",
		}
	case domain.SeverityUnknown:
		return []string{
			"One or more stations have no usable observation",
			"Re-check weather before departure",
		}
	default:
		return []string{"Weather conditions are favorable for normal operations"}
	}
}
