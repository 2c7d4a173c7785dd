package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Decision engine thresholds. Activation is conservative (strong gusts
// only), while the gust risk alert fires earlier so crews see building
// winds before they become an activation trigger.
const (
	softVisibilityMaxSM  = 3.0
	lowVisibilityAlertSM = 1.0
	lowCeilingFt         = 1000
	softGustMinKt        = 30
	gustAlertMinKt       = 20
	maxAlternateRangeNM  = 350.0
	maxAlternateCount    = 5
)

const (
	reasonSevere   = "SEVERE conditions"
	reasonMarginal = "Marginal visibility/ceiling or strong gusts"

	detourSuggestionText = "Plan routing to bypass airports reporting SEVERE conditions; expect extended track miles and additional fuel reserves."

	delayAdvisoryText = "High disruption risk: half or more of the route reports degraded weather. Expect holding, delays, and possible ground stops; build schedule buffer."
)

// Recommend decides whether operational intervention is warranted at the
// primary airport and, when it is, assembles risk alerts, ranked alternate
// candidates from the route, detour suggestions and a delay advisory.
// Pure computation over already-fetched data: an empty METAR yields an
// inactive decision, missing coordinates silently exclude an airport from
// distance-based features, and no input ever causes an error.
func Recommend(primary AirportRef, rawMETAR string, severity Severity, route []RouteLeg) OperationalDecision {
	if strings.TrimSpace(rawMETAR) == "" {
		return OperationalDecision{}
	}

	tokens := Tokenize(rawMETAR)
	vis, hasVis := tokens.VisibilitySM()
	ceiling, hasCeiling := tokens.CeilingFt()
	gust := tokens.GustKt()

	hard := severity == SeveritySevere
	soft := (hasVis && vis <= softVisibilityMaxSM) ||
		(hasCeiling && ceiling < lowCeilingFt) ||
		gust >= softGustMinKt

	if !hard && !soft {
		return OperationalDecision{}
	}

	decision := OperationalDecision{Active: true, Reason: reasonMarginal}
	if hard {
		decision.Reason = reasonSevere
	}

	if hasVis && vis <= lowVisibilityAlertSM {
		decision.RiskAlerts = append(decision.RiskAlerts,
			fmt.Sprintf("Low visibility %.1fSM — IFR, CAT II/III may be required.", vis))
	}
	if hasCeiling && ceiling < lowCeilingFt {
		decision.RiskAlerts = append(decision.RiskAlerts,
			fmt.Sprintf("Low ceiling %d ft — approach minima constraints.", ceiling))
	}
	if gust >= gustAlertMinKt {
		decision.RiskAlerts = append(decision.RiskAlerts,
			fmt.Sprintf("Gusts %d kt — crosswind/turbulence considerations.", gust))
	}

	if route != nil {
		decision.AlternateCandidates = rankAlternates(primary, route)
		decision.DetourSuggestions = detourSuggestions(route)
		decision.DelayAdvisory = delayAdvisory(route)
	}

	return decision
}

// rankAlternates selects route members that could serve as diversion
// targets for the primary: coordinates known, not SEVERE, within range.
// CLEAR airports always outrank MODERATE ones regardless of distance;
// within a tier the nearest wins.
func rankAlternates(primary AirportRef, route []RouteLeg) []AlternateCandidate {
	if !primary.HasCoordinates() {
		return nil
	}

	var candidates []AlternateCandidate
	for _, leg := range route {
		if leg.Code == primary.ICAO {
			continue
		}
		if !leg.Airport.HasCoordinates() || leg.Severity == SeveritySevere {
			continue
		}

		distance := DistanceNM(*primary.Latitude, *primary.Longitude,
			*leg.Airport.Latitude, *leg.Airport.Longitude)
		if distance > maxAlternateRangeNM {
			continue
		}

		candidates = append(candidates, AlternateCandidate{
			Code:       leg.Code,
			Name:       leg.Airport.Name,
			Severity:   leg.Severity,
			DistanceNM: distance,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di := candidates[i].Severity != SeverityClear
		dj := candidates[j].Severity != SeverityClear
		if di != dj {
			return !di
		}
		return candidates[i].DistanceNM < candidates[j].DistanceNM
	})

	if len(candidates) > maxAlternateCount {
		candidates = candidates[:maxAlternateCount]
	}
	return candidates
}

func detourSuggestions(route []RouteLeg) []string {
	for _, leg := range route {
		if leg.Severity == SeveritySevere {
			return []string{detourSuggestionText}
		}
	}
	return nil
}

// delayAdvisory fires when degraded members reach max(2, total/2),
// i.e. half or more of the route is compromised.
func delayAdvisory(route []RouteLeg) string {
	degraded := 0
	for _, leg := range route {
		if leg.Severity.Degraded() {
			degraded++
		}
	}

	threshold := len(route) / 2
	if threshold < 2 {
		threshold = 2
	}
	if degraded >= threshold {
		return delayAdvisoryText
	}
	return ""
}
