// Package domain models aviation routine weather reports (METAR) and the
// operational guidance derived from them.
//
// # Data Source
//
// METARs are raw observation strings published by airport weather stations,
// e.g.
//
//	KTUS 261753Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992 RMK AO2 TSB45
//
// The adapters fetch them from NOAA's TGFTP mirror or the AviationWeather.gov
// data API; this package only sees the raw string.
//
// # METAR Conventions
//
// Wind group:
//
//	DDDSSKT or DDDSSGGGKT — direction in degrees true (or "VRB" for variable),
//	speed in knots, optional gust after "G". "27015G25KT" = from 270° at 15 kt
//	gusting 25 kt.
//
// Visibility (US format):
//
//	Statute miles, whole or fractional: "10SM", "1/2SM", "3/4SM".
//	Metric 4-digit visibility groups are out of scope here.
//
// Weather phenomena:
//
//	Two-letter codes, optionally prefixed with "+" (heavy), "-" (light) or
//	"VC" (in the vicinity), standing alone as a report field: TS thunderstorm,
//	RA rain, SN snow, BR mist, FG fog, GR hail, SQ squall, VA volcanic ash and
//	so on. Codes combine within one field ("TSRA" = thunderstorm with rain).
//
// Cloud layers:
//
//	FEW/SCT/BKN/OVC + 3-digit base in hundreds of feet AGL: "BKN060" = broken
//	at 6000 ft. "VVNNN" reports vertical visibility instead of layers when the
//	sky is obscured. The ceiling is the vertical visibility if present,
//	otherwise the lowest broken or overcast base.
//
// Temperature group:
//
//	"TT/DD" in whole degrees Celsius; "M" prefix marks negative values,
//	so "M05/M10" = -5°C with dewpoint -10°C.
//
// Altimeter:
//
//	"ANNNN" in hundredths of inches of mercury: "A2992" = 29.92 inHg.
//
// # Severity Classification
//
// [ClassifySeverity] works on the raw text, not on tokenizer output, so a
// garbled report that still contains "TS" is flagged SEVERE even when no
// group parses. The scale (CLEAR, MODERATE, SEVERE, UNKNOWN) is a
// project-specific simplification for dispatch-style briefings; see the
// function docs for the exact indicator lists.
//
// # Operational Decisions
//
// [Recommend] turns a severity plus parsed thresholds (visibility, ceiling,
// gusts) into an advisory: risk alerts, ranked alternate airports within
// diversion range, detour suggestions and a delay advisory for routes where
// degraded weather dominates.
package domain
