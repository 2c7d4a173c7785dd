package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// windRe matches the wind group as a standalone field: 3-digit direction
	// or VRB, 2-3 digit speed, optional gust, knots.
	// "27015G25KT" -> direction=270, speed=15, gust=25.
	windRe = regexp.MustCompile(`^(VRB|\d{3})(\d{2,3})(?:G(\d{2,3}))?KT$`)

	// visibilityRe matches US statute-mile visibility, whole or fractional:
	// "10SM", "1/2SM", "3/4SM".
	visibilityRe = regexp.MustCompile(`^(\d{1,3}(?:/\d{1,2})?)SM$`)

	// weatherRe matches a present-weather field: optional "+"/"-"/"VC"
	// prefix followed by one or more known phenomenon codes, e.g. "TS",
	// "-RA", "VCFG", "TSRA".
	weatherRe = regexp.MustCompile(`^(?:\+|-|VC)?(?:TS|DZ|RA|SN|SG|PL|GR|GS|UP|BR|FG|FU|HZ|DU|SA|SQ|PO|DS|SS|VA)+$`)

	// cloudRe matches a cloud layer with its base in hundreds of feet.
	// Convective type suffixes (CB, TCU) are accepted and dropped.
	cloudRe = regexp.MustCompile(`^(FEW|SCT|BKN|OVC)(\d{3})(?:CB|TCU)?$`)

	// verticalVisRe matches an obscured-sky vertical visibility group.
	verticalVisRe = regexp.MustCompile(`^VV(\d{3})$`)

	// temperatureRe matches the temperature/dewpoint group; "M" marks
	// negative values: "M05/M10" = -5/-10 °C.
	temperatureRe = regexp.MustCompile(`^(M?)(\d{2})/(M?)(\d{2})$`)

	// altimeterRe matches the US altimeter setting in hundredths of inHg.
	altimeterRe = regexp.MustCompile(`^A(\d{4})$`)
)

// Tokenize decodes the recognized groups of a raw METAR into MetarTokens.
// It is total: unrecognized or garbled fields are skipped, missing groups
// stay at their zero values, and it never fails. For single-value groups
// (wind, visibility, temperature, altimeter) the first match wins; weather
// phenomena and cloud layers keep every match in report order.
func Tokenize(raw string) MetarTokens {
	var tokens MetarTokens

	for _, field := range strings.Fields(strings.ToUpper(strings.TrimSpace(raw))) {
		if tokens.Wind == nil {
			if m := windRe.FindStringSubmatch(field); m != nil {
				tokens.Wind = parseWind(m)
				continue
			}
		}
		if tokens.Visibility == "" {
			if m := visibilityRe.FindStringSubmatch(field); m != nil {
				tokens.Visibility = m[1]
				continue
			}
		}
		if m := cloudRe.FindStringSubmatch(field); m != nil {
			tokens.Clouds = append(tokens.Clouds, CloudLayer{
				Coverage: m[1],
				BaseFt:   parseIntOrZero(m[2]) * 100,
			})
			continue
		}
		if tokens.VerticalVisibilityFt == nil {
			if m := verticalVisRe.FindStringSubmatch(field); m != nil {
				vv := parseIntOrZero(m[1]) * 100
				tokens.VerticalVisibilityFt = &vv
				continue
			}
		}
		if tokens.TemperatureC == nil {
			if m := temperatureRe.FindStringSubmatch(field); m != nil {
				temp := parseSignedTemp(m[1], m[2])
				dew := parseSignedTemp(m[3], m[4])
				tokens.TemperatureC = &temp
				tokens.DewpointC = &dew
				continue
			}
		}
		if tokens.Altimeter == "" {
			if m := altimeterRe.FindStringSubmatch(field); m != nil {
				tokens.Altimeter = m[1][:2] + "." + m[1][2:] + " inHg"
				continue
			}
		}
		if weatherRe.MatchString(field) {
			tokens.WeatherPhenomena = append(tokens.WeatherPhenomena, field)
		}
	}

	return tokens
}

func parseWind(m []string) *Wind {
	w := Wind{
		Direction: m[1],
		SpeedKt:   parseIntOrZero(m[2]),
	}
	if m[3] != "" {
		gust := parseIntOrZero(m[3])
		w.GustKt = &gust
	}
	return &w
}

// parseIntOrZero parses a string as int, returning 0 on failure.
func parseIntOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseSignedTemp applies the METAR "M" negative-value prefix.
func parseSignedTemp(sign, digits string) int {
	v := parseIntOrZero(digits)
	if sign == "M" {
		return -v
	}
	return v
}

// parseVisibilitySM evaluates a visibility token ("10", "1/2") as statute
// miles. Returns false for empty or malformed tokens.
func parseVisibilitySM(vis string) (float64, bool) {
	vis = strings.TrimSpace(vis)
	if vis == "" {
		return 0, false
	}

	if num, den, ok := strings.Cut(vis, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(vis, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
