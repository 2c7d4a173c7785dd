// Command metarlint decodes METARs and reports what the briefing pipeline
// would make of them: tokens, severity class, and the deterministic
// summary. Reports come from arguments or, when none are given, one per
// line on stdin.
//
// Usage:
//
//	go run ./cmd/metarlint "KTUS 231753Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992"
//	cat reports.txt | go run ./cmd/metarlint -json
//
// Exits nonzero when any report classifies as UNKNOWN, which usually means
// the input is garbled or empty.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sykeriin/aerobrief/internal/domain"
)

type lintResult struct {
	Raw      string             `json:"raw_text"`
	Severity domain.Severity    `json:"severity"`
	Summary  string             `json:"summary"`
	Tokens   domain.MetarTokens `json:"tokens"`
}

func main() {
	jsonOut := flag.Bool("json", false, "emit results as a JSON array")
	flag.Parse()

	raws := flag.Args()
	if len(raws) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				raws = append(raws, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
			os.Exit(1)
		}
	}
	if len(raws) == 0 {
		fmt.Fprintln(os.Stderr, "no reports given")
		flag.Usage()
		os.Exit(1)
	}

	results := make([]lintResult, len(raws))
	unknown := 0
	for i, raw := range raws {
		severity := domain.ClassifySeverity(raw)
		if severity == domain.SeverityUnknown {
			unknown++
		}
		results[i] = lintResult{
			Raw:      raw,
			Severity: severity,
			Summary:  domain.Summarize(domain.Tokenize(raw)),
			Tokens:   domain.Tokenize(raw),
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
	} else {
		printText(results)
	}

	if unknown > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d reports classified UNKNOWN\n", unknown, len(results))
		os.Exit(1)
	}
}

func printText(results []lintResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s\n", r.Raw)
		fmt.Printf("  severity: %s\n", r.Severity)
		if r.Summary != "" {
			fmt.Printf("  summary:  %s\n", r.Summary)
		} else {
			fmt.Printf("  summary:  (no groups decoded)\n")
		}
		printTokens(r.Tokens)
	}
}

func printTokens(t domain.MetarTokens) {
	if t.Wind != nil {
		gust := ""
		if t.Wind.GustKt != nil {
			gust = fmt.Sprintf(" G%d", *t.Wind.GustKt)
		}
		fmt.Printf("  wind:     %s @ %d kt%s\n", t.Wind.Direction, t.Wind.SpeedKt, gust)
	}
	if t.Visibility != "" {
		fmt.Printf("  vis:      %sSM\n", t.Visibility)
	}
	if len(t.WeatherPhenomena) > 0 {
		fmt.Printf("  wx:       %s\n", strings.Join(t.WeatherPhenomena, " "))
	}
	for _, layer := range t.Clouds {
		fmt.Printf("  cloud:    %s %d ft\n", layer.Coverage, layer.BaseFt)
	}
	if t.VerticalVisibilityFt != nil {
		fmt.Printf("  vv:       %d ft\n", *t.VerticalVisibilityFt)
	}
	if ceiling, ok := t.CeilingFt(); ok {
		fmt.Printf("  ceiling:  %d ft\n", ceiling)
	}
	if t.TemperatureC != nil && t.DewpointC != nil {
		fmt.Printf("  temp/dew: %d/%d C\n", *t.TemperatureC, *t.DewpointC)
	}
	if t.Altimeter != "" {
		fmt.Printf("  altim:    %s\n", t.Altimeter)
	}
}
