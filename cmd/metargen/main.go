// Command metargen prints synthetic METARs from the offline generator,
// useful for seeding demos and test fixtures without network access. It
// uses the same generator that terminates the provider chain, so output
// matches what the service serves when all upstream providers are down.
//
// Usage:
//
//	go run ./cmd/metargen                      # all built-in stations
//	go run ./cmd/metargen KTUS EGLL            # specific stations
//	go run ./cmd/metargen -at 2026-08-23T17:53:00Z -out fixtures.json KTUS
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sykeriin/aerobrief/internal/adapter/wx"
	"github.com/sykeriin/aerobrief/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	at := flag.String("at", "", "fixed observation time (RFC 3339) for reproducible output")
	out := flag.String("out", "", "also write reports as a JSON fixture to this path")
	flag.Parse()

	clock := clockwork.Clock(clockwork.NewRealClock())
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("parse -at: %w", err)
		}
		clock = clockwork.NewFakeClockAt(t)
	}

	stations := flag.Args()
	if len(stations) == 0 {
		stations = wx.SyntheticStations()
	}
	for i, s := range stations {
		stations[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	source := wx.NewSyntheticSource(clock)

	reports := make([]domain.Report, 0, len(stations))
	for _, icao := range stations {
		report, err := source.METAR(context.Background(), icao)
		if err != nil {
			return fmt.Errorf("generate %s: %w", icao, err)
		}
		reports = append(reports, report)
		fmt.Printf("%-9s %s\n", domain.ClassifySeverity(report.Raw), report.Raw)
	}

	if *out != "" {
		if err := writeJSON(*out, reports); err != nil {
			return fmt.Errorf("writing fixture: %w", err)
		}
		log.Printf("wrote fixture: %s", *out)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
