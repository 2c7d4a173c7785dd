// Package openflights resolves airport codes against the OpenFlights
// airports.dat reference file, a free CSV snapshot of world airports.
package openflights

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sykeriin/aerobrief/internal/domain"
	"github.com/sykeriin/aerobrief/internal/observability"
)

// airports.dat column layout.
const (
	colName    = 1
	colCity    = 2
	colCountry = 3
	colIATA    = 4
	colICAO    = 5
	colLat     = 6
	colLon     = 7
	minColumns = 8
)

// nullField is the OpenFlights sentinel for missing values.
const nullField = `\N`

// Client looks airports up in the OpenFlights CSV. Each lookup streams the
// file; wrap the client in [NewCachedLookup] so repeat codes are served
// from memory.
type Client struct {
	dataURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an OpenFlights lookup client.
func NewClient(dataURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		dataURL:    dataURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metrics,
	}
}

// Lookup resolves an ICAO or IATA code to an airport record. Unknown codes
// degrade to a fallback record rather than an error so a briefing for a
// private strip still renders; only transport failures are errors.
func (c *Client) Lookup(ctx context.Context, code string) (domain.AirportRef, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.dataURL, nil)
	if err != nil {
		return domain.AirportRef{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.AirportLookups.WithLabelValues("error").Inc()
		return domain.AirportRef{}, fmt.Errorf("openflights request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.AirportLookups.WithLabelValues("error").Inc()
		return domain.AirportRef{}, fmt.Errorf("openflights: status %d", resp.StatusCode)
	}

	airport, found := scanAirports(resp.Body, code)
	if !found {
		c.metrics.AirportLookups.WithLabelValues("fallback").Inc()
		c.logger.Warn("airport code not in reference data", "code", code)
		return domain.FallbackAirport(code), nil
	}

	c.metrics.AirportLookups.WithLabelValues("hit").Inc()
	return airport, nil
}

// scanAirports streams CSV records until the code matches on ICAO or IATA.
func scanAirports(r io.Reader, code string) (domain.AirportRef, bool) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return domain.AirportRef{}, false
		}
		if err != nil {
			// Malformed rows exist in the dataset; skip and keep scanning.
			continue
		}
		if len(record) < minColumns {
			continue
		}

		icao := strings.ToUpper(record[colICAO])
		iata := strings.ToUpper(record[colIATA])
		if (icao != code && iata != code) || record[colName] == nullField {
			continue
		}

		airport := domain.AirportRef{
			ICAO:    code,
			Name:    record[colName],
			City:    record[colCity],
			Country: record[colCountry],
			Source:  "openflights",
		}
		if icao != nullField {
			airport.ICAO = icao
		}
		if iata != nullField {
			airport.IATA = iata
		}
		airport.Latitude = parseCoordinate(record[colLat])
		airport.Longitude = parseCoordinate(record[colLon])
		return airport, true
	}
}

func parseCoordinate(s string) *float64 {
	if s == nullField {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
