package wx

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonboulle/clockwork"

	"github.com/sykeriin/aerobrief/internal/domain"
)

// syntheticReports are realistic per-station templates covering the main
// severity classes. %s is the DDHHMM observation time group.
var syntheticReports = map[string]string{
	"KTUS": "KTUS %sZ 09015G25KT 10SM TS SCT030 BKN060 CB100 28/22 A2992 RMK AO2 TSB45",
	"KLAX": "KLAX %sZ 25012KT 6SM BR FEW015 SCT250 22/18 A2995 RMK AO2 SLP142",
	"KJFK": "KJFK %sZ 28015G20KT 8SM BKN020 OVC040 18/15 A3015 RMK AO2 SLP008",
	"KPHX": "KPHX %sZ 10008KT 10SM CLR 32/05 A2995 RMK AO2 SLP140",
	"VOGO": "VOGO %sZ 27008KT 3000 -RA SCT015 BKN030 26/24 Q1012 NOSIG",
	"EGLL": "EGLL %sZ 25015KT 8000 BKN012 OVC020 12/10 Q1018 TEMPO 4000 -RA",
	"RJTT": "RJTT %sZ 09012KT 9999 FEW030 SCT100 25/19 Q1015 NOSIG",
}

// defaultSyntheticReport is used for stations without a dedicated template.
const defaultSyntheticReport = "%s %sZ 27010KT 9999 FEW030 22/18 Q1013"

// SyntheticSource generates deterministic offline METARs. It terminates
// the provider chain: it never fails, so a briefing always has input even
// with no network at all.
type SyntheticSource struct {
	clock clockwork.Clock
}

// NewSyntheticSource creates the offline generator. Pass a fake clock in
// tests for reproducible observation time groups.
func NewSyntheticSource(clock clockwork.Clock) *SyntheticSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SyntheticSource{clock: clock}
}

func (s *SyntheticSource) Name() string { return "synthetic" }

// SyntheticStations lists the stations with dedicated templates, sorted.
func SyntheticStations() []string {
	stations := make([]string, 0, len(syntheticReports))
	for icao := range syntheticReports {
		stations = append(stations, icao)
	}
	sort.Strings(stations)
	return stations
}

// METAR renders the station template with the current day/hour/minute.
func (s *SyntheticSource) METAR(_ context.Context, icao string) (domain.Report, error) {
	now := s.clock.Now().UTC()
	timeGroup := now.Format("021504")

	raw, ok := syntheticReports[icao]
	if ok {
		raw = fmt.Sprintf(raw, timeGroup)
	} else {
		raw = fmt.Sprintf(defaultSyntheticReport, icao, timeGroup)
	}

	return domain.Report{
		ICAO:       icao,
		Raw:        raw,
		Source:     s.Name(),
		ObservedAt: now,
	}, nil
}
