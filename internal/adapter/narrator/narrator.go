// Package narrator generates plain-language weather narratives with the
// Gemini API. Output is advisory only: the briefing service verifies every
// number against the decoded tokens and substitutes the deterministic
// summary when verification fails.
package narrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/sykeriin/aerobrief/internal/domain"
)

// Narrator calls a Gemini model to narrate decoded METAR conditions.
type Narrator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// New creates a narrator backed by the given model.
func New(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Narrator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Narrator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Narrate produces a short pilot-facing narrative for the given conditions.
func (n *Narrator) Narrate(ctx context.Context, airport domain.AirportRef, tokens domain.MetarTokens, severity domain.Severity) (string, error) {
	prompt := buildPrompt(airport, tokens, severity)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := n.client.Models.GenerateContent(ctx, n.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative for %s: %w", airport.ICAO, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("empty narrative response")
	}

	n.logger.Debug("narrative generated", "icao", airport.ICAO, "chars", len(text))
	return text, nil
}

// buildPrompt renders the decoded conditions as explicit facts. The model
// is told to repeat every numeric value verbatim; downstream verification
// rejects narratives that drop or alter a number.
func buildPrompt(airport domain.AirportRef, tokens domain.MetarTokens, severity domain.Severity) string {
	var facts []string

	if tokens.Wind != nil {
		w := *tokens.Wind
		fact := fmt.Sprintf("Wind: from %s at %d kt", w.Direction, w.SpeedKt)
		if w.Direction == "VRB" {
			fact = fmt.Sprintf("Wind: variable at %d kt", w.SpeedKt)
		}
		if w.GustKt != nil {
			fact += fmt.Sprintf(", gusting %d kt", *w.GustKt)
		}
		facts = append(facts, fact)
	}
	if tokens.Visibility != "" {
		facts = append(facts, fmt.Sprintf("Visibility: %sSM", tokens.Visibility))
	}
	if len(tokens.WeatherPhenomena) > 0 {
		facts = append(facts, "Weather: "+strings.Join(tokens.WeatherPhenomena, ", "))
	}
	for _, layer := range tokens.Clouds {
		facts = append(facts, fmt.Sprintf("Cloud layer: %s at %d ft", layer.Coverage, layer.BaseFt))
	}
	if tokens.VerticalVisibilityFt != nil {
		facts = append(facts, fmt.Sprintf("Sky obscured, vertical visibility %d ft", *tokens.VerticalVisibilityFt))
	}
	if tokens.TemperatureC != nil && tokens.DewpointC != nil {
		facts = append(facts, fmt.Sprintf("Temperature: %d C, dewpoint %d C", *tokens.TemperatureC, *tokens.DewpointC))
	}
	if tokens.Altimeter != "" {
		facts = append(facts, "Altimeter: "+tokens.Altimeter)
	}

	location := airport.Name
	if airport.City != "" && airport.City != "Unknown" {
		location += ", " + airport.City
	}

	return fmt.Sprintf(`You are an experienced flight dispatcher briefing pilots.
Write a 2-3 sentence plain-English narrative of current conditions at %s (%s).
Overall severity classification: %s.

Decoded observations:
- %s

Rules:
- Repeat every numeric value above exactly as written. Do not round, convert, or omit any number.
- Do not invent values that are not listed.
- No markdown, no bullet points, prose only.`,
		location, airport.ICAO, severity, strings.Join(facts, "\n- "))
}
