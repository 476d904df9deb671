package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/pkg/openai"
)

// narrativeSystemPrompt instructs the renderer to return the structured
// insight JSON. Lifestyle suggestions only, no medical advice.
const narrativeSystemPrompt = `You are Lisa, a knowledgeable and empathetic menopause health advisor. Based on the user's profile and recent symptom, mood, and lifestyle tracking data, respond with a single JSON object with exactly these fields:

{
  "patternHeadline": "one sentence connecting their symptoms, using the user's name once",
  "why": "one sentence explaining why this happens during menopause",
  "whatsWorking": "one sentence on something positive in their data, or null",
  "actionSteps": {
    "easy": "one small thing to try tonight",
    "medium": "one habit to try this week",
    "advanced": "one routine to build over time"
  },
  "doctorNote": "a two-sentence factual summary suitable to share with a healthcare provider",
  "trend": "improving" | "worsening" | "stable",
  "whyThisMatters": "one sentence on why this pattern is worth knowing"
}

RULES:
- Always give insights, even with just 1-2 logs.
- Action steps must be specific and concrete (exact temperatures, times, actions), not generic advice.
- Do not suggest anything from the user's "Already Tried" list.
- Distinguish a bad day (many symptoms on one date) from a pattern (the same symptom across dates).
- Never mention medications, supplements, treatments, or diagnoses. Lifestyle changes only.
- Warm, friendly tone. Respond with the JSON object and nothing else.`

// openAIRenderer renders narratives through the chat completions API.
type openAIRenderer struct {
	client *openai.Client
}

// NewOpenAIRenderer creates a NarrativeRenderer backed by the given
// chat client.
func NewOpenAIRenderer(client *openai.Client) NarrativeRenderer {
	return &openAIRenderer{client: client}
}

func (r *openAIRenderer) Render(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
	return r.client.ChatJSON(ctx, messages)
}

// staticRenderer produces no text, so the deterministic fallback
// narrative is used. Wired when no chat API key is configured.
type staticRenderer struct{}

// NewStaticRenderer creates a NarrativeRenderer that always yields the
// fallback narrative.
func NewStaticRenderer() NarrativeRenderer {
	return staticRenderer{}
}

func (staticRenderer) Render(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", nil
}

// parseNarrative decodes the renderer's response, synthesizing a
// fallback when the response is unparseable or missing required
// fields. Callers always receive a well-formed value.
func parseNarrative(raw string) models.NarrativeInsight {
	cleaned := strings.TrimSpace(raw)
	// Some models wrap JSON in a fenced block.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var insight models.NarrativeInsight
	if err := json.Unmarshal([]byte(cleaned), &insight); err != nil {
		return fallbackNarrative(raw)
	}
	if insight.PatternHeadline == "" || insight.Why == "" ||
		insight.ActionSteps.Easy == "" || insight.ActionSteps.Medium == "" || insight.ActionSteps.Advanced == "" {
		return fallbackNarrative(raw)
	}
	switch insight.Trend {
	case "improving", "worsening", "stable":
	default:
		insight.Trend = "stable"
	}
	if insight.DoctorNote == "" {
		insight.DoctorNote = "Symptom and mood tracking in progress. Can review with healthcare provider when ready."
	}
	return insight
}

// fallbackNarrative builds a minimal structure from free text: first
// line as the headline, truncated text as the rationale.
func fallbackNarrative(raw string) models.NarrativeInsight {
	text := strings.TrimSpace(raw)

	headline := "Lisa didn't have enough data yet to notice something specific."
	if idx := strings.IndexByte(text, '\n'); idx > 0 {
		headline = strings.TrimSpace(text[:idx])
	} else if text != "" {
		headline = text
	}

	why := "Keep logging your symptoms and mood so Lisa can share what she notices."
	if text != "" {
		why = text
		if len(why) > 200 {
			why = why[:200]
		}
	}

	return models.NarrativeInsight{
		PatternHeadline: headline,
		Why:             why,
		ActionSteps: models.ActionSteps{
			Easy:     "Keep tracking so Lisa can spot what helps.",
			Medium:   "Try one small change this week and see if it helps.",
			Advanced: "Build a consistent routine that supports your body.",
		},
		DoctorNote:     "Symptom and mood tracking in progress. Can review with healthcare provider when ready.",
		Trend:          "stable",
		WhyThisMatters: "When Lisa has a bit more data, she can point out things that might be useful to you and your healthcare team.",
	}
}

// formatProfile renders the onboarding answers for the prompt.
func formatProfile(profile *models.UserProfile) string {
	if profile == nil {
		return "No profile data available"
	}

	var parts []string
	if profile.Name != "" {
		parts = append(parts, fmt.Sprintf("- Name: %s", profile.Name))
	}
	if len(profile.TopProblems) > 0 {
		parts = append(parts, fmt.Sprintf("- Top Problems: %s", strings.Join(profile.TopProblems, ", ")))
	}
	if profile.Severity != "" {
		parts = append(parts, fmt.Sprintf("- Overall Severity: %s", profile.Severity))
	}
	if profile.Timing != "" {
		parts = append(parts, fmt.Sprintf("- Timing/Stage: %s", profile.Timing))
	}
	if len(profile.TriedOptions) > 0 {
		parts = append(parts, fmt.Sprintf("- Already Tried: %s", strings.Join(profile.TriedOptions, ", ")))
	}
	if profile.Goal != "" {
		parts = append(parts, fmt.Sprintf("- Goal: %s", profile.Goal))
	}
	if len(parts) == 0 {
		return "No profile data available"
	}
	return strings.Join(parts, "\n")
}

// formatLogs renders symptom logs for the prompt, one line per log.
func formatLogs(logs []models.SymptomLog) string {
	if len(logs) == 0 {
		return "None"
	}

	lines := make([]string, 0, len(logs))
	for _, log := range logs {
		line := fmt.Sprintf("%s: %s", log.SymptomName(), log.Severity.Label())
		if len(log.Triggers) > 0 {
			line += fmt.Sprintf(" (triggers: %s)", strings.Join(log.Triggers, ", "))
		}
		line += fmt.Sprintf(" on %s", log.LoggedAt.Format("Jan 2, 2006"))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// formatMoods renders daily moods for the prompt, one line per day.
func formatMoods(moods []models.MoodEntry) string {
	if len(moods) == 0 {
		return "None"
	}

	lines := make([]string, 0, len(moods))
	for _, m := range moods {
		date := m.Date
		if parsed, err := time.Parse("2006-01-02", m.Date); err == nil {
			date = parsed.Format("Jan 2, 2006")
		}
		lines = append(lines, fmt.Sprintf("%s on %s", m.Mood.Label(), date))
	}
	return strings.Join(lines, "\n")
}

// buildNarrativePrompt assembles the user prompt from the formatted
// sections plus the tracker summary block.
func buildNarrativePrompt(profile *models.UserProfile, logs []models.SymptomLog, moods []models.MoodEntry, trackerBlock string) string {
	var b strings.Builder
	b.WriteString("USER PROFILE:\n")
	b.WriteString(formatProfile(profile))
	b.WriteString("\n\nSYMPTOM LOGS (Last 7 days):\n")
	b.WriteString(formatLogs(logs))
	b.WriteString("\n\nDAILY MOODS (Last 7 days):\n")
	b.WriteString(formatMoods(moods))
	if trackerBlock != "" {
		b.WriteString("\n\n")
		b.WriteString(trackerBlock)
	}
	return b.String()
}
