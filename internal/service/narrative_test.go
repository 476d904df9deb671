package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

const validNarrativeJSON = `{
	"patternHeadline": "Sarah, your hot flashes cluster on poor-sleep days.",
	"why": "Estrogen dips make the body's thermostat more reactive when sleep is short.",
	"whatsWorking": "Your morning walks line up with milder days.",
	"actionSteps": {
		"easy": "Set your bedroom to 65F tonight.",
		"medium": "Keep a consistent 10pm wind-down this week.",
		"advanced": "Build a 3x weekly walk into your mornings."
	},
	"doctorNote": "Hot flashes logged 8 times in 7 days, mostly evenings. Severity trending down.",
	"trend": "improving",
	"whyThisMatters": "Connecting sleep and flashes gives you one lever to pull."
}`

func TestParseNarrative_Valid(t *testing.T) {
	got := parseNarrative(validNarrativeJSON)

	if got.PatternHeadline != "Sarah, your hot flashes cluster on poor-sleep days." {
		t.Errorf("unexpected headline: %q", got.PatternHeadline)
	}
	if got.Trend != "improving" {
		t.Errorf("expected improving trend, got %q", got.Trend)
	}
	if got.WhatsWorking == nil || !strings.Contains(*got.WhatsWorking, "morning walks") {
		t.Error("whatsWorking not carried through")
	}
	if got.ActionSteps.Easy == "" || got.ActionSteps.Medium == "" || got.ActionSteps.Advanced == "" {
		t.Error("action steps missing")
	}
}

func TestParseNarrative_FencedJSON(t *testing.T) {
	fenced := "```json\n" + validNarrativeJSON + "\n```"
	got := parseNarrative(fenced)
	if got.PatternHeadline != "Sarah, your hot flashes cluster on poor-sleep days." {
		t.Errorf("fenced JSON not parsed, got headline %q", got.PatternHeadline)
	}
}

func TestParseNarrative_UnparseableFallsBack(t *testing.T) {
	raw := "I noticed your symptoms are worse in the evening.\nTry cooling your bedroom."
	got := parseNarrative(raw)

	if got.PatternHeadline != "I noticed your symptoms are worse in the evening." {
		t.Errorf("expected first line as headline, got %q", got.PatternHeadline)
	}
	if !strings.HasPrefix(got.Why, "I noticed") {
		t.Errorf("expected raw text as rationale, got %q", got.Why)
	}
	if got.ActionSteps.Easy != "Keep tracking so Lisa can spot what helps." {
		t.Errorf("unexpected fallback easy step: %q", got.ActionSteps.Easy)
	}
	if got.Trend != "stable" {
		t.Errorf("fallback trend must be stable, got %q", got.Trend)
	}
	if got.DoctorNote == "" {
		t.Error("fallback must include a doctor note")
	}
}

func TestParseNarrative_EmptyInput(t *testing.T) {
	got := parseNarrative("")
	if got.PatternHeadline != "Lisa didn't have enough data yet to notice something specific." {
		t.Errorf("unexpected empty-input headline: %q", got.PatternHeadline)
	}
	if got.ActionSteps.Medium != "Try one small change this week and see if it helps." {
		t.Errorf("unexpected fallback medium step: %q", got.ActionSteps.Medium)
	}
}

func TestParseNarrative_MissingRequiredFieldFallsBack(t *testing.T) {
	// Valid JSON but no headline.
	raw := `{"why": "because", "actionSteps": {"easy": "a", "medium": "b", "advanced": "c"}}`
	got := parseNarrative(raw)
	if got.ActionSteps.Easy != "Keep tracking so Lisa can spot what helps." {
		t.Errorf("expected fallback action steps for missing headline, got %q", got.ActionSteps.Easy)
	}
}

func TestParseNarrative_UnknownTrendNormalized(t *testing.T) {
	raw := strings.Replace(validNarrativeJSON, `"improving"`, `"skyrocketing"`, 1)
	got := parseNarrative(raw)
	if got.Trend != "stable" {
		t.Errorf("unknown trend should normalize to stable, got %q", got.Trend)
	}
}

func TestParseNarrative_LongTextTruncatedInFallback(t *testing.T) {
	raw := strings.Repeat("a", 500)
	got := parseNarrative(raw)
	if len(got.Why) != 200 {
		t.Errorf("expected rationale truncated to 200 chars, got %d", len(got.Why))
	}
}

func TestBuildNarrativePrompt_Sections(t *testing.T) {
	profile := &models.UserProfile{
		Name:        "Sarah",
		TopProblems: []string{"Hot flashes", "Insomnia"},
		Goal:        "Sleep through the night",
	}
	logs := []models.SymptomLog{
		mkLog("Hot flashes", models.SeveritySevere, time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC), "Stress"),
	}
	moods := []models.MoodEntry{mkMood("2026-03-14", models.MoodOkay)}

	prompt := buildNarrativePrompt(profile, logs, moods, "=== USER TRACKER DATA (Last 30 days) ===")

	for _, section := range []string{
		"USER PROFILE:",
		"- Name: Sarah",
		"- Top Problems: Hot flashes, Insomnia",
		"- Goal: Sleep through the night",
		"SYMPTOM LOGS (Last 7 days):",
		"Hot flashes: Severe (triggers: Stress) on Mar 14, 2026",
		"DAILY MOODS (Last 7 days):",
		"Okay on Mar 14, 2026",
		"=== USER TRACKER DATA (Last 30 days) ===",
	} {
		if !strings.Contains(prompt, section) {
			t.Errorf("prompt missing %q", section)
		}
	}
}

func TestBuildNarrativePrompt_EmptyData(t *testing.T) {
	prompt := buildNarrativePrompt(nil, nil, nil, "")

	if !strings.Contains(prompt, "No profile data available") {
		t.Error("expected profile placeholder")
	}
	if strings.Count(prompt, "None") != 2 {
		t.Errorf("expected None for both logs and moods, got %d occurrences", strings.Count(prompt, "None"))
	}
}

func TestStaticRenderer_YieldsFallback(t *testing.T) {
	raw, err := NewStaticRenderer().Render(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("static renderer errored: %v", err)
	}
	narrative := parseNarrative(raw)
	if narrative.PatternHeadline != "Lisa didn't have enough data yet to notice something specific." {
		t.Errorf("unexpected static headline: %q", narrative.PatternHeadline)
	}
}
