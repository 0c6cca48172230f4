package scorer

import (
	"strings"
	"testing"
)

func TestParseScores_CleanJSON(t *testing.T) {
	raw := `{"urgency": 0.9, "fear": 0.3, "exclusivity": 0.1, "miracle_benefit": 0.0, "authority_pressure": 0.5}`

	values, err := ParseScores(raw, ManipulationTactics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[AttrUrgency] != 0.9 {
		t.Errorf("expected urgency 0.9, got %.2f", values[AttrUrgency])
	}
	if values[AttrAuthorityPressure] != 0.5 {
		t.Errorf("expected authority_pressure 0.5, got %.2f", values[AttrAuthorityPressure])
	}
}

func TestParseScores_ProseAroundJSON(t *testing.T) {
	raw := "Here are the scores you asked for:\n{\"ai_generated\": 0.75}\nLet me know if you need anything else."

	values, err := ParseScores(raw, []Attribute{AttrAIGenerated})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[AttrAIGenerated] != 0.75 {
		t.Errorf("expected 0.75, got %.2f", values[AttrAIGenerated])
	}
}

func TestParseScores_ValuesClamped(t *testing.T) {
	raw := `{"urgency": 1.7, "fear": -0.4, "exclusivity": 0.5, "miracle_benefit": 0.5, "authority_pressure": 0.5}`

	values, err := ParseScores(raw, ManipulationTactics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[AttrUrgency] != 1.0 {
		t.Errorf("expected urgency clamped to 1.0, got %.2f", values[AttrUrgency])
	}
	if values[AttrFear] != 0.0 {
		t.Errorf("expected fear clamped to 0.0, got %.2f", values[AttrFear])
	}
}

func TestParseScores_MissingAttribute(t *testing.T) {
	raw := `{"urgency": 0.9}`

	_, err := ParseScores(raw, ManipulationTactics)
	if err == nil {
		t.Fatal("expected error for missing attributes")
	}
	if !strings.Contains(err.Error(), "missing attribute") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestParseScores_NoJSON(t *testing.T) {
	_, err := ParseScores("I cannot rate this content.", []Attribute{AttrAIGenerated})
	if err == nil {
		t.Fatal("expected error when no JSON object is present")
	}
}

func TestParseScores_CaseInsensitiveKeys(t *testing.T) {
	raw := `{"AI_Generated": 0.6}`

	values, err := ParseScores(raw, []Attribute{AttrAIGenerated})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[AttrAIGenerated] != 0.6 {
		t.Errorf("expected 0.6, got %.2f", values[AttrAIGenerated])
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("some claim text", []Attribute{AttrUrgency, AttrFear})

	if !strings.Contains(prompt, "urgency") || !strings.Contains(prompt, "fear") {
		t.Error("prompt must list every requested attribute")
	}
	if !strings.Contains(prompt, "some claim text") {
		t.Error("prompt must embed the content")
	}
	if !strings.Contains(prompt, "ONLY a JSON object") {
		t.Error("prompt must demand bare JSON output")
	}
}
