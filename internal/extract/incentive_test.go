package extract

import (
	"context"
	"testing"

	"github.com/avolokh/lazaret/internal/model"
)

func TestIncentiveExtractor_MonetaryPromise(t *testing.T) {
	cfg := model.DefaultConfig()
	e := NewIncentiveExtractor(cfg.Incentive, cfg.URL)

	tests := []struct {
		name string
		text string
	}{
		{"rupee amount", "Earn ₹50,000 every week from your phone"},
		{"dollar amount", "Make $5,000 in your first month"},
		{"free money", "Get your free bitcoin today"},
		{"guaranteed returns", "Guaranteed returns on every investment"},
		{"work from home", "Work from home and earn a full salary"},
		{"miracle cure", "This miracle cure works overnight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Extract(context.Background(), model.Claim{Text: tt.text})
			if result.Score != cfg.Incentive.PatternScore {
				t.Errorf("expected pattern score %.2f, got %.2f", cfg.Incentive.PatternScore, result.Score)
			}
			if result.Confidence != cfg.Incentive.MatchConfidence {
				t.Errorf("expected match confidence %.2f, got %.2f", cfg.Incentive.MatchConfidence, result.Confidence)
			}
			if len(result.Evidence) == 0 {
				t.Error("expected pattern evidence")
			}
		})
	}
}

func TestIncentiveExtractor_NoPattern(t *testing.T) {
	cfg := model.DefaultConfig()
	e := NewIncentiveExtractor(cfg.Incentive, cfg.URL)

	result := e.Extract(context.Background(), model.Claim{Text: "The museum opens at nine on weekdays."})

	if result.Score != cfg.Incentive.NoPatternScore {
		t.Errorf("expected no-pattern score %.2f, got %.2f", cfg.Incentive.NoPatternScore, result.Score)
	}
	if result.Confidence != cfg.Incentive.BaseConfidence {
		t.Errorf("expected base confidence %.2f, got %.2f", cfg.Incentive.BaseConfidence, result.Confidence)
	}
}

func TestIncentiveExtractor_SuspiciousURLs(t *testing.T) {
	cfg := model.DefaultConfig()
	e := NewIncentiveExtractor(cfg.Incentive, cfg.URL)

	tests := []struct {
		name string
		url  string
	}{
		{"shortener", "https://bit.ly/3xYz"},
		{"shortener subdomain", "https://go.bit.ly/abc"},
		{"suspicious tld", "https://prize-claim.tk/win"},
		{"earn-money domain", "https://earn-money.example.com"},
		{"schemeless", "quick-cash.net/offer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := model.Claim{Text: "Check this out please", URLs: []string{tt.url}}
			result := e.Extract(context.Background(), claim)
			if result.Score != cfg.Incentive.URLScore {
				t.Errorf("expected URL score %.2f for %s, got %.2f", cfg.Incentive.URLScore, tt.url, result.Score)
			}
		})
	}
}

func TestIncentiveExtractor_PatternDominatesURL(t *testing.T) {
	cfg := model.DefaultConfig()
	e := NewIncentiveExtractor(cfg.Incentive, cfg.URL)

	claim := model.Claim{
		Text: "Earn ₹10,000 daily, guaranteed returns!",
		URLs: []string{"https://bit.ly/get-rich"},
	}
	result := e.Extract(context.Background(), claim)

	// Score is the max of pattern (0.8) and URL (0.7) scores.
	if result.Score != cfg.Incentive.PatternScore {
		t.Errorf("expected max score %.2f, got %.2f", cfg.Incentive.PatternScore, result.Score)
	}
	if len(result.Evidence) < 2 {
		t.Errorf("expected evidence from both text and URL, got %v", result.Evidence)
	}
}

func TestIncentiveExtractor_BadPatternSkipped(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Incentive.TextPatterns = append(cfg.Incentive.TextPatterns, `(unclosed`)
	e := NewIncentiveExtractor(cfg.Incentive, cfg.URL)

	// Construction must not fail and valid patterns still match.
	result := e.Extract(context.Background(), model.Claim{Text: "free money for everyone"})
	if result.Score != cfg.Incentive.PatternScore {
		t.Errorf("expected remaining patterns to work, got score %.2f", result.Score)
	}
}
