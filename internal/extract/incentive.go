package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/avolokh/lazaret/internal/model"
)

// IncentiveExtractor detects unrealistic-incentive patterns: monetary
// promises, free-money offers, guaranteed returns, work-from-home schemes
// and miracle-result claims in the text, plus shortener/disposable-TLD/
// earn-money heuristics on the URLs. Trigger scores are binary: a
// recognized scam pattern is treated as a hard signal, not a graded one.
type IncentiveExtractor struct {
	cfg      model.IncentiveConfig
	urls     model.URLHeuristics
	patterns []*regexp.Regexp
	domains  []*regexp.Regexp
}

// NewIncentiveExtractor compiles the configured pattern classes. Patterns
// that fail to compile are skipped rather than failing construction.
func NewIncentiveExtractor(cfg model.IncentiveConfig, urls model.URLHeuristics) *IncentiveExtractor {
	e := &IncentiveExtractor{cfg: cfg, urls: urls}
	for _, p := range cfg.TextPatterns {
		if re, err := regexp.Compile(p); err == nil {
			e.patterns = append(e.patterns, re)
		}
	}
	for _, p := range cfg.DomainPatterns {
		if re, err := regexp.Compile(p); err == nil {
			e.domains = append(e.domains, re)
		}
	}
	return e
}

// Name returns the signal name.
func (e *IncentiveExtractor) Name() model.SignalName {
	return model.SignalIncentive
}

// Extract scores the claim text and URL list.
func (e *IncentiveExtractor) Extract(_ context.Context, claim model.Claim) model.SignalResult {
	result := model.SignalResult{Name: model.SignalIncentive}

	patternScore := e.cfg.NoPatternScore
	for _, re := range e.patterns {
		if m := re.FindString(claim.Text); m != "" {
			patternScore = e.cfg.PatternScore
			result.Evidence = append(result.Evidence, "pattern:"+m)
		}
	}

	urlScore := 0.0
	for _, raw := range claim.URLs {
		if reason := e.suspiciousURL(raw); reason != "" {
			urlScore = e.cfg.URLScore
			result.Evidence = append(result.Evidence, "url:"+reason)
		}
	}

	result.Score = clamp01(max(patternScore, urlScore))
	if len(result.Evidence) > 0 {
		result.Confidence = e.cfg.MatchConfidence
	} else {
		result.Confidence = e.cfg.BaseConfidence
	}
	return result
}

// suspiciousURL returns a non-empty reason when the URL matches a
// shortener, a disposable TLD or an earn-money domain pattern.
func (e *IncentiveExtractor) suspiciousURL(raw string) string {
	host := hostOf(raw)
	if host == "" {
		return ""
	}

	for _, s := range e.urls.Shorteners {
		if host == s || strings.HasSuffix(host, "."+s) {
			return "shortener:" + host
		}
	}
	for _, tld := range e.urls.SuspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			return "tld:" + host
		}
	}
	for _, re := range e.domains {
		if re.MatchString(host) {
			return "domain:" + host
		}
	}
	return ""
}

// hostOf extracts the lowercase host from a URL, tolerating missing
// schemes in user-submitted links.
func hostOf(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return host
}
