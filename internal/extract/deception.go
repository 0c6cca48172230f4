package extract

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/avolokh/lazaret/internal/model"
)

// DeceptionExtractor detects technical deception across three independent
// indicator families: link-masking phrases, impersonation phrasing
// (official/government/bank origin combined with notice/alert language) and
// URL-structure deception (shorteners, scam TLDs, typosquats). The families
// accumulate linearly and the combined score is capped at 1.0.
type DeceptionExtractor struct {
	cfg  model.DeceptionConfig
	urls model.URLHeuristics
}

// NewDeceptionExtractor creates the extractor.
func NewDeceptionExtractor(cfg model.DeceptionConfig, urls model.URLHeuristics) *DeceptionExtractor {
	return &DeceptionExtractor{cfg: cfg, urls: urls}
}

// Name returns the signal name.
func (e *DeceptionExtractor) Name() model.SignalName {
	return model.SignalDeception
}

// Extract scores the claim text and URL list.
func (e *DeceptionExtractor) Extract(_ context.Context, claim model.Claim) model.SignalResult {
	result := model.SignalResult{Name: model.SignalDeception}

	masking := matchPhrases(claim.Text, e.cfg.LinkMaskingPhrases)
	for _, hit := range masking {
		result.Evidence = append(result.Evidence, "masking:"+hit)
	}

	// Impersonation needs both an origin claim and notice/alert language;
	// either alone is unremarkable.
	origins := matchPhrases(claim.Text, e.cfg.OriginPhrases)
	notices := matchPhrases(claim.Text, e.cfg.NoticePhrases)
	impersonation := 0
	if len(notices) > 0 {
		impersonation = len(origins)
		for _, hit := range origins {
			result.Evidence = append(result.Evidence, "impersonation:"+hit)
		}
	}

	urlScore := 0.0
	for _, raw := range claim.URLs {
		hit, reason := e.urlDeception(raw)
		if hit > 0 {
			urlScore += hit
			result.Evidence = append(result.Evidence, "url:"+reason)
		}
	}
	urlScore = clamp01(urlScore)

	score := e.cfg.LinkMaskingWeight*float64(len(masking)) +
		e.cfg.ImpersonationWeight*float64(impersonation) +
		urlScore
	result.Score = clamp01(score)

	if result.Score > e.cfg.ConfidenceThreshold {
		result.Confidence = e.cfg.HighConfidence
	} else {
		result.Confidence = e.cfg.BaseConfidence
	}
	return result
}

// urlDeception returns the increment and reason for a single URL: shortener
// usage, a suspicious TLD, or a typosquat (brand substring present but the
// registrable domain is not the brand's canonical one).
func (e *DeceptionExtractor) urlDeception(raw string) (float64, string) {
	host := hostOf(raw)
	if host == "" {
		return 0, ""
	}

	for _, s := range e.urls.Shorteners {
		if host == s || strings.HasSuffix(host, "."+s) {
			return e.cfg.ShortenerWeight, "shortener:" + host
		}
	}
	for _, tld := range e.urls.SuspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			return e.cfg.SuspiciousTLDWeight, "tld:" + host
		}
	}
	if brand, canonical, ok := e.typosquat(host); ok {
		return e.cfg.TyposquatWeight, fmt.Sprintf("typosquat:%s~%s", host, canonical+" ("+brand+")")
	}
	return 0, ""
}

// typosquat reports whether the host contains a known brand name without
// resolving to that brand's registrable domain.
func (e *DeceptionExtractor) typosquat(host string) (brand, canonical string, ok bool) {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	for b, c := range e.cfg.Brands {
		if strings.Contains(host, b) && registrable != c {
			return b, c, true
		}
	}
	return "", "", false
}
