package risk

import (
	"net/url"
	"strings"

	"github.com/avolokh/lazaret/internal/model"
)

// CredibilityClassifier maps an evidence source (domain or bare name) to a
// credibility tier. Tiers are a fixed lookup: government and official
// domains score highest, unknown domains lowest.
type CredibilityClassifier struct {
	cfg            model.CredibilityConfig
	officialMap    map[string]bool
	establishedMap map[string]bool
}

// NewCredibilityClassifier builds the classifier from configuration.
func NewCredibilityClassifier(cfg model.CredibilityConfig) *CredibilityClassifier {
	c := &CredibilityClassifier{
		cfg:            cfg,
		officialMap:    make(map[string]bool, len(cfg.OfficialDomains)),
		establishedMap: make(map[string]bool, len(cfg.EstablishedDomains)),
	}
	for _, d := range cfg.OfficialDomains {
		c.officialMap[d] = true
	}
	for _, d := range cfg.EstablishedDomains {
		c.establishedMap[d] = true
	}
	return c
}

// Classify returns the tier for a source string.
func (c *CredibilityClassifier) Classify(source string) model.CredibilityTier {
	host := normalizeHost(source)
	if host == "" {
		return model.TierUnknown
	}

	// Explicit per-host overrides win.
	if c.cfg.DomainMap != nil {
		if tier, ok := c.cfg.DomainMap[host]; ok {
			return parseTierString(tier)
		}
	}

	if matchesDomain(host, c.officialMap) {
		return model.TierOfficial
	}
	if matchesDomain(host, c.establishedMap) {
		return model.TierEstablished
	}

	// Government and academic TLDs are official even when unlisted.
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.HasSuffix(host, ".mil") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierOfficial
	}

	// A plain registrable domain we know nothing about.
	if strings.Contains(host, ".") {
		return model.TierCommunity
	}
	return model.TierUnknown
}

// Weight returns the reliability weight for a source's tier.
func (c *CredibilityClassifier) Weight(source string) float64 {
	tier := c.Classify(source)
	if w, ok := c.cfg.TierWeights[tier.String()]; ok {
		return w
	}
	return 0.2
}

func matchesDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for d := range domains {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// normalizeHost lowers the source and strips scheme, port and path when the
// source is a URL rather than a bare domain.
func normalizeHost(source string) string {
	s := strings.ToLower(strings.TrimSpace(source))
	if s == "" {
		return ""
	}
	if strings.Contains(s, "://") {
		if parsed, err := url.Parse(s); err == nil && parsed.Hostname() != "" {
			return parsed.Hostname()
		}
	}
	if idx := strings.IndexAny(s, "/:"); idx > 0 {
		s = s[:idx]
	}
	return s
}

func parseTierString(tier string) model.CredibilityTier {
	switch strings.ToLower(tier) {
	case "official", "1":
		return model.TierOfficial
	case "established", "2":
		return model.TierEstablished
	case "community", "3":
		return model.TierCommunity
	default:
		return model.TierUnknown
	}
}
