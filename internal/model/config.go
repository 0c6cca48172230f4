package model

// Config carries every tunable of the engine. The heuristic constants are
// deliberately configuration rather than code: there is no ground truth to
// re-derive them from, so they stay explicit, documented and test-covered.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Scorer      ScorerConfig      `yaml:"scorer" mapstructure:"scorer"`
	URL         URLHeuristics     `yaml:"url" mapstructure:"url"`
	Emotional   EmotionalConfig   `yaml:"emotional" mapstructure:"emotional"`
	Incentive   IncentiveConfig   `yaml:"incentive" mapstructure:"incentive"`
	Deception   DeceptionConfig   `yaml:"deception" mapstructure:"deception"`
	Synthetic   SyntheticConfig   `yaml:"synthetic" mapstructure:"synthetic"`
	Weights     WeightConfig      `yaml:"weights" mapstructure:"weights"`
	Alert       AlertConfig       `yaml:"alert" mapstructure:"alert"`
	Risk        RiskConfig        `yaml:"risk" mapstructure:"risk"`
	Confidence  ConfidenceConfig  `yaml:"confidence" mapstructure:"confidence"`
	Router      RouterConfig      `yaml:"router" mapstructure:"router"`
	Credibility CredibilityConfig `yaml:"credibility" mapstructure:"credibility"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// ScorerConfig configures the opaque attribute scorer client.
type ScorerConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds; scorer calls must fail fast
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Response caching (injected, TTL-evicted; never an ad hoc map).
	CacheTTL     int `yaml:"cache_ttl" mapstructure:"cache_ttl"`         // seconds, 0 disables
	CacheCleanup int `yaml:"cache_cleanup" mapstructure:"cache_cleanup"` // seconds

	// Client-side rate limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// URLHeuristics are shared by the incentive and deception extractors.
type URLHeuristics struct {
	Shorteners     []string `yaml:"shorteners" mapstructure:"shorteners"`
	SuspiciousTLDs []string `yaml:"suspicious_tlds" mapstructure:"suspicious_tlds"`
}

// EmotionalConfig tunes the emotional-manipulation extractor: lexical
// urgency/fear triggers plus a five-tactic scorer call.
type EmotionalConfig struct {
	// Triggers maps a language tag to its urgency/fear keyword list.
	Triggers map[string][]string `yaml:"triggers" mapstructure:"triggers"`

	LexicalConfidence float64 `yaml:"lexical_confidence" mapstructure:"lexical_confidence"` // 0.8 when a trigger matched
	BaseConfidence    float64 `yaml:"base_confidence" mapstructure:"base_confidence"`       // 0.4 otherwise
	NeutralScore      float64 `yaml:"neutral_score" mapstructure:"neutral_score"`           // 0.5 on scorer failure
	FailureConfidence float64 `yaml:"failure_confidence" mapstructure:"failure_confidence"` // 0.2 on scorer failure
}

// IncentiveConfig tunes the unrealistic-incentive extractor. Trigger scores
// are binary by design: presence of a recognized scam pattern is a hard
// signal, not a graded one.
type IncentiveConfig struct {
	TextPatterns   []string `yaml:"text_patterns" mapstructure:"text_patterns"`     // regex classes
	DomainPatterns []string `yaml:"domain_patterns" mapstructure:"domain_patterns"` // regex against URL host

	PatternScore   float64 `yaml:"pattern_score" mapstructure:"pattern_score"`       // 0.8 if any text pattern hit
	NoPatternScore float64 `yaml:"no_pattern_score" mapstructure:"no_pattern_score"` // 0.1 otherwise
	URLScore       float64 `yaml:"url_score" mapstructure:"url_score"`               // 0.7 if any URL hit

	MatchConfidence float64 `yaml:"match_confidence" mapstructure:"match_confidence"` // 0.8
	BaseConfidence  float64 `yaml:"base_confidence" mapstructure:"base_confidence"`   // 0.3
}

// DeceptionConfig tunes the technical-deception extractor.
type DeceptionConfig struct {
	LinkMaskingPhrases []string `yaml:"link_masking_phrases" mapstructure:"link_masking_phrases"`
	OriginPhrases      []string `yaml:"origin_phrases" mapstructure:"origin_phrases"` // official/government/bank claims
	NoticePhrases      []string `yaml:"notice_phrases" mapstructure:"notice_phrases"` // alert/notice language

	// Brands maps a brand substring to its canonical domain for the
	// typosquat check (substring present, registrable domain differs).
	Brands map[string]string `yaml:"brands" mapstructure:"brands"`

	LinkMaskingWeight   float64 `yaml:"link_masking_weight" mapstructure:"link_masking_weight"`     // 0.3 per hit
	ImpersonationWeight float64 `yaml:"impersonation_weight" mapstructure:"impersonation_weight"`   // 0.4 per hit
	ShortenerWeight     float64 `yaml:"shortener_weight" mapstructure:"shortener_weight"`           // 0.3 per URL
	SuspiciousTLDWeight float64 `yaml:"suspicious_tld_weight" mapstructure:"suspicious_tld_weight"` // 0.4 per URL
	TyposquatWeight     float64 `yaml:"typosquat_weight" mapstructure:"typosquat_weight"`           // 0.5 per URL

	HighConfidence      float64 `yaml:"high_confidence" mapstructure:"high_confidence"`           // 0.8 when score > threshold
	BaseConfidence      float64 `yaml:"base_confidence" mapstructure:"base_confidence"`           // 0.4
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"` // 0.3
}

// SyntheticConfig tunes the synthetic-media extractor.
type SyntheticConfig struct {
	DisclosurePhrases []string `yaml:"disclosure_phrases" mapstructure:"disclosure_phrases"`

	PerDisclosureScore   float64 `yaml:"per_disclosure_score" mapstructure:"per_disclosure_score"`     // 0.3 per phrase match
	FallbackProbability  float64 `yaml:"fallback_probability" mapstructure:"fallback_probability"`     // 0.2 when the scorer fails
	DisclosureConfidence float64 `yaml:"disclosure_confidence" mapstructure:"disclosure_confidence"`   // 0.7 when a phrase matched
	BaseConfidence       float64 `yaml:"base_confidence" mapstructure:"base_confidence"`               // 0.4
}

// WeightConfig holds the fixed aggregation weights. Emotional manipulation
// is weighted highest: it is the most lexically reliable family and
// co-occurs with the other tactics.
type WeightConfig struct {
	Emotional float64 `yaml:"emotional" mapstructure:"emotional"` // 0.30
	Incentive float64 `yaml:"incentive" mapstructure:"incentive"` // 0.25
	Deception float64 `yaml:"deception" mapstructure:"deception"` // 0.25
	Synthetic float64 `yaml:"synthetic" mapstructure:"synthetic"` // 0.20
}

// AlertConfig holds the high-manipulation co-occurrence rules.
type AlertConfig struct {
	EmotionalMin float64 `yaml:"emotional_min" mapstructure:"emotional_min"` // 0.6 (with synthetic)
	SyntheticMin float64 `yaml:"synthetic_min" mapstructure:"synthetic_min"` // 0.5
	IncentiveMin float64 `yaml:"incentive_min" mapstructure:"incentive_min"` // 0.7 (with deception)
	DeceptionMin float64 `yaml:"deception_min" mapstructure:"deception_min"` // 0.5

	// Breadth rule: many moderate indicators are as concerning as one
	// strong one.
	BreadthMin   float64 `yaml:"breadth_min" mapstructure:"breadth_min"`     // 0.5
	BreadthCount int     `yaml:"breadth_count" mapstructure:"breadth_count"` // 3 of 4
}

// RiskConfig holds the risk-level ladder thresholds.
type RiskConfig struct {
	HighScore        float64 `yaml:"high_score" mapstructure:"high_score"`               // 0.7
	HighConfidence   float64 `yaml:"high_confidence" mapstructure:"high_confidence"`     // mean sub-confidence 0.6
	MediumScore      float64 `yaml:"medium_score" mapstructure:"medium_score"`           // 0.5
	MediumConfidence float64 `yaml:"medium_confidence" mapstructure:"medium_confidence"` // 0.5
	LowScore         float64 `yaml:"low_score" mapstructure:"low_score"`                 // 0.3
}

// ConfidenceConfig holds the confidence-calculator weights and defaults.
type ConfidenceConfig struct {
	CoherenceWeight   float64 `yaml:"coherence_weight" mapstructure:"coherence_weight"`     // 0.35
	ReliabilityWeight float64 `yaml:"reliability_weight" mapstructure:"reliability_weight"` // 0.25
	PrecedenceWeight  float64 `yaml:"precedence_weight" mapstructure:"precedence_weight"`   // 0.20
	ClarityWeight     float64 `yaml:"clarity_weight" mapstructure:"clarity_weight"`         // 0.12
	RecencyWeight     float64 `yaml:"recency_weight" mapstructure:"recency_weight"`         // 0.08

	// Mixed evidence is penalized, not just scored by majority.
	MixedEvidenceThreshold float64 `yaml:"mixed_evidence_threshold" mapstructure:"mixed_evidence_threshold"` // 0.7
	MixedEvidencePenalty   float64 `yaml:"mixed_evidence_penalty" mapstructure:"mixed_evidence_penalty"`     // 0.5 multiplier

	NoEvidenceScore float64 `yaml:"no_evidence_score" mapstructure:"no_evidence_score"` // 0.1

	NoveltyScore   float64 `yaml:"novelty_score" mapstructure:"novelty_score"`     // 0.3 with no precedent
	PrecedenceBase float64 `yaml:"precedence_base" mapstructure:"precedence_base"` // 0.5
	PrecedenceSpan float64 `yaml:"precedence_span" mapstructure:"precedence_span"` // 0.45 * verdict consistency
	PrecedenceCap  float64 `yaml:"precedence_cap" mapstructure:"precedence_cap"`   // 0.95

	DefaultClarity float64 `yaml:"default_clarity" mapstructure:"default_clarity"` // 0.5 when no hint supplier
	DefaultRecency float64 `yaml:"default_recency" mapstructure:"default_recency"` // 0.5
}

// RouterConfig holds the quarantine triggers.
type RouterConfig struct {
	MinConfidence      float64 `yaml:"min_confidence" mapstructure:"min_confidence"`             // 0.65
	MaxConflictRatio   float64 `yaml:"max_conflict_ratio" mapstructure:"max_conflict_ratio"`     // 0.4
	MaxManipulation    float64 `yaml:"max_manipulation" mapstructure:"max_manipulation"`         // 0.7
	NovelMinConfidence float64 `yaml:"novel_min_confidence" mapstructure:"novel_min_confidence"` // 0.8
}

// CredibilityConfig configures the source credibility classifier.
type CredibilityConfig struct {
	OfficialDomains    []string `yaml:"official_domains" mapstructure:"official_domains"`
	EstablishedDomains []string `yaml:"established_domains" mapstructure:"established_domains"`

	// DomainMap overrides classification for specific hosts
	// (value: official, established, community, unknown).
	DomainMap map[string]string `yaml:"domain_map" mapstructure:"domain_map"`

	// TierWeights maps tier name to its reliability weight.
	TierWeights map[string]float64 `yaml:"tier_weights" mapstructure:"tier_weights"`
}

// StoreConfig configures quarantine persistence.
type StoreConfig struct {
	// Backend: "memory" or "sqlite".
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" mapstructure:"path"` // sqlite file path
}

// ConcurrencyConfig sizes the batch worker pool. The four extractors of a
// single analysis always fan out; this only bounds cross-claim parallelism.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// DefaultConfig returns the documented defaults. All numeric constants are
// the heuristic values the detection rules were shipped with.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Scorer: ScorerConfig{
			Provider:          "", // disabled unless configured
			Timeout:           10,
			MaxTokens:         256,
			CacheTTL:          300,
			CacheCleanup:      600,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		URL: URLHeuristics{
			Shorteners: []string{
				"bit.ly", "tinyurl.com", "t.co", "goo.gl", "is.gd",
				"cutt.ly", "rb.gy", "ow.ly", "buff.ly", "rebrand.ly",
			},
			SuspiciousTLDs: []string{
				".tk", ".ml", ".ga", ".cf", ".gq", ".top", ".click",
				".loan", ".work", ".xyz",
			},
		},
		Emotional: EmotionalConfig{
			Triggers: map[string][]string{
				"en": {
					"urgent", "hurry", "act now", "last chance", "limited time",
					"don't miss", "before it's too late", "warning", "danger",
					"shocking", "exposed", "they don't want you to know",
					"secret", "breaking",
				},
				"hi": {
					"jaldi karo", "abhi karein", "aakhri mauka", "savdhan",
					"khatra", "chaukane wala",
				},
			},
			LexicalConfidence: 0.8,
			BaseConfidence:    0.4,
			NeutralScore:      0.5,
			FailureConfidence: 0.2,
		},
		Incentive: IncentiveConfig{
			TextPatterns: []string{
				// monetary promises
				`(?i)(earn|make|win|get)\s+(₹|rs\.?|\$|€|£)\s*[\d,]+`,
				// free-money offers
				`(?i)free\s+(money|cash|gift|recharge|bitcoin|crypto)`,
				// guaranteed returns
				`(?i)(guaranteed|assured|risk[- ]?free)\s+(returns?|profits?|income)`,
				// work-from-home schemes
				`(?i)work\s+from\s+home.{0,40}(earn|income|salary|\$|₹)`,
				// miracle results
				`(?i)(miracle|instant|overnight)\s+(cure|results?|weight\s+loss|wealth)`,
			},
			DomainPatterns: []string{
				`(?i)(earn|make|get|win)[-.]?(money|cash|crypto)`,
				`(?i)(quick|fast|easy|instant)[-.]?(cash|money|profit|income)`,
			},
			PatternScore:    0.8,
			NoPatternScore:  0.1,
			URLScore:        0.7,
			MatchConfidence: 0.8,
			BaseConfidence:  0.3,
		},
		Deception: DeceptionConfig{
			LinkMaskingPhrases: []string{
				"click here", "click the link", "click below", "tap here",
				"open this link", "shortened link", "bit.ly", "tinyurl",
			},
			OriginPhrases: []string{
				"official", "government", "bank", "verified account",
				"customer support", "tax department", "ministry",
			},
			NoticePhrases: []string{
				"notice", "alert", "warning", "final reminder",
				"account suspended", "immediate action", "verify your account",
			},
			Brands: map[string]string{
				"paypal":    "paypal.com",
				"amazon":    "amazon.com",
				"google":    "google.com",
				"facebook":  "facebook.com",
				"whatsapp":  "whatsapp.com",
				"microsoft": "microsoft.com",
				"apple":     "apple.com",
				"netflix":   "netflix.com",
			},
			LinkMaskingWeight:   0.3,
			ImpersonationWeight: 0.4,
			ShortenerWeight:     0.3,
			SuspiciousTLDWeight: 0.4,
			TyposquatWeight:     0.5,
			HighConfidence:      0.8,
			BaseConfidence:      0.4,
			ConfidenceThreshold: 0.3,
		},
		Synthetic: SyntheticConfig{
			DisclosurePhrases: []string{
				"generated by ai", "ai-generated", "ai generated",
				"created with chatgpt", "written by an ai",
				"made with midjourney", "produced by artificial intelligence",
				"this is a deepfake",
			},
			PerDisclosureScore:   0.3,
			FallbackProbability:  0.2,
			DisclosureConfidence: 0.7,
			BaseConfidence:       0.4,
		},
		Weights: WeightConfig{
			Emotional: 0.30,
			Incentive: 0.25,
			Deception: 0.25,
			Synthetic: 0.20,
		},
		Alert: AlertConfig{
			EmotionalMin: 0.6,
			SyntheticMin: 0.5,
			IncentiveMin: 0.7,
			DeceptionMin: 0.5,
			BreadthMin:   0.5,
			BreadthCount: 3,
		},
		Risk: RiskConfig{
			HighScore:        0.7,
			HighConfidence:   0.6,
			MediumScore:      0.5,
			MediumConfidence: 0.5,
			LowScore:         0.3,
		},
		Confidence: ConfidenceConfig{
			CoherenceWeight:        0.35,
			ReliabilityWeight:      0.25,
			PrecedenceWeight:       0.20,
			ClarityWeight:          0.12,
			RecencyWeight:          0.08,
			MixedEvidenceThreshold: 0.7,
			MixedEvidencePenalty:   0.5,
			NoEvidenceScore:        0.1,
			NoveltyScore:           0.3,
			PrecedenceBase:         0.5,
			PrecedenceSpan:         0.45,
			PrecedenceCap:          0.95,
			DefaultClarity:         0.5,
			DefaultRecency:         0.5,
		},
		Router: RouterConfig{
			MinConfidence:      0.65,
			MaxConflictRatio:   0.4,
			MaxManipulation:    0.7,
			NovelMinConfidence: 0.8,
		},
		Credibility: CredibilityConfig{
			OfficialDomains: []string{
				"gov", "gov.uk", "gov.in", "europa.eu", "who.int", "un.org",
				"nic.in", "rbi.org.in",
			},
			EstablishedDomains: []string{
				"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk",
				"nytimes.com", "theguardian.com", "thehindu.com",
				"wikipedia.org", "britannica.com", "nature.com",
			},
			TierWeights: map[string]float64{
				"official":    1.0,
				"established": 0.8,
				"community":   0.5,
				"unknown":     0.2,
			},
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "lazaret.db",
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 8,
		},
	}
}
