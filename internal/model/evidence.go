package model

// EvidenceStance classifies how an externally supplied evidence snippet
// relates to the claim.
type EvidenceStance string

const (
	StanceSupporting EvidenceStance = "supporting"
	StanceRefuting   EvidenceStance = "refuting"
	StanceContextual EvidenceStance = "contextual"
	StanceNeutral    EvidenceStance = "neutral"
)

// EvidenceItem is one snippet from the external evidence supplier. The
// engine only weights these; retrieval is not its concern.
type EvidenceItem struct {
	Stance    EvidenceStance `json:"stance"`
	Source    string         `json:"source"`              // domain or source name
	Relevance float64        `json:"relevance"`           // [0,1]
	Snippet   string         `json:"snippet,omitempty"`
}

// CredibilityTier classifies evidence sources. Government/official sources
// sit at the top, unknown or newly registered domains at the bottom.
type CredibilityTier int

const (
	TierUnknown     CredibilityTier = 0 // not classifiable
	TierOfficial    CredibilityTier = 1 // government, regulators, standards bodies
	TierEstablished CredibilityTier = 2 // major publishers, encyclopedias, wire services
	TierCommunity   CredibilityTier = 3 // blogs, forums, personal sites
)

func (t CredibilityTier) String() string {
	switch t {
	case TierOfficial:
		return "official"
	case TierEstablished:
		return "established"
	case TierCommunity:
		return "community"
	default:
		return "unknown"
	}
}

// Precedent is a semantically similar prior claim together with the verdict
// it received, supplied by the external precedent lookup.
type Precedent struct {
	ClaimID    string  `json:"claim_id,omitempty"`
	Text       string  `json:"text,omitempty"`
	Verdict    Verdict `json:"verdict"`
	Similarity float64 `json:"similarity,omitempty"` // [0,1]
}
