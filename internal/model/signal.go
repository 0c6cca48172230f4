package model

// SignalName identifies one of the four manipulation signal extractors.
type SignalName string

const (
	SignalEmotional SignalName = "emotional_manipulation"
	SignalIncentive SignalName = "unrealistic_incentive"
	SignalDeception SignalName = "technical_deception"
	SignalSynthetic SignalName = "synthetic_media"
)

// SignalNames lists the extractors in aggregation order.
var SignalNames = []SignalName{SignalEmotional, SignalIncentive, SignalDeception, SignalSynthetic}

// SignalResult is the output of one extractor for one claim. Created once
// per invocation and immutable afterwards. When the extractor could not run,
// Error is set and Score/Confidence hold the documented neutral defaults --
// they are never omitted.
type SignalResult struct {
	Name       SignalName `json:"name"`
	Score      float64    `json:"score"`      // [0,1]
	Confidence float64    `json:"confidence"` // [0,1]
	Evidence   []string   `json:"evidence,omitempty"` // matched indicators
	Error      string     `json:"error,omitempty"`    // set when degraded to a neutral value
}

// Degraded reports whether this result was substituted with a neutral
// default because the extractor could not run.
func (r SignalResult) Degraded() bool {
	return r.Error != ""
}
