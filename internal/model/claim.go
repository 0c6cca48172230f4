package model

import "fmt"

// Claim text length bounds. Input outside these bounds is rejected before
// any extractor runs.
const (
	MinTextLen = 10
	MaxTextLen = 10000
	MaxURLs    = 5
	MaxImages  = 3
)

// Claim represents submitted content under evaluation. Claims are immutable
// once created; downstream entities reference them by ID.
type Claim struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`                  // 10-10,000 chars
	URLs       []string `json:"urls,omitempty"`        // up to 5
	Images     []string `json:"images,omitempty"`      // up to 3 references
	Language   string   `json:"language,omitempty"`    // BCP 47 tag, "en" when empty
	SourceType string   `json:"source_type,omitempty"` // e.g. "social", "messaging", "web"
}

// Lang returns the claim language tag, defaulting to English.
func (c Claim) Lang() string {
	if c.Language == "" {
		return "en"
	}
	return c.Language
}

// Validate checks structural bounds. This is the only hard-failure path of
// the analysis contract; everything past it degrades instead of failing.
func (c Claim) Validate() error {
	if n := len(c.Text); n < MinTextLen || n > MaxTextLen {
		return fmt.Errorf("%w: text length %d outside [%d,%d]", ErrInvalidClaim, n, MinTextLen, MaxTextLen)
	}
	if len(c.URLs) > MaxURLs {
		return fmt.Errorf("%w: %d urls exceeds %d", ErrInvalidClaim, len(c.URLs), MaxURLs)
	}
	if len(c.Images) > MaxImages {
		return fmt.Errorf("%w: %d images exceeds %d", ErrInvalidClaim, len(c.Images), MaxImages)
	}
	return nil
}
