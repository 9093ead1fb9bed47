package review

import (
	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/mistakes"
)

// Request is the input for one review.
type Request struct {
	SnapshotID string
	Language   lang.Language
	Code       string
	Difficulty string
	Topic      string
	Findings   []mistakes.Finding
}

// FromSnapshot builds a review request for code and the snapshot it
// produced. It returns nil for the empty snapshot.
func FromSnapshot(code string, s *analysis.Snapshot) *Request {
	if s.Empty() {
		return nil
	}
	req := &Request{
		SnapshotID: s.ID,
		Language:   s.Language,
		Code:       code,
	}
	if s.Difficulty != nil {
		req.Difficulty = string(s.Difficulty.Category)
	}
	if s.Topics != nil && s.Topics.Primary != nil {
		req.Topic = s.Topics.Primary.Name
	}
	if s.Mistakes != nil {
		req.Findings = s.Mistakes.Findings
	}
	return req
}

// Explanation expands on one finding.
type Explanation struct {
	Rule        string `json:"rule" yaml:"rule"`
	Line        int    `json:"line" yaml:"line"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// Review is the mentor's reply.
type Review struct {
	SnapshotID   string        `json:"snapshot_id,omitempty" yaml:"snapshot_id,omitempty"`
	Summary      string        `json:"summary" yaml:"summary"`
	Explanations []Explanation `json:"explanations" yaml:"explanations"`
	NextStep     string        `json:"next_step" yaml:"next_step"`
	Model        string        `json:"model,omitempty" yaml:"model,omitempty"`
}
