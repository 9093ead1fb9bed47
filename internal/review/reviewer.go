package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/dsamentor/internal/llm"
)

// ReviewerConfig holds generation settings.
type ReviewerConfig struct {
	MaxTokens   int
	Temperature float64

	// MaxCodeBytes truncates the code sent in the prompt.
	MaxCodeBytes int
}

// DefaultReviewerConfig returns the defaults.
func DefaultReviewerConfig() ReviewerConfig {
	return ReviewerConfig{
		MaxTokens:    1024,
		Temperature:  0.4,
		MaxCodeBytes: 8000,
	}
}

// Reviewer asks the model for a review of one request.
type Reviewer struct {
	provider llm.Provider
	cfg      ReviewerConfig
}

// NewReviewer creates a reviewer backed by provider.
func NewReviewer(provider llm.Provider, cfg ReviewerConfig) *Reviewer {
	return &Reviewer{provider: provider, cfg: cfg}
}

// Review runs one synchronous review.
func (r *Reviewer) Review(ctx context.Context, req *Request) (*Review, error) {
	userMsg, err := buildReviewMessage(req, r.cfg.MaxCodeBytes)
	if err != nil {
		return nil, fmt.Errorf("build review prompt: %w", err)
	}

	llmReq := llm.Prompt(reviewSystemPrompt, userMsg, Schema, r.cfg.MaxTokens)
	llmReq.Temperature = r.cfg.Temperature

	resp, err := r.provider.Generate(llm.WithPurpose(ctx, Purpose), llmReq)
	if err != nil {
		return nil, fmt.Errorf("mentor review failed: %w", err)
	}

	var out Review
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse review response: %w", err)
	}
	out.SnapshotID = req.SnapshotID
	out.Model = resp.Model
	out.Explanations = known(out.Explanations, req)
	return &out, nil
}

// known drops explanations for rules that were not in the request.
func known(explanations []Explanation, req *Request) []Explanation {
	rules := make(map[string]bool, len(req.Findings))
	for _, f := range req.Findings {
		rules[f.Rule] = true
	}
	kept := make([]Explanation, 0, len(explanations))
	for _, e := range explanations {
		if rules[e.Rule] {
			kept = append(kept, e)
		}
	}
	return kept
}

// Purpose labels review calls in the LLM request log.
const Purpose = "mentor-review"

const reviewSystemPrompt = `You are a patient data structures and algorithms mentor. A learner is working on a solution and an automated checker has flagged some issues.

Instructions:
- Summarize the state of the solution in two or three sentences.
- For each listed issue, explain why it matters for this specific code. Use the rule name and line exactly as given.
- Do NOT report issues that are not in the list.
- Suggest one concrete next step.
- Never rewrite the whole solution for the learner.`

var reviewUserTemplate = template.Must(template.New("review").Parse(`Language: {{.Language}}
{{if .Difficulty}}Estimated difficulty: {{.Difficulty}}
{{end}}{{if .Topic}}Main topic: {{.Topic}}
{{end}}
Code:
{{.Code}}

Issues found:
{{range .Findings}}- {{.Rule}} (line {{.Location.Line}}, {{.Severity}}): {{.Message}}
{{else}}- none
{{end}}`))

func buildReviewMessage(req *Request, maxCode int) (string, error) {
	view := *req
	if maxCode > 0 && len(view.Code) > maxCode {
		view.Code = view.Code[:maxCode] + "\n... (truncated)"
	}
	var buf bytes.Buffer
	if err := reviewUserTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
