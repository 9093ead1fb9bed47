package review

import "github.com/abhisek/dsamentor/internal/llm"

// Schema is the JSON shape of a mentor review.
var Schema = &llm.Schema{
	Name:        "mentor-review",
	Description: "A short mentor review of a learner's DSA solution and the issues found in it",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences on the overall state of the solution",
			},
			"explanations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"rule": map[string]any{
							"type":        "string",
							"description": "The rule name of the finding being explained",
						},
						"line": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "1-based line of the finding, or 0 when it spans several places",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why this is a problem for this particular code, in plain words",
						},
					},
					"required":             []any{"rule", "line", "explanation"},
					"additionalProperties": false,
				},
			},
			"next_step": map[string]any{
				"type":        "string",
				"description": "The single most useful thing the learner should do next",
			},
		},
		"required":             []any{"summary", "explanations", "next_step"},
		"additionalProperties": false,
	},
}
