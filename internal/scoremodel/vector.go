package scoremodel

import (
	"encoding/json"
	"fmt"
)

// InferFn picks the function for a vector sent without an index. Only
// the four-value timeline vector is unambiguous; difficulty and mistake
// vectors both carry eight numbers and need an explicit fn_index.
func InferFn(data []any) (int, error) {
	switch len(data) {
	case TimelineArity:
		return FnTimeline, nil
	case DifficultyArity:
		return 0, fmt.Errorf("fn_index is required for %d-value vectors", len(data))
	}
	return 0, fmt.Errorf("cannot infer function for %d values", len(data))
}

// DecodeDifficulty reads a difficulty vector.
func DecodeDifficulty(data []any) (DifficultyInput, error) {
	var in DifficultyInput
	nums, err := numbers(data, DifficultyArity)
	if err != nil {
		return in, err
	}
	in.Loops = int(nums[0])
	in.Conditionals = int(nums[1])
	in.NestingDepth = int(nums[2])
	in.Functions = int(nums[3])
	in.LineCount = int(nums[4])
	in.Complexity = nums[5]
	in.TextLength = int(nums[6])
	in.TestCases = int(nums[7])
	return in, nil
}

// DecodeTimeline reads a timeline vector.
func DecodeTimeline(data []any) (TimelineInput, error) {
	var in TimelineInput
	nums, err := numbers(data, TimelineArity)
	if err != nil {
		return in, err
	}
	in.StudentSkill = nums[0]
	in.ProblemDifficulty = nums[1]
	in.ProblemComplexity = nums[2]
	in.ProblemLength = int(nums[3])
	return in, nil
}

// DecodeMistake reads a mistake vector.
func DecodeMistake(data []any) (MistakeInput, error) {
	var in MistakeInput
	nums, err := numbers(data, MistakeArity)
	if err != nil {
		return in, err
	}
	in.Loops = int(nums[0])
	in.Conditionals = int(nums[1])
	in.NestingDepth = int(nums[2])
	in.LineCount = int(nums[3])
	in.Complexity = nums[4]
	in.HasRecursion = nums[5] != 0
	in.Functions = int(nums[6])
	in.ProblemDifficulty = nums[7]
	return in, nil
}

// numbers converts JSON-decoded values to float64. Booleans map to 0/1.
func numbers(data []any, want int) ([]float64, error) {
	if len(data) != want {
		return nil, fmt.Errorf("expected %d values, got %d", want, len(data))
	}
	out := make([]float64, len(data))
	for i, v := range data {
		switch x := v.(type) {
		case float64:
			out[i] = x
		case int:
			out[i] = float64(x)
		case json.Number:
			f, err := x.Float64()
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			out[i] = f
		case bool:
			if x {
				out[i] = 1
			}
		default:
			return nil, fmt.Errorf("value %d: unsupported type %T", i, v)
		}
	}
	return out, nil
}
