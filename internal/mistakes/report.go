package mistakes

import "math"

// Risk labels.
const (
	RiskCritical = "Critical Risk"
	RiskHigh     = "High Risk"
	RiskMedium   = "Medium Risk"
	RiskLow      = "Low Risk"
	RiskNone     = "No Issues"
)

// SeverityCounts tallies findings per severity.
type SeverityCounts struct {
	Critical int `json:"critical" yaml:"critical"`
	High     int `json:"high" yaml:"high"`
	Medium   int `json:"medium" yaml:"medium"`
	Low      int `json:"low" yaml:"low"`
}

// Report is the detector output: the findings plus aggregates computed from
// all of them.
type Report struct {
	Findings              []Finding      `json:"mistakes" yaml:"mistakes"`
	TotalCount            int            `json:"total_count" yaml:"total_count"`
	RiskPercentage        int            `json:"risk_percentage" yaml:"risk_percentage"`
	OverallRisk           string         `json:"overall_risk" yaml:"overall_risk"`
	CodeQualityScore      int            `json:"code_quality_score" yaml:"code_quality_score"`
	BySeverity            SeverityCounts `json:"by_severity" yaml:"by_severity"`
	ByCategory            map[string]int `json:"by_category" yaml:"by_category"`
	LearningOpportunities int            `json:"learning_opportunities" yaml:"learning_opportunities"`
	AutoFixable           int            `json:"auto_fixable" yaml:"auto_fixable"`
}

// Aggregate scores a finding list.
func Aggregate(findings []Finding) *Report {
	if findings == nil {
		findings = []Finding{}
	}
	r := &Report{
		Findings:   findings,
		TotalCount: len(findings),
		ByCategory: map[string]int{},
	}

	sum := 0
	for _, f := range findings {
		sum += f.Severity.Weight()
		switch f.Severity {
		case SeverityCritical:
			r.BySeverity.Critical++
		case SeverityHigh:
			r.BySeverity.High++
		case SeverityMedium:
			r.BySeverity.Medium++
		case SeverityLow:
			r.BySeverity.Low++
		}
		r.ByCategory[f.Category]++
		if f.LearningNote != "" {
			r.LearningOpportunities++
		}
		if f.AutoFixable {
			r.AutoFixable++
		}
	}

	if n := len(findings); n > 0 {
		r.RiskPercentage = int(math.Round(100 * float64(sum) / float64(5*n)))
	}
	r.OverallRisk = riskLabel(r.RiskPercentage, len(findings))
	r.CodeQualityScore = max(0, 100-8*len(findings))
	return r
}

func riskLabel(pct, n int) string {
	switch {
	case pct > 80:
		return RiskCritical
	case pct > 60:
		return RiskHigh
	case pct > 30:
		return RiskMedium
	case n > 0:
		return RiskLow
	default:
		return RiskNone
	}
}

// Critical returns the critical findings in report order.
func (r *Report) Critical() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical {
			out = append(out, f)
		}
	}
	return out
}
