package domain

import (
	"time"
)

// TrendStatus is the three-way classification of a member's period-over-period change.
type TrendStatus string

const (
	StatusImproved TrendStatus = "improved"
	StatusDeclined TrendStatus = "declined"
	StatusNoChange TrendStatus = "no_change"
)

// Direction glyphs accompanying each status, strictly for display.
const (
	DirectionUp   = "↗️"
	DirectionDown = "↘️"
	DirectionFlat = "➡️"
)

// MemberTrend is one member's delta between two referral or one-to-one
// snapshots. Members absent from the previous snapshot are flagged new
// and compared against zeroed previous totals.
type MemberTrend struct {
	Member         string      `json:"member"`
	CurrentTotal   int         `json:"current_total"`
	PreviousTotal  int         `json:"previous_total"`
	Change         int         `json:"change"`
	CurrentUnique  int         `json:"current_unique"`
	PreviousUnique int         `json:"previous_unique"`
	UniqueChange   int         `json:"unique_change"`
	Direction      string      `json:"direction"`
	Status         TrendStatus `json:"status"`
	IsNewMember    bool        `json:"is_new_member"`
}

// TopMover is a summary line for the largest improvements and declines.
type TopMover struct {
	Member   string `json:"member"`
	Change   int    `json:"change"`
	Current  int    `json:"current"`
	Previous int    `json:"previous"`
}

// ComparisonSummary aggregates the per-member trends of one comparison.
// AverageChange excludes new members from its denominator.
type ComparisonSummary struct {
	TotalMembers    int        `json:"total_members"`
	Improved        int        `json:"improved"`
	Declined        int        `json:"declined"`
	NoChange        int        `json:"no_change"`
	NewMembers      int        `json:"new_members"`
	TopImprovements []TopMover `json:"top_improvements"`
	TopDeclines     []TopMover `json:"top_declines"`
	AverageChange   float64    `json:"average_change"`
	ImprovementRate float64    `json:"improvement_rate"`
}

// ComparisonReport is the full result of diffing two referral or
// one-to-one snapshots. Error is set instead of the data fields when the
// input is missing or empty.
type ComparisonReport struct {
	Error         string            `json:"error,omitempty"`
	Members       []string          `json:"members,omitempty"`
	CurrentCells  [][]int           `json:"current_matrix,omitempty"`
	PreviousCells [][]int           `json:"previous_matrix,omitempty"`
	MemberChanges []MemberTrend     `json:"member_changes,omitempty"`
	Summary       ComparisonSummary `json:"summary"`
}

// CategoryCounts tallies a combination-matrix row by relationship category.
type CategoryCounts struct {
	Neither      int `json:"neither"`
	OTOOnly      int `json:"oto_only"`
	ReferralOnly int `json:"referral_only"`
	Both         int `json:"both"`
}

// CombinationTrend is one member's delta between two combination
// snapshots. ImprovementScore is the change in "both" relationships minus
// the change in "neither" relationships.
type CombinationTrend struct {
	Member           string         `json:"member"`
	CurrentCounts    CategoryCounts `json:"current_counts"`
	PreviousCounts   CategoryCounts `json:"previous_counts"`
	Changes          CategoryCounts `json:"changes"`
	ImprovementScore int            `json:"improvement_score"`
	Direction        string         `json:"direction"`
	Status           TrendStatus    `json:"status"`
	IsNewMember      bool           `json:"is_new_member"`
}

// CombinationMover is a summary line for combination comparisons.
type CombinationMover struct {
	Member           string `json:"member"`
	ImprovementScore int    `json:"improvement_score"`
	BothChange       int    `json:"both_change"`
	NeitherChange    int    `json:"neither_change"`
}

// CombinationSummary aggregates per-member combination trends.
type CombinationSummary struct {
	TotalMembers            int                `json:"total_members"`
	Improved                int                `json:"improved"`
	Declined                int                `json:"declined"`
	NoChange                int                `json:"no_change"`
	NewMembers              int                `json:"new_members"`
	TopImprovements         []CombinationMover `json:"top_improvements"`
	TopDeclines             []CombinationMover `json:"top_declines"`
	AverageImprovementScore float64            `json:"average_improvement_score"`
	ImprovementRate         float64            `json:"improvement_rate"`
}

// CombinationReport is the full result of diffing two combination snapshots.
type CombinationReport struct {
	Error         string             `json:"error,omitempty"`
	Members       []string           `json:"members,omitempty"`
	CurrentCells  [][]int            `json:"current_matrix,omitempty"`
	PreviousCells [][]int            `json:"previous_matrix,omitempty"`
	MemberChanges []CombinationTrend `json:"member_changes,omitempty"`
	Summary       CombinationSummary `json:"summary"`
}

// MetricInsight condenses one metric's comparison summary for the
// cross-metric insight block.
type MetricInsight struct {
	Improved        int        `json:"improved"`
	Declined        int        `json:"declined"`
	AverageChange   float64    `json:"average_change"`
	ImprovementRate float64    `json:"improvement_rate"`
	TopImprovers    []TopMover `json:"top_improvers"`
}

// OverallInsight carries chapter-level takeaways across all three metrics.
// MostImprovedMetric is "referrals", "one_to_ones", or "equal".
type OverallInsight struct {
	TotalMembers               int     `json:"total_members"`
	NewMembers                 int     `json:"new_members"`
	CombinationImprovementRate float64 `json:"combination_improvement_rate"`
	MostImprovedMetric         string  `json:"most_improved_metric"`
}

// ComparisonInsights is the cross-metric insight block of a full comparison.
type ComparisonInsights struct {
	Referrals MetricInsight  `json:"referrals"`
	OneToOnes MetricInsight  `json:"one_to_ones"`
	Overall   OverallInsight `json:"overall"`
}

// ReportRef identifies one side of a full comparison.
type ReportRef struct {
	ChapterID   int64     `json:"chapter_id"`
	Period      string    `json:"period"`
	GeneratedAt time.Time `json:"generated_at"`
}

// FullComparison packages the three matrix comparisons for two
// chapter/period snapshots together with cross-metric insights.
type FullComparison struct {
	CurrentReport  ReportRef          `json:"current_report"`
	PreviousReport ReportRef          `json:"previous_report"`
	Referral       *ComparisonReport  `json:"referral_comparison"`
	OneToOne       *ComparisonReport  `json:"oto_comparison"`
	Combination    *CombinationReport `json:"combination_comparison"`
	Insights       ComparisonInsights `json:"overall_insights"`
}
