package domain

import (
	"github.com/shopspring/decimal"
)

// IngestResult reports the outcome of processing one slip-audit file.
// Success means no fatal errors occurred; row-level warnings never fail
// the batch, so callers must inspect Warnings to judge match quality.
type IngestResult struct {
	Success          bool     `json:"success"`
	ReferralsCreated int      `json:"referrals_created"`
	OneToOnesCreated int      `json:"one_to_ones_created"`
	TYFCBsCreated    int      `json:"tyfcbs_created"`
	TotalProcessed   int      `json:"total_processed"`
	Errors           []string `json:"errors"`
	Warnings         []string `json:"warnings"`
}

// TYFCBMemberSummary aggregates closed business for one member.
type TYFCBMemberSummary struct {
	Member         string          `json:"member"`
	ReceivedCount  int             `json:"received_count"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	GivenCount     int             `json:"given_count"`
	GivenAmount    decimal.Decimal `json:"given_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

// MemberActivitySummary is the combined per-member activity roll-up:
// referral and one-to-one totals plus unique-partner counts, and closed
// business both directions.
type MemberActivitySummary struct {
	Member                  string          `json:"member"`
	ReferralsGiven          int             `json:"referrals_given"`
	ReferralsReceived       int             `json:"referrals_received"`
	UniqueReferralsGiven    int             `json:"unique_referrals_given"`
	UniqueReferralsReceived int             `json:"unique_referrals_received"`
	OneToOnes               int             `json:"one_to_ones"`
	UniqueOneToOnes         int             `json:"unique_one_to_ones"`
	TYFCBCountReceived      int             `json:"tyfcb_count_received"`
	TYFCBAmountReceived     decimal.Decimal `json:"tyfcb_amount_received"`
	TYFCBCountGiven         int             `json:"tyfcb_count_given"`
	TYFCBAmountGiven        decimal.Decimal `json:"tyfcb_amount_given"`
}

// QualityIssueCounts summarizes data-quality problems found in one
// period's extracted records.
type QualityIssueCounts struct {
	Total      int `json:"total"`
	SelfPaired int `json:"self_paired"`
	Duplicates int `json:"duplicates"`
}

// QualityReport scores a period's records: the share of records free of
// self-pairing and duplicate issues, as a percentage.
type QualityReport struct {
	OverallQualityScore float64            `json:"overall_quality_score"`
	TotalRecords        int                `json:"total_records"`
	TotalIssues         int                `json:"total_issues"`
	Referrals           QualityIssueCounts `json:"referrals"`
	OneToOnes           QualityIssueCounts `json:"one_to_ones"`
	TYFCBNegativeCount  int                `json:"tyfcb_negative_amounts"`
	TYFCBTotal          int                `json:"tyfcb_total"`
}

// PeriodReport bundles everything a chapter sees for one reporting
// period: the three matrices, the closed-business and per-member
// roll-ups, and the data-quality score for the underlying records.
type PeriodReport struct {
	ChapterID   int64  `json:"chapter_id"`
	ChapterName string `json:"chapter_name"`
	Period      string `json:"period"`

	Referral    *Matrix `json:"referral_matrix"`
	OneToOne    *Matrix `json:"one_to_one_matrix"`
	Combination *Matrix `json:"combination_matrix"`

	TYFCBSummaries  []TYFCBMemberSummary    `json:"tyfcb_summaries"`
	MemberSummaries []MemberActivitySummary `json:"member_summaries"`
	Quality         QualityReport           `json:"quality"`
}

// RosterImportResult reports the outcome of a bulk roster upload.
// Success means no row-level errors; skipped rows surface as warnings.
type RosterImportResult struct {
	Success         bool     `json:"success"`
	ChaptersCreated int      `json:"chapters_created"`
	ChaptersUpdated int      `json:"chapters_updated"`
	MembersCreated  int      `json:"members_created"`
	MembersUpdated  int      `json:"members_updated"`
	TotalProcessed  int      `json:"total_processed"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
}
