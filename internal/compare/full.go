package compare

import (
	"time"

	apperrors "bnitrack/internal/errors"
	"bnitrack/pkg/contracts/domain"
)

// Full runs all three matrix comparisons for two snapshot sets of the
// same chapter and packages them with cross-metric insights. Comparing
// across chapters is a precondition violation, not a recoverable case.
func Full(current, previous domain.SnapshotSet, currentAt, previousAt time.Time) (*domain.FullComparison, error) {
	if current.ChapterID != previous.ChapterID {
		return nil, apperrors.NewAppValidationError("Cannot compare reports from different chapters")
	}

	referral := Matrices(&current.Referral, &previous.Referral)
	oneToOne := Matrices(&current.OneToOne, &previous.OneToOne)
	combination := Combination(&current.Combination, &previous.Combination)

	return &domain.FullComparison{
		CurrentReport: domain.ReportRef{
			ChapterID:   current.ChapterID,
			Period:      current.Period,
			GeneratedAt: currentAt,
		},
		PreviousReport: domain.ReportRef{
			ChapterID:   previous.ChapterID,
			Period:      previous.Period,
			GeneratedAt: previousAt,
		},
		Referral:    referral,
		OneToOne:    oneToOne,
		Combination: combination,
		Insights:    Insights(referral, oneToOne, combination),
	}, nil
}

// Insights condenses the three comparisons into the chapter-level
// takeaway block: how each metric moved and which moved more.
func Insights(referral, oneToOne *domain.ComparisonReport, combination *domain.CombinationReport) domain.ComparisonInsights {
	refSummary := referral.Summary
	otoSummary := oneToOne.Summary

	return domain.ComparisonInsights{
		Referrals: domain.MetricInsight{
			Improved:        refSummary.Improved,
			Declined:        refSummary.Declined,
			AverageChange:   refSummary.AverageChange,
			ImprovementRate: refSummary.ImprovementRate,
			TopImprovers:    topImprovers(refSummary.TopImprovements),
		},
		OneToOnes: domain.MetricInsight{
			Improved:        otoSummary.Improved,
			Declined:        otoSummary.Declined,
			AverageChange:   otoSummary.AverageChange,
			ImprovementRate: otoSummary.ImprovementRate,
			TopImprovers:    topImprovers(otoSummary.TopImprovements),
		},
		Overall: domain.OverallInsight{
			TotalMembers:               refSummary.TotalMembers,
			NewMembers:                 refSummary.NewMembers,
			CombinationImprovementRate: combination.Summary.ImprovementRate,
			MostImprovedMetric:         mostImprovedMetric(refSummary.ImprovementRate, otoSummary.ImprovementRate),
		},
	}
}

func topImprovers(movers []domain.TopMover) []domain.TopMover {
	if len(movers) > 3 {
		return movers[:3]
	}
	return movers
}

func mostImprovedMetric(referralRate, otoRate float64) string {
	switch {
	case referralRate > otoRate:
		return "referrals"
	case otoRate > referralRate:
		return "one_to_ones"
	default:
		return "equal"
	}
}
