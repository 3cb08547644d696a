package matrix

import (
	"bnitrack/pkg/contracts/domain"
)

// Quality scores one period's records for operator review: self-paired
// records, repeated pairs, and negative closed-business amounts. The
// overall score is the share of records free of self-pair and duplicate
// issues, as a percentage. An empty period scores 100.
func Quality(interactions []domain.Interaction) domain.QualityReport {
	var report domain.QualityReport

	seenReferrals := make(map[string]bool)
	seenMeetings := make(map[string]bool)

	for _, rec := range interactions {
		switch rec.Kind {
		case domain.KindReferral:
			report.Referrals.Total++
			if rec.Giver == rec.Receiver {
				report.Referrals.SelfPaired++
			}
			key := rec.Giver + "|" + rec.Receiver
			if seenReferrals[key] {
				report.Referrals.Duplicates++
			}
			seenReferrals[key] = true

		case domain.KindOneToOne:
			report.OneToOnes.Total++
			if rec.Giver == rec.Receiver {
				report.OneToOnes.SelfPaired++
			}
			key := pairKey(rec.Giver, rec.Receiver)
			if seenMeetings[key] {
				report.OneToOnes.Duplicates++
			}
			seenMeetings[key] = true

		case domain.KindTYFCB:
			report.TYFCBTotal++
			if rec.Amount.Sign() < 0 {
				report.TYFCBNegativeCount++
			}
		}
	}

	report.TotalRecords = report.Referrals.Total + report.OneToOnes.Total + report.TYFCBTotal
	report.TotalIssues = report.Referrals.SelfPaired + report.Referrals.Duplicates +
		report.OneToOnes.SelfPaired + report.OneToOnes.Duplicates

	if report.TotalRecords > 0 {
		report.OverallQualityScore = float64(report.TotalRecords-report.TotalIssues) / float64(report.TotalRecords) * 100
	} else {
		report.OverallQualityScore = 100
	}
	return report
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
