// Package compare diffs matrix snapshots from two periods and classifies
// every member's trend. Alignment is by normalized member name, never by
// matrix position: rosters grow, shrink and reorder between periods.
package compare

import (
	"math"
	"sort"

	"bnitrack/internal/namematch"
	"bnitrack/pkg/contracts/domain"
)

// topN bounds the improvement and decline leaderboards.
const topN = 5

// errMissingData marks a degenerate comparison input. Callers get a
// structured result rather than an error so batch runs keep going.
const errMissingData = "Missing matrix data"

// Matrices diffs two referral or one-to-one snapshots. Every member of
// the current snapshot is matched against the previous one by normalized
// name; unmatched members are flagged new and compared against zero.
func Matrices(current, previous *domain.Matrix) *domain.ComparisonReport {
	if missing(current) || missing(previous) {
		return &domain.ComparisonReport{Error: errMissingData}
	}

	prevIndex := alignByName(current.MemberNames, previous.MemberNames)

	changes := make([]domain.MemberTrend, len(current.MemberNames))
	for i, name := range current.MemberNames {
		pi := prevIndex[i]

		trend := domain.MemberTrend{
			Member:        name,
			CurrentTotal:  current.RowTotal(i),
			CurrentUnique: current.RowUnique(i),
			IsNewMember:   pi < 0,
		}
		if pi >= 0 {
			trend.PreviousTotal = previous.RowTotal(pi)
			trend.PreviousUnique = previous.RowUnique(pi)
		}
		trend.Change = trend.CurrentTotal - trend.PreviousTotal
		trend.UniqueChange = trend.CurrentUnique - trend.PreviousUnique
		trend.Status, trend.Direction = classify(trend.Change)

		changes[i] = trend
	}

	return &domain.ComparisonReport{
		Members:       current.MemberNames,
		CurrentCells:  current.Cells,
		PreviousCells: previous.Cells,
		MemberChanges: changes,
		Summary:       summarize(changes),
	}
}

// Combination diffs two combination snapshots. Each member's row is
// tallied by relationship category, the diagonal excluded, and the trend
// is driven by improvement score: the change in "both" relationships
// minus the change in "neither".
func Combination(current, previous *domain.Matrix) *domain.CombinationReport {
	if missing(current) || missing(previous) {
		return &domain.CombinationReport{Error: errMissingData}
	}

	prevIndex := alignByName(current.MemberNames, previous.MemberNames)

	changes := make([]domain.CombinationTrend, len(current.MemberNames))
	for i, name := range current.MemberNames {
		pi := prevIndex[i]

		trend := domain.CombinationTrend{
			Member:        name,
			CurrentCounts: tallyRow(current, i),
			IsNewMember:   pi < 0,
		}
		if pi >= 0 {
			trend.PreviousCounts = tallyRow(previous, pi)
		}
		trend.Changes = domain.CategoryCounts{
			Neither:      trend.CurrentCounts.Neither - trend.PreviousCounts.Neither,
			OTOOnly:      trend.CurrentCounts.OTOOnly - trend.PreviousCounts.OTOOnly,
			ReferralOnly: trend.CurrentCounts.ReferralOnly - trend.PreviousCounts.ReferralOnly,
			Both:         trend.CurrentCounts.Both - trend.PreviousCounts.Both,
		}
		trend.ImprovementScore = trend.Changes.Both - trend.Changes.Neither
		trend.Status, trend.Direction = classify(trend.ImprovementScore)

		changes[i] = trend
	}

	return &domain.CombinationReport{
		Members:       current.MemberNames,
		CurrentCells:  current.Cells,
		PreviousCells: previous.Cells,
		MemberChanges: changes,
		Summary:       summarizeCombination(changes),
	}
}

// missing reports whether a snapshot carries no matrix at all. A matrix
// generated for an empty roster is not missing; it compares to an empty
// report.
func missing(m *domain.Matrix) bool {
	return m == nil || (m.MemberNames == nil && m.Cells == nil)
}

// alignByName maps each current row to its previous row, or -1 for a
// member with no previous counterpart. The first previous member whose
// normalized name matches wins.
func alignByName(current, previous []string) []int {
	prevByNorm := make(map[string]int, len(previous))
	for i, name := range previous {
		key := namematch.Normalize(name)
		if _, taken := prevByNorm[key]; !taken {
			prevByNorm[key] = i
		}
	}

	index := make([]int, len(current))
	for i, name := range current {
		if pi, ok := prevByNorm[namematch.Normalize(name)]; ok {
			index[i] = pi
		} else {
			index[i] = -1
		}
	}
	return index
}

// tallyRow counts a member's row by combination category, skipping the
// member's own diagonal cell.
func tallyRow(m *domain.Matrix, row int) domain.CategoryCounts {
	var counts domain.CategoryCounts
	if row < 0 || row >= len(m.Cells) {
		return counts
	}
	for j, v := range m.Cells[row] {
		if j == row {
			continue
		}
		switch v {
		case domain.ComboBoth:
			counts.Both++
		case domain.ComboReferralOnly:
			counts.ReferralOnly++
		case domain.ComboOTOOnly:
			counts.OTOOnly++
		default:
			counts.Neither++
		}
	}
	return counts
}

func classify(change int) (domain.TrendStatus, string) {
	switch {
	case change > 0:
		return domain.StatusImproved, domain.DirectionUp
	case change < 0:
		return domain.StatusDeclined, domain.DirectionDown
	default:
		return domain.StatusNoChange, domain.DirectionFlat
	}
}

func summarize(changes []domain.MemberTrend) domain.ComparisonSummary {
	summary := domain.ComparisonSummary{TotalMembers: len(changes)}

	existing := 0
	changeSum := 0
	for _, tr := range changes {
		switch tr.Status {
		case domain.StatusImproved:
			summary.Improved++
		case domain.StatusDeclined:
			summary.Declined++
		default:
			summary.NoChange++
		}
		if tr.IsNewMember {
			summary.NewMembers++
		} else {
			existing++
			changeSum += tr.Change
		}
	}

	sorted := make([]domain.MemberTrend, len(changes))
	copy(sorted, changes)

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Change > sorted[j].Change })
	for _, tr := range sorted {
		if tr.Change <= 0 || len(summary.TopImprovements) == topN {
			break
		}
		summary.TopImprovements = append(summary.TopImprovements, domain.TopMover{
			Member: tr.Member, Change: tr.Change, Current: tr.CurrentTotal, Previous: tr.PreviousTotal,
		})
	}

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Change < sorted[j].Change })
	for _, tr := range sorted {
		if tr.Change >= 0 || len(summary.TopDeclines) == topN {
			break
		}
		summary.TopDeclines = append(summary.TopDeclines, domain.TopMover{
			Member: tr.Member, Change: tr.Change, Current: tr.CurrentTotal, Previous: tr.PreviousTotal,
		})
	}

	if existing > 0 {
		summary.AverageChange = round2(float64(changeSum) / float64(existing))
	}
	if summary.TotalMembers > 0 {
		summary.ImprovementRate = round1(float64(summary.Improved) / float64(summary.TotalMembers) * 100)
	}
	return summary
}

func summarizeCombination(changes []domain.CombinationTrend) domain.CombinationSummary {
	summary := domain.CombinationSummary{TotalMembers: len(changes)}

	existing := 0
	scoreSum := 0
	for _, tr := range changes {
		switch tr.Status {
		case domain.StatusImproved:
			summary.Improved++
		case domain.StatusDeclined:
			summary.Declined++
		default:
			summary.NoChange++
		}
		if tr.IsNewMember {
			summary.NewMembers++
		} else {
			existing++
			scoreSum += tr.ImprovementScore
		}
	}

	sorted := make([]domain.CombinationTrend, len(changes))
	copy(sorted, changes)

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ImprovementScore > sorted[j].ImprovementScore })
	for _, tr := range sorted {
		if tr.ImprovementScore <= 0 || len(summary.TopImprovements) == topN {
			break
		}
		summary.TopImprovements = append(summary.TopImprovements, domain.CombinationMover{
			Member:           tr.Member,
			ImprovementScore: tr.ImprovementScore,
			BothChange:       tr.Changes.Both,
			NeitherChange:    tr.Changes.Neither,
		})
	}

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ImprovementScore < sorted[j].ImprovementScore })
	for _, tr := range sorted {
		if tr.ImprovementScore >= 0 || len(summary.TopDeclines) == topN {
			break
		}
		summary.TopDeclines = append(summary.TopDeclines, domain.CombinationMover{
			Member:           tr.Member,
			ImprovementScore: tr.ImprovementScore,
			BothChange:       tr.Changes.Both,
			NeitherChange:    tr.Changes.Neither,
		})
	}

	if existing > 0 {
		summary.AverageImprovementScore = round2(float64(scoreSum) / float64(existing))
	}
	if summary.TotalMembers > 0 {
		summary.ImprovementRate = round1(float64(summary.Improved) / float64(summary.TotalMembers) * 100)
	}
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
