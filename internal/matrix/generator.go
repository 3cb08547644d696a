// Package matrix renders a period's interaction records into the square
// relationship matrices the chapter reports are built from. Generation is
// pure: the same roster and records always produce the same matrices, and
// nothing here touches storage.
package matrix

import (
	"sort"

	"github.com/shopspring/decimal"

	"bnitrack/internal/namematch"
	"bnitrack/pkg/contracts/domain"
)

// Generator indexes one chapter roster for matrix generation. The member
// order is fixed at construction: display names sorted ascending. Records
// referencing names outside the roster are silently ignored, which is how
// interactions of since-deactivated members fall out of the matrices.
type Generator struct {
	names []string
	index map[string]int
}

// NewGenerator builds a generator over the given roster.
func NewGenerator(roster []domain.Member) *Generator {
	members := make([]domain.Member, len(roster))
	copy(members, roster)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].FullName() < members[j].FullName()
	})

	g := &Generator{
		names: make([]string, len(members)),
		index: make(map[string]int, len(members)),
	}
	for i, m := range members {
		g.names[i] = m.FullName()
		g.index[namematch.MemberKey(m)] = i
	}
	return g
}

// MemberNames returns the display names in matrix order.
func (g *Generator) MemberNames() []string {
	names := make([]string, len(g.names))
	copy(names, g.names)
	return names
}

// Referral counts who referred whom: cell (i, j) is the number of
// referrals member i gave member j during the period.
func (g *Generator) Referral(interactions []domain.Interaction) domain.Matrix {
	m := domain.NewMatrix(g.MemberNames())
	for _, rec := range interactions {
		if rec.Kind != domain.KindReferral {
			continue
		}
		gi, ok := g.index[rec.Giver]
		if !ok {
			continue
		}
		ri, ok := g.index[rec.Receiver]
		if !ok {
			continue
		}
		m.Cells[gi][ri]++
	}
	return m
}

// OneToOne counts meetings. Each meeting increments both (i, j) and
// (j, i), so the matrix is symmetric by construction.
func (g *Generator) OneToOne(interactions []domain.Interaction) domain.Matrix {
	m := domain.NewMatrix(g.MemberNames())
	for _, rec := range interactions {
		if rec.Kind != domain.KindOneToOne {
			continue
		}
		gi, ok := g.index[rec.Giver]
		if !ok {
			continue
		}
		ri, ok := g.index[rec.Receiver]
		if !ok {
			continue
		}
		m.Cells[gi][ri]++
		m.Cells[ri][gi]++
	}
	return m
}

// Combination classifies every member pair by relationship: 3 when the
// pair has both a referral and a meeting, 2 referral only, 1 meeting
// only, 0 neither. The diagonal stays 0.
func (g *Generator) Combination(interactions []domain.Interaction) domain.Matrix {
	referral := g.Referral(interactions)
	oneToOne := g.OneToOne(interactions)

	m := domain.NewMatrix(g.MemberNames())
	for i := range m.Cells {
		for j := range m.Cells[i] {
			if i == j {
				continue
			}
			hasReferral := referral.Cells[i][j] > 0
			hasOTO := oneToOne.Cells[i][j] > 0
			switch {
			case hasReferral && hasOTO:
				m.Cells[i][j] = domain.ComboBoth
			case hasReferral:
				m.Cells[i][j] = domain.ComboReferralOnly
			case hasOTO:
				m.Cells[i][j] = domain.ComboOTOOnly
			}
		}
	}
	return m
}

// Snapshots generates all three matrices for one chapter and period.
func (g *Generator) Snapshots(chapterID int64, period string, interactions []domain.Interaction) domain.SnapshotSet {
	return domain.SnapshotSet{
		ChapterID:   chapterID,
		Period:      period,
		Referral:    g.Referral(interactions),
		OneToOne:    g.OneToOne(interactions),
		Combination: g.Combination(interactions),
	}
}

// TYFCBSummary aggregates closed business per member, both directions,
// in matrix order.
func (g *Generator) TYFCBSummary(interactions []domain.Interaction) []domain.TYFCBMemberSummary {
	summaries := make([]domain.TYFCBMemberSummary, len(g.names))
	for i, name := range g.names {
		summaries[i] = domain.TYFCBMemberSummary{
			Member:         name,
			ReceivedAmount: decimal.Zero,
			GivenAmount:    decimal.Zero,
			NetAmount:      decimal.Zero,
		}
	}

	for _, rec := range interactions {
		if rec.Kind != domain.KindTYFCB {
			continue
		}
		if i, ok := g.index[rec.Receiver]; ok {
			summaries[i].ReceivedCount++
			summaries[i].ReceivedAmount = summaries[i].ReceivedAmount.Add(rec.Amount)
		}
		if rec.Giver != "" {
			if i, ok := g.index[rec.Giver]; ok {
				summaries[i].GivenCount++
				summaries[i].GivenAmount = summaries[i].GivenAmount.Add(rec.Amount)
			}
		}
	}

	for i := range summaries {
		summaries[i].NetAmount = summaries[i].ReceivedAmount.Sub(summaries[i].GivenAmount)
	}
	return summaries
}

// MemberSummary rolls up every member's activity for the period:
// referral and meeting totals with unique-partner counts, plus closed
// business both directions.
func (g *Generator) MemberSummary(interactions []domain.Interaction) []domain.MemberActivitySummary {
	summaries := make([]domain.MemberActivitySummary, len(g.names))
	uniqueGiven := make([]map[string]bool, len(g.names))
	uniqueReceived := make([]map[string]bool, len(g.names))
	uniqueOTO := make([]map[string]bool, len(g.names))
	for i, name := range g.names {
		summaries[i] = domain.MemberActivitySummary{
			Member:              name,
			TYFCBAmountReceived: decimal.Zero,
			TYFCBAmountGiven:    decimal.Zero,
		}
		uniqueGiven[i] = make(map[string]bool)
		uniqueReceived[i] = make(map[string]bool)
		uniqueOTO[i] = make(map[string]bool)
	}

	for _, rec := range interactions {
		switch rec.Kind {
		case domain.KindReferral:
			gi, giverKnown := g.index[rec.Giver]
			ri, receiverKnown := g.index[rec.Receiver]
			if giverKnown {
				summaries[gi].ReferralsGiven++
				uniqueGiven[gi][rec.Receiver] = true
			}
			if receiverKnown {
				summaries[ri].ReferralsReceived++
				uniqueReceived[ri][rec.Giver] = true
			}

		case domain.KindOneToOne:
			gi, giverKnown := g.index[rec.Giver]
			ri, receiverKnown := g.index[rec.Receiver]
			if giverKnown {
				summaries[gi].OneToOnes++
				uniqueOTO[gi][rec.Receiver] = true
			}
			if receiverKnown {
				summaries[ri].OneToOnes++
				uniqueOTO[ri][rec.Giver] = true
			}

		case domain.KindTYFCB:
			if ri, ok := g.index[rec.Receiver]; ok {
				summaries[ri].TYFCBCountReceived++
				summaries[ri].TYFCBAmountReceived = summaries[ri].TYFCBAmountReceived.Add(rec.Amount)
			}
			if rec.Giver != "" {
				if gi, ok := g.index[rec.Giver]; ok {
					summaries[gi].TYFCBCountGiven++
					summaries[gi].TYFCBAmountGiven = summaries[gi].TYFCBAmountGiven.Add(rec.Amount)
				}
			}
		}
	}

	for i := range summaries {
		summaries[i].UniqueReferralsGiven = len(uniqueGiven[i])
		summaries[i].UniqueReferralsReceived = len(uniqueReceived[i])
		summaries[i].UniqueOneToOnes = len(uniqueOTO[i])
	}
	return summaries
}
