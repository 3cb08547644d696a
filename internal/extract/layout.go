package extract

import (
	"strings"

	"bnitrack/internal/sheet"
)

// Layout fixes the column offsets and leading metadata rows of one
// slips-audit export variant. TierCol is -1 when the variant carries no
// inside/outside column and within-chapter is inferred from the detail
// cell instead.
type Layout struct {
	Name         string
	MetadataRows int
	GiverCol     int
	ReceiverCol  int
	SlipTypeCol  int
	TierCol      int
	AmountCol    int
	DetailCol    int
}

// StandardLayout matches the classic PALMS slips-audit export: one
// leading chapter-totals row, amount in column E, free-text detail in
// column G.
var StandardLayout = Layout{
	Name:         "standard",
	MetadataRows: 1,
	GiverCol:     0,
	ReceiverCol:  1,
	SlipTypeCol:  2,
	TierCol:      -1,
	AmountCol:    4,
	DetailCol:    6,
}

// TieredLayout matches the newer export carrying an explicit
// Inside/Outside column and three banner rows before the data.
var TieredLayout = Layout{
	Name:         "tiered",
	MetadataRows: 3,
	GiverCol:     0,
	ReceiverCol:  1,
	SlipTypeCol:  2,
	TierCol:      3,
	AmountCol:    4,
	DetailCol:    5,
}

// DetectLayout picks the variant for a decoded table. The tiered export
// is recognized by an inside/outside marker in the header row or in the
// banner rows ahead of the data; anything else is read as the standard
// layout. The choice is made once per file, never mixed mid-file.
func DetectLayout(table *sheet.Table) Layout {
	for _, h := range table.Headers {
		if isTierMarker(h) {
			return TieredLayout
		}
	}
	limit := TieredLayout.MetadataRows
	if len(table.Rows) < limit {
		limit = len(table.Rows)
	}
	for _, row := range table.Rows[:limit] {
		for _, cell := range row {
			if isTierMarker(cell) {
				return TieredLayout
			}
		}
	}
	return StandardLayout
}

func isTierMarker(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "inside") || strings.Contains(s, "outside")
}
