package domain

import (
	"time"
)

// SnapshotKind identifies which relationship matrix a snapshot holds.
type SnapshotKind string

const (
	SnapshotReferral    SnapshotKind = "referral"
	SnapshotOneToOne    SnapshotKind = "one_to_one"
	SnapshotCombination SnapshotKind = "combination"
)

// Combination matrix cell values.
const (
	ComboNeither      = 0
	ComboOTOOnly      = 1
	ComboReferralOnly = 2
	ComboBoth         = 3
)

// Matrix is a square relationship matrix over an ordered member list.
// MemberNames is the index: cell (i, j) relates MemberNames[i] to
// MemberNames[j]. The name list travels with the cells so two matrices
// from different periods can be re-aligned by name rather than position.
type Matrix struct {
	MemberNames []string `json:"member_names"`
	Cells       [][]int  `json:"cells"`
}

// NewMatrix returns a zero matrix indexed by the given names.
func NewMatrix(names []string) Matrix {
	cells := make([][]int, len(names))
	for i := range cells {
		cells[i] = make([]int, len(names))
	}
	return Matrix{MemberNames: names, Cells: cells}
}

// Size returns the number of members the matrix is indexed by.
func (m Matrix) Size() int {
	return len(m.MemberNames)
}

// RowTotal sums row i. Out-of-range rows total zero.
func (m Matrix) RowTotal(i int) int {
	if i < 0 || i >= len(m.Cells) {
		return 0
	}
	total := 0
	for _, v := range m.Cells[i] {
		total += v
	}
	return total
}

// RowUnique counts the nonzero cells in row i, the number of distinct
// counterparts the member has a relationship with.
func (m Matrix) RowUnique(i int) int {
	if i < 0 || i >= len(m.Cells) {
		return 0
	}
	n := 0
	for _, v := range m.Cells[i] {
		if v > 0 {
			n++
		}
	}
	return n
}

// Snapshot is the persisted matrix state for one chapter and period.
type Snapshot struct {
	ID        int64        `json:"id" db:"id"`
	ChapterID int64        `json:"chapter_id" db:"chapter_id"`
	Period    string       `json:"period" db:"period"`
	Kind      SnapshotKind `json:"kind" db:"kind"`
	Matrix    Matrix       `json:"matrix"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// SnapshotSet bundles the three matrices generated for one chapter/period.
type SnapshotSet struct {
	ChapterID   int64  `json:"chapter_id"`
	Period      string `json:"period"`
	Referral    Matrix `json:"referral_matrix"`
	OneToOne    Matrix `json:"oto_matrix"`
	Combination Matrix `json:"combination_matrix"`
}
