package domain

import (
	"github.com/shopspring/decimal"
)

// InteractionKind identifies the kind of slip a spreadsheet row produced.
type InteractionKind string

const (
	KindReferral InteractionKind = "referral"
	KindOneToOne InteractionKind = "one_to_one"
	KindTYFCB    InteractionKind = "tyfcb"
)

// Interaction is one extracted activity record. Records are append-only
// facts scoped to the chapter and period they were extracted for; members
// are referenced by normalized name, the chapter-scoped identity.
//
// Field use by kind:
//   - referral:   Giver -> Receiver, directed
//   - one_to_one: Giver/Receiver are the two participants, undirected
//   - tyfcb:      Receiver required; Giver empty means business sourced
//     outside the chapter; Amount/Currency/WithinChapter are set
type Interaction struct {
	ID            int64           `json:"id" db:"id"`
	ChapterID     int64           `json:"chapter_id" db:"chapter_id"`
	Period        string          `json:"period" db:"period"`
	Kind          InteractionKind `json:"kind" db:"kind"`
	Giver         string          `json:"giver,omitempty" db:"giver_norm"`
	Receiver      string          `json:"receiver" db:"receiver_norm"`
	Amount        decimal.Decimal `json:"amount,omitempty" db:"amount"`
	Currency      string          `json:"currency,omitempty" db:"currency"`
	WithinChapter bool            `json:"within_chapter" db:"within_chapter"`
	Detail        string          `json:"detail,omitempty" db:"detail"`
}

// Participants returns the two sides of the record. For one-to-ones the
// order carries no meaning.
func (r Interaction) Participants() (string, string) {
	return r.Giver, r.Receiver
}
