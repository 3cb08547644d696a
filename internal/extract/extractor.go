// Package extract classifies decoded slip-audit rows into interaction
// records. Row-level problems never fail a run; they accumulate as
// warnings on the result so an operator can judge how much of the file
// was usable.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "bnitrack/internal/errors"
	"bnitrack/internal/namematch"
	"bnitrack/internal/sheet"
	"bnitrack/pkg/contracts/domain"
)

// DefaultCurrency is stamped on closed-business records; PALMS amount
// cells carry no currency marker of their own.
const DefaultCurrency = "AED"

// slipClasses orders classification so "referral" wins before the looser
// substring checks; "ref" also occurs inside "referral".
var slipClasses = []struct {
	kind     domain.InteractionKind
	variants []string
}{
	{domain.KindReferral, []string{"referral", "ref"}},
	{domain.KindOneToOne, []string{"one to one", "oto", "1to1", "1-to-1", "one-to-one"}},
	{domain.KindTYFCB, []string{"tyfcb", "thank you for closed business", "closed business"}},
}

// classifySlip maps a raw slip-type cell to an interaction kind by
// case-insensitive substring match.
func classifySlip(raw string) (domain.InteractionKind, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, class := range slipClasses {
		for _, v := range class.variants {
			if strings.Contains(s, v) {
				return class.kind, true
			}
		}
	}
	return "", false
}

// Config holds extraction options.
type Config struct {
	Currency string
}

// Extractor turns decoded slip-audit tables into interaction records.
// It holds no per-run state, so one instance is safe to share across
// concurrent ingestion runs.
type Extractor struct {
	logger   *slog.Logger
	currency string
}

// New creates an extractor with the given configuration.
func New(logger *slog.Logger, config Config) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}
	return &Extractor{logger: logger, currency: config.Currency}
}

// Result holds everything one extraction run produced.
type Result struct {
	Interactions []domain.Interaction
	Warnings     []string
	Referrals    int
	OneToOnes    int
	TYFCBs       int
	Processed    int
}

// Extract classifies every data row of table and produces the chapter's
// interaction records for one period. The roster builds the name lookup
// for this run. Row-level problems (unknown names, self pairs, bad
// amounts) become warnings and the row is skipped; only a structurally
// unusable table fails the run.
func (e *Extractor) Extract(ctx context.Context, table *sheet.Table, roster []domain.Member, chapterID int64, period string) (*Result, error) {
	if table.NumColumns() < 3 {
		return nil, apperrors.NewParsingError("Excel file must have at least 3 columns", nil)
	}

	layout := DetectLayout(table)
	e.logger.InfoContext(ctx, "extracting interactions",
		slog.String("layout", layout.Name),
		slog.String("period", period),
		slog.Int("rows", len(table.Rows)))

	run := &run{
		layout:   layout,
		lookup:   namematch.NewLookup(roster),
		chapter:  chapterID,
		period:   period,
		currency: e.currency,
		result:   &Result{},
		seenOTO:  make(map[string]bool),
	}

	for i, row := range table.Rows {
		if i < layout.MetadataRows {
			continue
		}
		run.processRow(row, i+1)
	}

	e.logger.InfoContext(ctx, "extraction complete",
		slog.String("period", period),
		slog.Int("referrals", run.result.Referrals),
		slog.Int("one_to_ones", run.result.OneToOnes),
		slog.Int("tyfcbs", run.result.TYFCBs),
		slog.Int("warnings", len(run.result.Warnings)))

	return run.result, nil
}

// run is the state of a single extraction pass. A fresh run per file
// keeps the Extractor itself stateless.
type run struct {
	layout   Layout
	lookup   *namematch.Lookup
	chapter  int64
	period   string
	currency string
	result   *Result
	seenOTO  map[string]bool
}

func (r *run) warnf(format string, args ...any) {
	r.result.Warnings = append(r.result.Warnings, fmt.Sprintf(format, args...))
}

// cell reads a column defensively; layouts name columns the table may
// not have.
func (r *run) cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// resolve maps a raw name through the roster lookup, surfacing a warning
// when the hit came through the weak first-name key.
func (r *run) resolve(raw string, rowNum int) (domain.Member, bool) {
	match, ok := r.lookup.Resolve(raw)
	if !ok {
		return domain.Member{}, false
	}
	if match.Weak {
		r.warnf("Row %d: Name '%s' matched by first name only", rowNum, raw)
	}
	return match.Member, true
}

func (r *run) processRow(row []string, rowNum int) {
	slipType := r.cell(row, r.layout.SlipTypeCol)
	if slipType == "" {
		return
	}

	kind, ok := classifySlip(slipType)
	if !ok {
		r.warnf("Row %d: Unknown slip type '%s'", rowNum, slipType)
		return
	}
	r.result.Processed++

	giver := r.cell(row, r.layout.GiverCol)
	receiver := r.cell(row, r.layout.ReceiverCol)

	switch kind {
	case domain.KindReferral:
		r.referral(rowNum, giver, receiver)
	case domain.KindOneToOne:
		r.oneToOne(rowNum, giver, receiver)
	case domain.KindTYFCB:
		r.tyfcb(row, rowNum, giver, receiver)
	}
}

func (r *run) referral(rowNum int, giverName, receiverName string) {
	if giverName == "" || receiverName == "" {
		r.warnf("Row %d: Referral missing giver or receiver name", rowNum)
		return
	}

	giver, ok := r.resolve(giverName, rowNum)
	if !ok {
		r.warnf("Row %d: Could not find giver '%s'", rowNum, giverName)
		return
	}
	receiver, ok := r.resolve(receiverName, rowNum)
	if !ok {
		r.warnf("Row %d: Could not find receiver '%s'", rowNum, receiverName)
		return
	}

	giverKey, receiverKey := namematch.MemberKey(giver), namematch.MemberKey(receiver)
	if giverKey == receiverKey {
		r.warnf("Row %d: Self-referral detected, skipping", rowNum)
		return
	}

	r.result.Interactions = append(r.result.Interactions, domain.Interaction{
		ChapterID: r.chapter,
		Period:    r.period,
		Kind:      domain.KindReferral,
		Giver:     giverKey,
		Receiver:  receiverKey,
	})
	r.result.Referrals++
}

func (r *run) oneToOne(rowNum int, firstName, secondName string) {
	if firstName == "" || secondName == "" {
		r.warnf("Row %d: One-to-one missing member names", rowNum)
		return
	}

	first, ok := r.resolve(firstName, rowNum)
	if !ok {
		r.warnf("Row %d: Could not find member '%s'", rowNum, firstName)
		return
	}
	second, ok := r.resolve(secondName, rowNum)
	if !ok {
		r.warnf("Row %d: Could not find member '%s'", rowNum, secondName)
		return
	}

	firstKey, secondKey := namematch.MemberKey(first), namematch.MemberKey(second)
	if firstKey == secondKey {
		r.warnf("Row %d: Self-meeting detected, skipping", rowNum)
		return
	}

	pair := pairKey(firstKey, secondKey)
	if r.seenOTO[pair] {
		r.warnf("Row %d: Duplicate one-to-one skipped (already exists)", rowNum)
		return
	}
	r.seenOTO[pair] = true

	r.result.Interactions = append(r.result.Interactions, domain.Interaction{
		ChapterID: r.chapter,
		Period:    r.period,
		Kind:      domain.KindOneToOne,
		Giver:     firstKey,
		Receiver:  secondKey,
	})
	r.result.OneToOnes++
}

func (r *run) tyfcb(row []string, rowNum int, giverName, receiverName string) {
	if receiverName == "" {
		r.warnf("Row %d: TYFCB missing receiver name", rowNum)
		return
	}

	receiver, ok := r.resolve(receiverName, rowNum)
	if !ok {
		r.warnf("Row %d: Could not find receiver '%s'", rowNum, receiverName)
		return
	}
	receiverKey := namematch.MemberKey(receiver)

	// The giver is optional; an unresolvable name degrades to business
	// sourced outside the chapter rather than dropping the row.
	giverKey := ""
	if giverName != "" {
		if giver, found := r.resolve(giverName, rowNum); found {
			giverKey = namematch.MemberKey(giver)
		} else {
			r.warnf("Row %d: Could not find giver '%s'", rowNum, giverName)
		}
	}
	if giverKey != "" && giverKey == receiverKey {
		r.warnf("Row %d: Self-TYFCB detected, skipping", rowNum)
		return
	}

	amountStr := r.cell(row, r.layout.AmountCol)
	amount := parseAmount(amountStr)
	if amount.Sign() <= 0 {
		r.warnf("Row %d: Invalid TYFCB amount: %s", rowNum, amountStr)
		return
	}

	r.result.Interactions = append(r.result.Interactions, domain.Interaction{
		ChapterID:     r.chapter,
		Period:        r.period,
		Kind:          domain.KindTYFCB,
		Giver:         giverKey,
		Receiver:      receiverKey,
		Amount:        amount,
		Currency:      r.currency,
		WithinChapter: r.withinChapter(row),
		Detail:        r.cell(row, r.layout.DetailCol),
	})
	r.result.TYFCBs++
}

// withinChapter derives the inside/outside flag. The tiered layout says
// it outright; the standard layout only implies it, a free-text detail
// marking business sourced outside the chapter.
func (r *run) withinChapter(row []string) bool {
	if r.layout.TierCol >= 0 {
		tier := strings.ToLower(r.cell(row, r.layout.TierCol))
		return !strings.Contains(tier, "outside")
	}
	return r.cell(row, r.layout.DetailCol) == ""
}

// parseAmount strips currency symbols and thousands separators from a
// PALMS amount cell. Unparseable input maps to zero, which the caller
// rejects as non-positive.
func parseAmount(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
