package exporter

import (
	"fmt"
	"path/filepath"

	"bnitrack/pkg/contracts/domain"
)

// SummaryExporter writes per-member activity roll-ups as CSV files.
type SummaryExporter struct {
	writer *CSVWriter
}

// NewSummaryExporter creates a summary exporter writing under baseDir.
func NewSummaryExporter(baseDir string) *SummaryExporter {
	return &SummaryExporter{writer: NewCSVWriter(baseDir)}
}

// ExportMemberSummaries writes the combined activity roll-up, one row
// per member.
func (e *SummaryExporter) ExportMemberSummaries(summaries []domain.MemberActivitySummary, filePath string) error {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, e.memberSummaryRow(s))
	}
	return e.writer.WriteSimpleCSV(filePath, e.memberSummaryHeaders(), records)
}

// ExportTYFCBSummaries writes the closed-business roll-up, one row per
// member.
func (e *SummaryExporter) ExportTYFCBSummaries(summaries []domain.TYFCBMemberSummary, filePath string) error {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, e.tyfcbRow(s))
	}
	return e.writer.WriteSimpleCSV(filePath, e.tyfcbHeaders(), records)
}

// ExportPeriodSummaries writes both roll-ups of a period report into
// outputDir and returns the written file names.
func (e *SummaryExporter) ExportPeriodSummaries(report *domain.PeriodReport, outputDir string) ([]string, error) {
	prefix := fmt.Sprintf("%s_%s", sanitizeName(report.ChapterName), report.Period)

	memberFile := prefix + "_member_summaries.csv"
	if err := e.ExportMemberSummaries(report.MemberSummaries, filepath.Join(outputDir, memberFile)); err != nil {
		return nil, err
	}

	tyfcbFile := prefix + "_tyfcb.csv"
	if err := e.ExportTYFCBSummaries(report.TYFCBSummaries, filepath.Join(outputDir, tyfcbFile)); err != nil {
		return []string{memberFile}, err
	}

	return []string{memberFile, tyfcbFile}, nil
}

func (e *SummaryExporter) memberSummaryHeaders() []string {
	return []string{
		"Member",
		"Referrals Given", "Referrals Received",
		"Unique Referrals Given", "Unique Referrals Received",
		"One-to-Ones", "Unique One-to-Ones",
		"TYFCB Count Received", "TYFCB Amount Received",
		"TYFCB Count Given", "TYFCB Amount Given",
	}
}

func (e *SummaryExporter) memberSummaryRow(s domain.MemberActivitySummary) []string {
	return []string{
		s.Member,
		formatInt(s.ReferralsGiven), formatInt(s.ReferralsReceived),
		formatInt(s.UniqueReferralsGiven), formatInt(s.UniqueReferralsReceived),
		formatInt(s.OneToOnes), formatInt(s.UniqueOneToOnes),
		formatInt(s.TYFCBCountReceived), formatAmount(s.TYFCBAmountReceived),
		formatInt(s.TYFCBCountGiven), formatAmount(s.TYFCBAmountGiven),
	}
}

func (e *SummaryExporter) tyfcbHeaders() []string {
	return []string{
		"Member",
		"Received Count", "Received Amount",
		"Given Count", "Given Amount",
		"Net Amount",
	}
}

func (e *SummaryExporter) tyfcbRow(s domain.TYFCBMemberSummary) []string {
	return []string{
		s.Member,
		formatInt(s.ReceivedCount), formatAmount(s.ReceivedAmount),
		formatInt(s.GivenCount), formatAmount(s.GivenAmount),
		formatAmount(s.NetAmount),
	}
}
