package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"bnitrack/pkg/contracts/domain"
)

// MatrixExporter writes relationship matrices as CSV files.
type MatrixExporter struct {
	writer *CSVWriter
}

// NewMatrixExporter creates a matrix exporter writing under baseDir.
func NewMatrixExporter(baseDir string) *MatrixExporter {
	return &MatrixExporter{writer: NewCSVWriter(baseDir)}
}

// ExportMatrix writes one matrix. Each row carries the giver name and
// one count per receiver; withTotals appends the row total and the
// number of distinct counterparts.
func (e *MatrixExporter) ExportMatrix(m *domain.Matrix, filePath string, withTotals bool) error {
	if m == nil {
		return fmt.Errorf("nil matrix for %s", filePath)
	}

	records := make([][]string, 0, m.Size())
	for i := range m.MemberNames {
		records = append(records, e.matrixRow(m, i, withTotals))
	}

	return e.writer.WriteSimpleCSV(filePath, e.matrixHeaders(m, withTotals), records)
}

// ExportPeriodMatrices writes the three matrices of a period report
// into outputDir and returns the written file names. The combination
// matrix holds category codes, so it gets no total columns.
func (e *MatrixExporter) ExportPeriodMatrices(report *domain.PeriodReport, outputDir string) ([]string, error) {
	exports := []struct {
		name       string
		matrix     *domain.Matrix
		withTotals bool
	}{
		{"referral_matrix", report.Referral, true},
		{"one_to_one_matrix", report.OneToOne, true},
		{"combination_matrix", report.Combination, false},
	}

	var written []string
	for _, exp := range exports {
		if exp.matrix == nil {
			continue
		}
		name := fmt.Sprintf("%s_%s_%s.csv", sanitizeName(report.ChapterName), report.Period, exp.name)
		if err := e.ExportMatrix(exp.matrix, filepath.Join(outputDir, name), exp.withTotals); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	slog.Debug("exported period matrices",
		slog.String("chapter", report.ChapterName),
		slog.String("period", report.Period),
		slog.Int("files", len(written)))

	return written, nil
}

func (e *MatrixExporter) matrixHeaders(m *domain.Matrix, withTotals bool) []string {
	headers := make([]string, 0, m.Size()+3)
	headers = append(headers, "Member")
	headers = append(headers, m.MemberNames...)
	if withTotals {
		headers = append(headers, "Total", "Unique")
	}
	return headers
}

func (e *MatrixExporter) matrixRow(m *domain.Matrix, i int, withTotals bool) []string {
	row := make([]string, 0, m.Size()+3)
	row = append(row, m.MemberNames[i])
	for _, v := range m.Cells[i] {
		row = append(row, formatInt(v))
	}
	if withTotals {
		row = append(row, formatInt(m.RowTotal(i)), formatInt(m.RowUnique(i)))
	}
	return row
}

// sanitizeName makes a chapter name safe for file names.
func sanitizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
