package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestParseReportName(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantChapter string
		wantPeriod  string
		wantErr     bool
	}{
		{
			name:        "single word chapter",
			filename:    "Momentum_2026-05.xls",
			wantChapter: "Momentum",
			wantPeriod:  "2026-05",
		},
		{
			name:        "multi word chapter",
			filename:    "Dubai_Stars_2026-05.xlsx",
			wantChapter: "Dubai Stars",
			wantPeriod:  "2026-05",
		},
		{
			name:        "uppercase extension",
			filename:    "Momentum_2026-05.XLS",
			wantChapter: "Momentum",
			wantPeriod:  "2026-05",
		},
		{
			name:     "missing period",
			filename: "Momentum.xls",
			wantErr:  true,
		},
		{
			name:     "invalid period",
			filename: "Momentum_May2026.xls",
			wantErr:  true,
		},
		{
			name:     "wrong extension",
			filename: "Momentum_2026-05.csv",
			wantErr:  true,
		},
		{
			name:     "no chapter",
			filename: "_2026-05.xls",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapter, period, err := ParseReportName(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChapter, chapter)
			assert.Equal(t, tt.wantPeriod, period)
		})
	}
}

func TestFindReportFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "Momentum_2026-05.xls")
	writeTestFile(t, dir, "Momentum_2026-04.xls")
	writeTestFile(t, dir, "Dubai_Stars_2026-05.xlsx")
	writeTestFile(t, dir, "notes.txt")
	writeTestFile(t, dir, "orphan.xls")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	discovery := NewDiscovery(dir)
	reports, skipped, err := discovery.FindReportFiles(dir)
	require.NoError(t, err)

	require.Len(t, reports, 3)
	assert.Equal(t, "2026-04", reports[0].Period)
	assert.Equal(t, "Momentum", reports[0].Chapter)
	assert.Equal(t, "Dubai Stars", reports[1].Chapter)
	assert.Equal(t, "Momentum", reports[2].Chapter)
	assert.Equal(t, filepath.Join(dir, "Momentum_2026-04.xls"), reports[0].Path)

	// Unparseable workbooks are reported, other files just ignored.
	assert.Equal(t, []string{"orphan.xls"}, skipped)
}

func TestFindReportFilesRelativeDir(t *testing.T) {
	base := t.TempDir()
	inbox := filepath.Join(base, "inbox")
	require.NoError(t, os.Mkdir(inbox, 0o755))
	writeTestFile(t, inbox, "Momentum_2026-05.xls")

	discovery := NewDiscovery(base)
	reports, _, err := discovery.FindReportFiles("inbox")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, filepath.Join(inbox, "Momentum_2026-05.xls"), reports[0].Path)
}

func TestFindReportFilesMissingDir(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())
	_, _, err := discovery.FindReportFiles("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")
}

func TestPeriods(t *testing.T) {
	reports := []ReportFile{
		{Period: "2026-05"},
		{Period: "2026-03"},
		{Period: "2026-05"},
	}
	assert.Equal(t, []string{"2026-03", "2026-05"}, Periods(reports))
	assert.Empty(t, Periods(nil))
}
