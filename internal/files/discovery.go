package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ReportFile represents a slip-audit workbook discovered on disk.
// Chapter and Period come from the filename.
type ReportFile struct {
	Path    string
	Name    string
	Chapter string
	Period  string
	Size    int64
	ModTime time.Time
}

// Discovery finds slip-audit workbooks under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// ParseReportName splits a workbook filename into chapter name and
// reporting period. The expected form is <chapter>_YYYY-MM.xls or
// .xlsx, with underscores standing in for spaces in the chapter name.
func ParseReportName(name string) (chapter, period string, err error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".xls" && ext != ".xlsx" {
		return "", "", fmt.Errorf("not a workbook file: %s", name)
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))

	idx := strings.LastIndex(base, "_")
	if idx < 1 || idx == len(base)-1 {
		return "", "", fmt.Errorf("cannot split chapter and period in %q", name)
	}

	chapter = strings.TrimSpace(strings.ReplaceAll(base[:idx], "_", " "))
	period = base[idx+1:]

	if chapter == "" {
		return "", "", fmt.Errorf("empty chapter name in %q", name)
	}
	if _, perr := time.Parse("2006-01", period); perr != nil {
		return "", "", fmt.Errorf("invalid period %q in %q", period, name)
	}
	return chapter, period, nil
}

// FindReportFiles returns every parseable workbook in the specified
// directory, sorted by period and then chapter so older months import
// first. Workbooks whose names do not follow the naming convention are
// returned separately so the caller can report them.
func (d *Discovery) FindReportFiles(dir string) ([]ReportFile, []string, error) {
	// If dir is already absolute, use it directly
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []ReportFile
	var skipped []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		chapter, period, err := ParseReportName(name)
		if err != nil {
			ext := strings.ToLower(filepath.Ext(name))
			if ext == ".xls" || ext == ".xlsx" {
				skipped = append(skipped, name)
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, ReportFile{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Chapter: chapter,
			Period:  period,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Period != files[j].Period {
			return files[i].Period < files[j].Period
		}
		return files[i].Chapter < files[j].Chapter
	})

	return files, skipped, nil
}

// Periods returns the distinct periods covered by the given files, in
// ascending order.
func Periods(files []ReportFile) []string {
	seen := make(map[string]struct{}, len(files))
	var periods []string
	for _, f := range files {
		if _, ok := seen[f.Period]; ok {
			continue
		}
		seen[f.Period] = struct{}{}
		periods = append(periods, f.Period)
	}
	sort.Strings(periods)
	return periods
}
