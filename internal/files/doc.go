// Package files discovers slip-audit workbooks on disk and archives
// them once processed.
//
// This package contains two main components:
//
// Discovery: Finds slip-audit workbooks in an inbox directory and
// parses the chapter name and reporting period out of each filename.
// The expected naming convention is <chapter>_YYYY-MM.xls, with
// underscores standing in for spaces in the chapter name.
//
// Manager: Moves processed workbooks into an archive directory so a
// re-run of the importer does not pick them up again.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	reports, skipped, err := discovery.FindReportFiles("inbox")
//
//	manager := files.NewManager("/path/to/base/processed")
//	archived, err := manager.Archive(reports[0].Path)
package files
