// Package exporter writes period reports as CSV files.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers
// and a UTF-8 BOM for Excel compatibility.
//
// MatrixExporter: Writes the referral, one-to-one and combination
// matrices of a period report, one file per matrix.
//
// SummaryExporter: Writes the per-member activity and closed-business
// roll-ups.
//
// Example usage:
//
//	matrices := exporter.NewMatrixExporter("/path/to/out")
//	files, err := matrices.ExportPeriodMatrices(report, ".")
//
//	summaries := exporter.NewSummaryExporter("/path/to/out")
//	more, err := summaries.ExportPeriodSummaries(report, ".")
package exporter
