// Package shared holds utilities used across the codebase that belong
// to no specific domain or architectural layer.
//
// The testutil subpackage provides slog capture handlers for asserting
// on structured log output, and the SpreadsheetML fixture builders the
// decoder, extractor and service tests share.
package shared
