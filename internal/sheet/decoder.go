// Package sheet decodes slips-audit report spreadsheets into rectangular
// tables. PALMS exports carry a .xls extension but are usually SpreadsheetML
// 2003 XML; genuine OOXML workbooks are handled through excelize.
package sheet

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"unicode"

	"github.com/xuri/excelize/v2"

	apperrors "bnitrack/internal/errors"
)

// Table is the rectangular result of decoding a report spreadsheet. Every
// row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NumColumns reports the table width.
func (t *Table) NumColumns() int {
	return len(t.Headers)
}

// Decode sniffs the document format and decodes it. Sparse SpreadsheetML
// documents start with an XML declaration; anything else is treated as a
// binary workbook.
func Decode(data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperrors.NewParsingError("Excel file is empty", nil)
	}
	if isSpreadsheetML(data) {
		return decodeSparse(data)
	}
	return decodeDense(data)
}

// DecodeFile reads and decodes the spreadsheet at path.
func DecodeFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("Failed to read Excel file", err).
			WithContext("file_path", path)
	}
	return Decode(data)
}

// isSpreadsheetML reports whether the first non-blank content is an XML
// declaration.
func isSpreadsheetML(data []byte) bool {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	return bytes.HasPrefix(trimmed, []byte("<?xml"))
}

// SpreadsheetML 2003 element mapping. Cells may carry a 1-based ss:Index
// attribute that skips the empty cells before them.
type xmlWorkbook struct {
	Worksheets []xmlWorksheet `xml:"urn:schemas-microsoft-com:office:spreadsheet Worksheet"`
}

type xmlWorksheet struct {
	Table *xmlTable `xml:"urn:schemas-microsoft-com:office:spreadsheet Table"`
}

type xmlTable struct {
	Rows []xmlRow `xml:"urn:schemas-microsoft-com:office:spreadsheet Row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"urn:schemas-microsoft-com:office:spreadsheet Cell"`
}

type xmlCell struct {
	Index int    `xml:"urn:schemas-microsoft-com:office:spreadsheet Index,attr"`
	Data  string `xml:"urn:schemas-microsoft-com:office:spreadsheet Data"`
}

func decodeSparse(data []byte) (*Table, error) {
	var wb xmlWorkbook
	if err := xml.Unmarshal(data, &wb); err != nil {
		return nil, apperrors.NewParsingError("Failed to parse XML file", err)
	}

	if len(wb.Worksheets) == 0 {
		return nil, apperrors.NewParsingError("No worksheet found in XML file", nil)
	}
	table := wb.Worksheets[0].Table
	if table == nil {
		return nil, apperrors.NewParsingError("No table found in worksheet", nil)
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			// ss:Index restarts the cursor; fill the gap with empties.
			if cell.Index > 0 {
				for len(cells) < cell.Index-1 {
					cells = append(cells, "")
				}
			}
			cells = append(cells, cell.Data)
		}
		rows = append(rows, cells)
	}

	return rectangle(rows, "XML file")
}

func decodeDense(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewParsingError("Failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("No worksheet found in Excel file", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("Failed to read worksheet rows", err)
	}

	return rectangle(rows, "Excel file")
}

// rectangle turns ragged rows into a fixed-width table: the first row
// becomes the header, short headers gain synthetic Column_N names and short
// rows trailing empty cells.
func rectangle(rows [][]string, source string) (*Table, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("No headers found in %s", source), nil)
	}

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if maxCols == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("No headers found in %s", source), nil)
	}

	headers := rows[0]
	for len(headers) < maxCols {
		headers = append(headers, fmt.Sprintf("Column_%d", len(headers)))
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		for len(row) < maxCols {
			row = append(row, "")
		}
		dataRows = append(dataRows, row)
	}

	return &Table{Headers: headers, Rows: dataRows}, nil
}
