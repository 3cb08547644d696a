package testutil

import (
	"fmt"
	"strings"

	"bnitrack/pkg/contracts/domain"
)

// Fixture builders for slips-audit spreadsheet documents. The PALMS export
// is SpreadsheetML 2003: an XML workbook with a .xls extension. Tests across
// the decoder, extractor and service layers share these builders.

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// SlipRow renders a worksheet row with one string cell per value.
func SlipRow(values ...string) string {
	var b strings.Builder
	b.WriteString("<Row>")
	for _, v := range values {
		fmt.Fprintf(&b, `<Cell><Data ss:Type="String">%s</Data></Cell>`, xmlEscaper.Replace(v))
	}
	b.WriteString("</Row>")
	return b.String()
}

// SlipAuditXML wraps a header row and data rows in a workbook document.
func SlipAuditXML(headers []string, dataRows ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>` + "\n")
	b.WriteString(`<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet" xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">` + "\n")
	b.WriteString(` <Worksheet ss:Name="Slips Audit Report">` + "\n")
	b.WriteString(`  <Table>` + "\n")
	b.WriteString("   " + SlipRow(headers...) + "\n")
	for _, row := range dataRows {
		b.WriteString("   " + row + "\n")
	}
	b.WriteString(`  </Table>` + "\n")
	b.WriteString(` </Worksheet>` + "\n")
	b.WriteString(`</Workbook>` + "\n")
	return b.String()
}

// StandardHeaders is the seven-column layout: amount in column 4, the
// within-chapter detail in column 6.
var StandardHeaders = []string{"Giver", "Receiver", "Slip Type", "Date", "Amount", "Status", "Detail"}

// TieredHeaders is the six-column layout with an explicit tier column.
var TieredHeaders = []string{"Giver", "Receiver", "Slip Type", "Inside/Outside", "Amount", "Detail"}

// StandardSlipAudit builds a seven-column document: header, one banner row
// the extractor skips, then the given slip rows.
func StandardSlipAudit(slipRows ...string) string {
	rows := append([]string{SlipRow("Chapter Totals", "", "", "", "", "", "")}, slipRows...)
	return SlipAuditXML(StandardHeaders, rows...)
}

// TieredSlipAudit builds a six-column document: header, three banner rows
// the extractor skips, then the given slip rows.
func TieredSlipAudit(slipRows ...string) string {
	rows := append([]string{
		SlipRow("Printed On: 2026-08-01", "", "", "", "", ""),
		SlipRow("Region 14", "", "", "", "", ""),
		SlipRow("", "", "", "", "", ""),
	}, slipRows...)
	return SlipAuditXML(TieredHeaders, rows...)
}

// SampleRoster returns five active members of one chapter, covering the
// names the slip fixtures reference.
func SampleRoster(chapterID int64) []domain.Member {
	names := []struct{ first, last string }{
		{"Alice", "Johnson"},
		{"Bob", "Smith"},
		{"Carol", "White"},
		{"David", "Brown"},
		{"Emma", "Davis"},
	}

	members := make([]domain.Member, 0, len(names))
	for i, n := range names {
		members = append(members, domain.Member{
			ID:        int64(i + 1),
			ChapterID: chapterID,
			FirstName: n.first,
			LastName:  n.last,
			IsActive:  true,
		})
	}
	return members
}
