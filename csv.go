package tagexport

import "strings"

// CSVHeader is the first line of every export. Spreadsheets built on
// earlier exports key on these exact column names.
const CSVHeader = "ID,Tag,Inhalt,Text Farbe,Hintergrundfarbe,Schriftgröße,Notizen,Änderung"

// UnmodifiedMarker fills the Änderung column of every row.
const UnmodifiedMarker = "Nein"

// ToCSV serializes elements as CSV. The ID column is written bare, every
// other column is quoted. Only Content and Notes have quotes doubled.
// Every line, including the last, ends with "\n".
func ToCSV(elements []*ExtractedElement) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, e := range elements {
		b.WriteString(e.ElementID)
		writeQuoted(&b, e.Tag)
		writeQuoted(&b, escapeQuotes(e.Content))
		writeQuoted(&b, e.TextColor)
		writeQuoted(&b, e.BackgroundColor)
		writeQuoted(&b, e.FontSize)
		writeQuoted(&b, escapeQuotes(e.Notes))
		writeQuoted(&b, UnmodifiedMarker)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeQuoted(b *strings.Builder, field string) {
	b.WriteString(`,"`)
	b.WriteString(field)
	b.WriteByte('"')
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
