package tagexport_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/fwojciec/tagexport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSV(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields header only", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, tagexport.CSVHeader+"\n", tagexport.ToCSV(nil))
		assert.Equal(t, tagexport.CSVHeader+"\n", tagexport.ToCSV([]*tagexport.ExtractedElement{}))
	})

	t.Run("header and marker keep the established column names", func(t *testing.T) {
		t.Parallel()

		got := tagexport.ToCSV([]*tagexport.ExtractedElement{{ElementID: "p-1", Tag: "p", Content: "x"}})

		assert.Equal(t,
			"ID,Tag,Inhalt,Text Farbe,Hintergrundfarbe,Schriftgröße,Notizen,Änderung\n"+
				`p-1,"p","x","","","","","Nein"`+"\n",
			got)
	})

	t.Run("writes rows with fixed column order and quoting", func(t *testing.T) {
		t.Parallel()

		elements := []*tagexport.ExtractedElement{
			{
				ElementID:       "h1-1",
				Tag:             "h1",
				Content:         "Title",
				TextColor:       "rgb(0, 0, 0)",
				BackgroundColor: "rgba(0, 0, 0, 0)",
				FontSize:        "32px",
			},
			{
				ElementID:       "img-1",
				Tag:             "img",
				Content:         "https://example.com/x.png",
				TextColor:       "rgb(0, 0, 0)",
				BackgroundColor: "rgba(0, 0, 0, 0)",
				FontSize:        "16px",
				Notes:           "Alt-Text: pic",
			},
		}

		got := tagexport.ToCSV(elements)

		want := "ID,Tag,Content,Text Color,Background Color,Font Size,Notes,Modified\n" +
			`h1-1,"h1","Title","rgb(0, 0, 0)","rgba(0, 0, 0, 0)","32px","","Nein"` + "\n" +
			`img-1,"img","https://example.com/x.png","rgb(0, 0, 0)","rgba(0, 0, 0, 0)","16px","Alt-Text: pic","Nein"` + "\n"
		assert.Equal(t, want, got)
	})

	t.Run("doubles quotes in content and notes", func(t *testing.T) {
		t.Parallel()

		elements := []*tagexport.ExtractedElement{
			{ElementID: "p-1", Tag: "p", Content: `He said "hi"`, Notes: `Alt-Text: "q"`},
		}

		got := tagexport.ToCSV(elements)

		assert.Contains(t, got, `"He said ""hi"""`)
		assert.Contains(t, got, `"Alt-Text: ""q"""`)
	})

	t.Run("round-trips through a standard CSV reader", func(t *testing.T) {
		t.Parallel()

		elements := []*tagexport.ExtractedElement{
			{
				ElementID:       "p-1",
				Tag:             "p",
				Content:         "He said \"hi\", then\nleft",
				TextColor:       "rgb(255, 0, 0)",
				BackgroundColor: "rgb(255, 255, 255)",
				FontSize:        "14px",
				Notes:           "",
			},
		}

		r := csv.NewReader(strings.NewReader(tagexport.ToCSV(elements)))
		records, err := r.ReadAll()

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"ID", "Tag", "Content", "Text Color", "Background Color", "Font Size", "Notes", "Modified"}, records[0])
		assert.Equal(t, []string{"p-1", "p", "He said \"hi\", then\nleft", "rgb(255, 0, 0)", "rgb(255, 255, 255)", "14px", "", "Nein"}, records[1])
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		elements := []*tagexport.ExtractedElement{
			{ElementID: "p-1", Tag: "p", Content: "A"},
			{ElementID: "p-2", Tag: "p", Content: "B"},
		}

		assert.Equal(t, tagexport.ToCSV(elements), tagexport.ToCSV(elements))
	})
}
