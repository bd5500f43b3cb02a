package tagexport

import (
	"fmt"
	"strconv"
	"strings"
)

// AltTextPrefix prefixes the alt text stored in the notes of image elements.
const AltTextPrefix = "Alt-Text: "

// contentPolicy extracts the content and notes of one kind of element.
// keep is false when the element must be left out of the result.
type contentPolicy interface {
	content(n Node) (content, notes string, keep bool, err error)
}

var policies = map[Kind]contentPolicy{
	KindText:  textPolicy{},
	KindImage: imagePolicy{},
}

type textPolicy struct{}

func (textPolicy) content(n Node) (string, string, bool, error) {
	text, err := n.VisibleText()
	if err != nil {
		return "", "", false, err
	}
	text = strings.TrimSpace(text)
	return text, "", text != "", nil
}

// imagePolicy never drops an element, even when its URL is empty.
type imagePolicy struct{}

func (imagePolicy) content(n Node) (string, string, bool, error) {
	src, err := n.ResolvedURL("src")
	if err != nil {
		return "", "", false, err
	}
	alt, ok, err := n.Attribute("alt")
	if err != nil {
		return "", "", false, err
	}
	var notes string
	if ok && alt != "" {
		notes = AltTextPrefix + alt
	}
	return src, notes, true, nil
}

// Extract walks doc in document order and returns the elements whose tag is
// part of tags. Text elements without visible text are skipped and do not
// advance the per-tag counter. A nil document yields no elements.
func Extract(doc Document, tags Selection) ([]*ExtractedElement, error) {
	if doc == nil || tags.Len() == 0 {
		return nil, nil
	}

	nodes, err := doc.Elements()
	if err != nil {
		return nil, fmt.Errorf("listing elements: %w", err)
	}

	counters := make(map[string]int, tags.Len())
	var elements []*ExtractedElement
	for _, n := range nodes {
		tag := n.TagName()
		if !tags.Contains(tag) {
			continue
		}

		content, notes, keep, err := policies[KindOf(tag)].content(n)
		if err != nil {
			return nil, fmt.Errorf("extracting %s content: %w", tag, err)
		}
		if !keep {
			continue
		}

		e := &ExtractedElement{
			Tag:     tag,
			Content: content,
			Notes:   notes,
		}
		if e.TextColor, err = n.ComputedStyle(PropertyColor); err != nil {
			return nil, fmt.Errorf("resolving %s style: %w", tag, err)
		}
		if e.BackgroundColor, err = n.ComputedStyle(PropertyBackgroundColor); err != nil {
			return nil, fmt.Errorf("resolving %s style: %w", tag, err)
		}
		if e.FontSize, err = n.ComputedStyle(PropertyFontSize); err != nil {
			return nil, fmt.Errorf("resolving %s style: %w", tag, err)
		}

		counters[tag]++
		e.ElementID = tag + "-" + strconv.Itoa(counters[tag])
		elements = append(elements, e)
	}
	return elements, nil
}
