package tagexport

// Style properties sampled for every extracted element.
const (
	PropertyColor           = "color"
	PropertyBackgroundColor = "background-color"
	PropertyFontSize        = "font-size"
)

// ExtractedElement is one extracted element of a page.
type ExtractedElement struct {
	// ElementID is "<tag>-<n>" where n counts accepted elements of the
	// same tag in document order, starting at 1.
	ElementID string

	// Tag is the lower-cased tag name.
	Tag string

	// Content is the resolved image URL for image elements and the
	// trimmed visible text for all other elements.
	Content string

	TextColor       string
	BackgroundColor string
	FontSize        string

	// Notes holds the alt text annotation of image elements, if any.
	Notes string
}

// Document is a parsed element tree that elements can be extracted from.
type Document interface {
	// Elements returns every element of the document in document order.
	Elements() ([]Node, error)
}

// Node is a single element of a Document.
type Node interface {
	// TagName returns the lower-cased tag name.
	TagName() string

	// VisibleText returns the rendered, whitespace-collapsed text.
	VisibleText() (string, error)

	// Attribute returns the value of the named attribute and whether it is set.
	Attribute(name string) (string, bool, error)

	// ResolvedURL returns the absolute URL referenced by the named attribute.
	ResolvedURL(attr string) (string, error)

	// ComputedStyle returns the resolved value of a CSS property.
	ComputedStyle(property string) (string, error)
}

// Kind distinguishes how content is extracted from an element.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

var kinds = map[string]Kind{
	"img": KindImage,
}

// KindOf returns the kind of elements with the given tag name.
func KindOf(tag string) Kind {
	return kinds[tag]
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	default:
		return "text"
	}
}
