package tagexport

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultTags is the tag selection used when the caller provides none.
const DefaultTags = "h1,h2,h3,h4,h5,h6,p,img"

// tagNameRe follows the HTML tokenizer: a tag name runs until whitespace,
// a slash or a closing angle bracket.
var tagNameRe = regexp.MustCompile(`^[^\s/>,]+$`)

// Selection is a set of lower-cased tag names to extract.
// The zero value is an empty selection and matches nothing.
type Selection map[string]struct{}

// NewSelection returns a Selection containing the given tag names as is.
func NewSelection(tags ...string) Selection {
	s := make(Selection, len(tags))
	for _, tag := range tags {
		s[tag] = struct{}{}
	}
	return s
}

// ParseSelection parses a comma-separated list of tag names.
// Names are trimmed and lower-cased; duplicates collapse.
// Returns EINVALID when the list is empty or a name is not a valid tag name.
func ParseSelection(list string) (Selection, error) {
	s := make(Selection)
	for _, part := range strings.Split(list, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		if !tagNameRe.MatchString(tag) {
			return nil, Errorf(EINVALID, "invalid tag name %q", part)
		}
		s[tag] = struct{}{}
	}
	if len(s) == 0 {
		return nil, Errorf(EINVALID, "select at least one tag")
	}
	return s, nil
}

// Contains reports whether tag is part of the selection.
func (s Selection) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of selected tags.
func (s Selection) Len() int {
	return len(s)
}

// Tags returns the selected tag names in sorted order.
func (s Selection) Tags() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// String returns the selection as a comma-separated list.
func (s Selection) String() string {
	return strings.Join(s.Tags(), ",")
}
