package goquery

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// normalizeColor converts a CSS color to the form browsers report for
// computed colors. Values that are not colors are returned as is.
func normalizeColor(v string) string {
	if c, ok := parseColor(v); ok {
		return c
	}
	return v
}

func isColor(v string) bool {
	_, ok := parseColor(v)
	return ok
}

func parseColor(v string) (string, bool) {
	v = strings.TrimSpace(v)
	// The parser reads bare hex digits as a color, CSS does not.
	if v == "" || bareHex(v) {
		return "", false
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return "", false
	}
	r, g, b, _ := c.RGBA255()
	return formatRGBA(int(r), int(g), int(b), c.A), true
}

func bareHex(v string) bool {
	for _, r := range v {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func formatRGBA(r, g, b int, alpha float64) string {
	if alpha >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	a := strconv.FormatFloat(math.Round(math.Max(0, alpha)*100)/100, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, a)
}
