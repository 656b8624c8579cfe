package blocks

import (
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"
)

// Shared value primitives used by every block schema: hex colors, pixel
// values, padding boxes and URL-or-merge-tag fields.

var (
	hexColorRe   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	pixelValueRe = regexp.MustCompile(`^\d+px$`)
	mergeTagRe   = regexp.MustCompile(`^\{\{.+\}\}$`)
)

const (
	// PaddingMin and PaddingMax bound every padding side.
	PaddingMin = 0
	PaddingMax = 200
)

// Padding is a per-side padding box in pixels.
type Padding struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// IsZero reports whether no side carries padding.
func (p Padding) IsZero() bool {
	return p.Top == 0 && p.Right == 0 && p.Bottom == 0 && p.Left == 0
}

// InRange reports whether every side sits inside [PaddingMin, PaddingMax].
func (p Padding) InRange() bool {
	for _, v := range []int{p.Top, p.Right, p.Bottom, p.Left} {
		if v < PaddingMin || v > PaddingMax {
			return false
		}
	}
	return true
}

// IsHexColor reports whether s is a 6-digit hex color like "#1a2b3c".
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// IsPixelValue reports whether s is a bare pixel value like "24px".
func IsPixelValue(s string) bool {
	return pixelValueRe.MatchString(s)
}

// IsMergeTag reports whether s is a merge-tag placeholder like "{{logo_url}}".
func IsMergeTag(s string) bool {
	return mergeTagRe.MatchString(s)
}

// IsAbsoluteURL reports whether s is a syntactically valid absolute http(s)
// URL. Relative URLs are rejected: email clients resolve them against
// nothing useful.
func IsAbsoluteURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	return govalidator.IsURL(s)
}

// IsURLOrMergeTag validates a URL-bearing field: empty, a merge-tag
// placeholder, or an absolute URL are the only accepted shapes.
func IsURLOrMergeTag(s string) bool {
	if s == "" {
		return true
	}
	if IsMergeTag(s) {
		return true
	}
	return IsAbsoluteURL(s)
}

// Alignment values shared across block settings.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// IsAlignment reports whether s is one of left/center/right.
func IsAlignment(s string) bool {
	return s == AlignLeft || s == AlignCenter || s == AlignRight
}
