// Package render turns a validated block array into a single
// cross-client-compatible HTML document. All presentation is inlined and
// all layout is fixed-pixel table markup, because Outlook's Word-based
// engine ignores most CSS and collapses percentage table widths.
package render

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/stener88/joltibase/pkg/blocks"
)

// ColumnGap is the fixed inter-column gap in pixels. Percentage gutters are
// deliberately avoided: they collapse unreliably in Outlook.
const ColumnGap = 20

// ColumnWidths splits a canvas into len(shares) integer pixel columns with
// a ColumnGap between each pair. The remainder after integer division goes
// to the last column so that sum(widths) + (n-1)*gap == total always holds.
func ColumnWidths(total, gap int, shares []int) []int {
	n := len(shares)
	if n == 0 {
		return nil
	}
	available := total - (n-1)*gap
	if available < 0 {
		available = 0
	}
	shareSum := 0
	for _, s := range shares {
		shareSum += s
	}
	if shareSum == 0 {
		shareSum = n
		shares = equalShares(n)
	}
	widths := make([]int, n)
	used := 0
	for i, s := range shares {
		widths[i] = available * s / shareSum
		used += widths[i]
	}
	widths[n-1] += available - used
	return widths
}

func equalShares(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// escapeHTML escapes text for element content.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// escapeAttr escapes a value for use inside a double-quoted HTML attribute.
// Ampersands in URL attributes are left alone so query strings survive.
func escapeAttr(s string, isURL bool) string {
	if !isURL {
		s = strings.ReplaceAll(s, "&", "&amp;")
	}
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// inlineTextPolicy is the sanitization policy applied to text-bearing
// content before emission. It allows the inline formatting an email editor
// produces and strips everything that could execute or collect input.
var inlineTextPolicy = buildInlineTextPolicy()

func buildInlineTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "s", "br", "span", "sub", "sup")
	p.AllowAttrs("style").OnElements("span")
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements("a")
	p.RequireNoFollowOnLinks(false)
	p.AllowURLSchemes("http", "https", "mailto", "tel")
	return p
}

// sanitizeInlineHTML keeps safe inline markup in user text and drops
// script/iframe/form/input and friends.
func sanitizeInlineHTML(s string) string {
	return inlineTextPolicy.Sanitize(s)
}

// paddingCSS formats a padding box as a CSS shorthand value.
func paddingCSS(p blocks.Padding) string {
	return fmt.Sprintf("%dpx %dpx %dpx %dpx", p.Top, p.Right, p.Bottom, p.Left)
}

// styleAttr joins CSS declarations into a style attribute, skipping empties.
func styleAttr(decls ...string) string {
	var kept []string
	for _, d := range decls {
		if d != "" {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return fmt.Sprintf(` style="%s"`, strings.Join(kept, "; "))
}

// openTable emits a presentation table opener. Every table the engine emits
// goes through here so the role attribute can never be forgotten.
func openTable(widthAttr, extra string) string {
	attrs := `border="0" cellpadding="0" cellspacing="0" role="presentation"`
	if widthAttr != "" {
		attrs += fmt.Sprintf(` width="%s"`, widthAttr)
	}
	if extra != "" {
		attrs += " " + extra
	}
	return "<table " + attrs + ">"
}

// bgAttr returns a bgcolor attribute when the color is set.
func bgAttr(color string) string {
	if color == "" {
		return ""
	}
	return fmt.Sprintf(` bgcolor="%s"`, color)
}

// alignOrDefault normalizes an alignment value.
func alignOrDefault(align, def string) string {
	if blocks.IsAlignment(align) {
		return align
	}
	return def
}

// fontSizeOrDefault normalizes a font size.
func fontSizeOrDefault(size, def int) int {
	if size > 0 {
		return size
	}
	return def
}

// colorOrDefault normalizes a color value.
func colorOrDefault(color, def string) string {
	if color != "" {
		return color
	}
	return def
}
