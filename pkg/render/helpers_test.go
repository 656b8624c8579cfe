package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stener88/joltibase/pkg/blocks"
)

func TestColumnWidths_SumInvariant(t *testing.T) {
	// For every two-column ratio on a 600px canvas with a 20px gap,
	// left + right + gap must equal the canvas exactly.
	for variation, leftShare := range blocks.TwoColumnRatios {
		t.Run(string(variation), func(t *testing.T) {
			widths := ColumnWidths(600, ColumnGap, []int{leftShare, 100 - leftShare})
			require.Len(t, widths, 2)
			assert.Equal(t, 600, widths[0]+widths[1]+ColumnGap)
		})
	}
}

func TestColumnWidths_RemainderGoesToLastColumn(t *testing.T) {
	tests := []struct {
		total  int
		shares []int
	}{
		{600, []int{1, 1, 1}},
		{600, []int{1, 1, 1, 1}},
		{599, []int{33, 66}},
		{487, []int{70, 30}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%v", tt.total, tt.shares), func(t *testing.T) {
			widths := ColumnWidths(tt.total, ColumnGap, tt.shares)
			sum := (len(tt.shares) - 1) * ColumnGap
			for _, w := range widths {
				assert.GreaterOrEqual(t, w, 0)
				sum += w
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestColumnWidths_ZeroSharesFallBackToEqualSplit(t *testing.T) {
	widths := ColumnWidths(620, 20, []int{0, 0})
	assert.Equal(t, []int{300, 300}, widths)
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt;", escapeHTML("a & b <c>"))
}

func TestEscapeAttr(t *testing.T) {
	assert.Equal(t, "say &quot;hi&quot;", escapeAttr(`say "hi"`, false))
	// Ampersands survive in URLs so query strings stay intact.
	assert.Equal(t, "https://x.com/?a=1&b=2", escapeAttr("https://x.com/?a=1&b=2", true))
}

func TestSanitizeInlineHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps inline formatting", "<b>bold</b> and <em>em</em>", "<b>bold</b> and <em>em</em>"},
		{"drops script", `before<script>alert(1)</script>after`, "beforeafter"},
		{"drops iframe", `<iframe src="https://x.com"></iframe>ok`, "ok"},
		{"drops form controls", `<form><input name="q"></form>text`, "text"},
		{"keeps safe links", `<a href="https://x.com">go</a>`, `<a href="https://x.com">go</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeInlineHTML(tt.in))
		})
	}

	t.Run("drops javascript scheme", func(t *testing.T) {
		out := sanitizeInlineHTML(`<a href="javascript:alert(1)">go</a>`)
		assert.NotContains(t, out, "javascript:")
		assert.Contains(t, out, "go")
	})
}

func TestOpenTableAlwaysCarriesPresentationRole(t *testing.T) {
	assert.Contains(t, openTable("100%", ""), `role="presentation"`)
	assert.Contains(t, openTable("", `align="center"`), `role="presentation"`)
}

func TestPaddingCSS(t *testing.T) {
	p := blocks.Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}
	assert.Equal(t, "1px 2px 3px 4px", paddingCSS(p))
}
