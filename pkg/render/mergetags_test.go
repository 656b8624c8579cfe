package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stener88/joltibase/pkg/blocks"
)

func TestResolveMergeTags(t *testing.T) {
	tags := blocks.MergeTagMap{
		"first_name": "Dana",
		"cta_url":    "https://example.net/go",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple substitution", "Hi {{first_name}}!", "Hi Dana!"},
		{"inner spaces tolerated", "Hi {{ first_name }}!", "Hi Dana!"},
		{"unresolved left intact", "Hi {{nickname}}!", "Hi {{nickname}}!"},
		{"mixed", "{{first_name}} -> {{nickname}}", "Dana -> {{nickname}}"},
		{"no tags", "plain text", "plain text"},
		{"empty", "", ""},
		{"url substitution", "{{cta_url}}", "https://example.net/go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMergeTags(tt.in, tags))
		})
	}
}

func TestHasUnresolvedMergeTag(t *testing.T) {
	assert.True(t, HasUnresolvedMergeTag("{{logo_url}}"))
	assert.False(t, HasUnresolvedMergeTag("https://example.net/logo.png"))
}

func TestRenderLiquid_ErrorKeepsOriginal(t *testing.T) {
	in := "{% if broken %}no closing tag"
	out, err := renderLiquid(in, map[string]interface{}{"broken": true})
	assert.Error(t, err)
	assert.Equal(t, in, out)
}
