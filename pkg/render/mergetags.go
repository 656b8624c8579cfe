package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/osteele/liquid"

	"github.com/stener88/joltibase/pkg/blocks"
)

// mergeTagTokenRe matches {{tag_name}} tokens, with optional inner spaces.
var mergeTagTokenRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.-]+)\s*\}\}`)

// ResolveMergeTags substitutes {{name}} tokens from the merge-tag map.
// Unresolved tokens are left intact: text fields keep the literal tag, and
// image fields detect the leftover braces and fall back to a placeholder.
func ResolveMergeTags(s string, tags blocks.MergeTagMap) string {
	if s == "" || !strings.Contains(s, "{{") {
		return s
	}
	return mergeTagTokenRe.ReplaceAllStringFunc(s, func(token string) string {
		name := mergeTagTokenRe.FindStringSubmatch(token)[1]
		if v, ok := tags[name]; ok {
			return v
		}
		return token
	})
}

// HasUnresolvedMergeTag reports whether s still carries a merge-tag token
// after resolution.
func HasUnresolvedMergeTag(s string) bool {
	return strings.Contains(s, "{{")
}

// renderLiquid runs a Liquid templating pass over content. Used only when
// the caller supplied template data; merge tags are resolved beforehand so
// simple personalization never requires a Liquid engine. On template errors
// the original content is returned along with the error so rendering can
// continue with the raw text.
func renderLiquid(content string, data map[string]interface{}) (string, error) {
	if content == "" || (!strings.Contains(content, "{{") && !strings.Contains(content, "{%")) {
		return content, nil
	}
	engine := liquid.NewEngine()
	out, err := engine.ParseAndRenderString(content, data)
	if err != nil {
		return content, fmt.Errorf("liquid rendering failed: %w", err)
	}
	return out, nil
}

// resolveText runs the full text pipeline: merge tags, optional Liquid,
// sanitization. The result is safe to embed in element content.
func (r *Renderer) resolveText(s string, tags blocks.MergeTagMap) string {
	s = ResolveMergeTags(s, tags)
	if len(r.TemplateData) > 0 {
		out, err := renderLiquid(s, r.TemplateData)
		if err != nil {
			r.log().WithField("error", err.Error()).Warn("liquid pass failed, keeping original content")
		} else {
			s = out
		}
	}
	return sanitizeInlineHTML(s)
}

// resolveURL resolves merge tags in a URL field. Unresolved tags stay
// literal; the per-field renderers decide whether that means a placeholder
// (images) or a pass-through (hrefs).
func resolveURL(s string, tags blocks.MergeTagMap) string {
	return ResolveMergeTags(s, tags)
}
