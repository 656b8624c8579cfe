package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/stener88/joltibase/pkg/blocks"
)

// placeholderDomainFragments is the denylist of substrings that mark an
// image URL as generator output rather than a real asset. AI generation
// tends to emit these instead of leaving the field empty.
var placeholderDomainFragments = []string{
	"placeholder.com",
	"via.placeholder",
	"placehold.co",
	"placehold.it",
	"example.com",
	"example.org",
	"your-image",
	"image-url",
	"path/to/",
}

// IsRenderableImageURL reports whether an image URL (after merge-tag
// resolution) should be emitted as-is. Anything else gets a generated
// placeholder so the layout keeps its dimensions instead of showing a
// broken-image glyph.
func IsRenderableImageURL(u string) bool {
	if u == "" {
		return false
	}
	if HasUnresolvedMergeTag(u) {
		return false
	}
	lower := strings.ToLower(u)
	for _, frag := range placeholderDomainFragments {
		if strings.Contains(lower, frag) {
			return false
		}
	}
	if strings.HasPrefix(lower, "data:image/") {
		return true
	}
	return blocks.IsAbsoluteURL(u)
}

// PlaceholderImageURI generates an inline SVG data URI sized to the target
// dimensions: light gray field, subtle frame, centered label. Inline SVG
// keeps the substitution deterministic and free of network fetches.
func PlaceholderImageURI(width, height int, label string) string {
	if width <= 0 {
		width = 600
	}
	if height <= 0 {
		height = width * 9 / 16
	}
	if label == "" {
		label = "Image"
	}
	fontSize := height / 8
	if fontSize < 12 {
		fontSize = 12
	}
	if fontSize > 24 {
		fontSize = 24
	}
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="%d" height="%d" fill="#e5e7eb"/>`+
			`<rect x="1" y="1" width="%d" height="%d" fill="none" stroke="#d1d5db" stroke-width="2"/>`+
			`<text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" `+
			`font-family="Arial, sans-serif" font-size="%d" fill="#9ca3af">%s</text>`+
			`</svg>`,
		width, height, width, height,
		width, height,
		width-2, height-2,
		fontSize, escapeHTML(label),
	)
	return "data:image/svg+xml;charset=utf-8," + url.PathEscape(svg)
}

// PlaceholderAvatarURI generates a circular initials avatar, used when an
// author avatar URL is broken or unresolved.
func PlaceholderAvatarURI(size int, name string) string {
	if size <= 0 {
		size = 48
	}
	initials := avatarInitials(name)
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<circle cx="%d" cy="%d" r="%d" fill="#d1d5db"/>`+
			`<text x="50%%" y="54%%" dominant-baseline="middle" text-anchor="middle" `+
			`font-family="Arial, sans-serif" font-size="%d" font-weight="bold" fill="#6b7280">%s</text>`+
			`</svg>`,
		size, size, size, size,
		size/2, size/2, size/2,
		size*2/5, escapeHTML(initials),
	)
	return "data:image/svg+xml;charset=utf-8," + url.PathEscape(svg)
}

func avatarInitials(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(firstRune(fields[0]))
	default:
		return strings.ToUpper(firstRune(fields[0]) + firstRune(fields[len(fields)-1]))
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// imageSrc resolves merge tags in an image URL and falls back to a sized
// placeholder when the result is not renderable.
func imageSrc(rawURL string, tags blocks.MergeTagMap, width, height int, label string) string {
	resolved := resolveURL(rawURL, tags)
	if IsRenderableImageURL(resolved) {
		return resolved
	}
	return PlaceholderImageURI(width, height, label)
}

// avatarSrc is imageSrc for circular avatars.
func avatarSrc(rawURL string, tags blocks.MergeTagMap, size int, name string) string {
	resolved := resolveURL(rawURL, tags)
	if IsRenderableImageURL(resolved) {
		return resolved
	}
	return PlaceholderAvatarURI(size, name)
}
