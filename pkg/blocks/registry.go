package blocks

import (
	"sort"
	"strings"
)

// Block categories used by editor tooling.
const (
	CategoryBranding = "branding"
	CategoryContent  = "content"
	CategoryLayout   = "layout"
	CategorySpacing  = "spacing"
	CategoryFooter   = "footer"
)

// BlockDefinition is the registry metadata for one block type (or one
// layout variation). AIHints feed the upstream generation prompt so the
// model picks sensible blocks; they are plain search keywords here.
type BlockDefinition struct {
	Type        BlockType       `json:"type"`
	Variation   LayoutVariation `json:"variation,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Icon        string          `json:"icon"`
	AIHints     []string        `json:"aiHints,omitempty"`
}

// Key returns the registry key: the type, or "layouts/<variation>".
func (d BlockDefinition) Key() string {
	if d.Type == BlockTypeLayouts && d.Variation != "" {
		return string(d.Type) + "/" + string(d.Variation)
	}
	return string(d.Type)
}

// registry is populated once at init and read-only afterwards, so
// concurrent renders can consult it without coordination.
var registry []BlockDefinition

func init() {
	registry = buildRegistry()
}

func buildRegistry() []BlockDefinition {
	defs := []BlockDefinition{
		{Type: BlockTypeLogo, Name: "Logo", Description: "Brand logo with optional link", Category: CategoryBranding, Icon: "logo",
			AIHints: []string{"header", "brand", "identity"}},
		{Type: BlockTypeSpacer, Name: "Spacer", Description: "Vertical whitespace between blocks", Category: CategorySpacing, Icon: "spacer",
			AIHints: []string{"gap", "whitespace", "breathing room"}},
		{Type: BlockTypeText, Name: "Text", Description: "A single styled paragraph", Category: CategoryContent, Icon: "text",
			AIHints: []string{"paragraph", "copy", "body"}},
		{Type: BlockTypeImage, Name: "Image", Description: "Full-width or sized image with optional link", Category: CategoryContent, Icon: "image",
			AIHints: []string{"photo", "illustration", "banner"}},
		{Type: BlockTypeButton, Name: "Button", Description: "Bulletproof call-to-action button", Category: CategoryContent, Icon: "button",
			AIHints: []string{"cta", "call to action", "link"}},
		{Type: BlockTypeDivider, Name: "Divider", Description: "Horizontal rule or decorative glyph", Category: CategorySpacing, Icon: "divider",
			AIHints: []string{"separator", "rule", "hr"}},
		{Type: BlockTypeSocialLinks, Name: "Social Links", Description: "Row of social platform icons", Category: CategoryFooter, Icon: "social",
			AIHints: []string{"social media", "follow", "icons"}},
		{Type: BlockTypeFooter, Name: "Footer", Description: "Company info with unsubscribe and preferences links", Category: CategoryFooter, Icon: "footer",
			AIHints: []string{"unsubscribe", "legal", "compliance"}},
		{Type: BlockTypeLinkBar, Name: "Link Bar", Description: "Horizontal row of navigation links", Category: CategoryContent, Icon: "links",
			AIHints: []string{"navigation", "menu", "links"}},
		{Type: BlockTypeAddress, Name: "Address", Description: "Physical mailing address", Category: CategoryFooter, Icon: "address",
			AIHints: []string{"postal", "can-spam", "location"}},
		{Type: BlockTypeContainer, Name: "Container", Description: "Groups child blocks under shared background and padding", Category: CategoryLayout, Icon: "container",
			AIHints: []string{"group", "wrapper", "nesting"}},

		{Type: BlockTypeLayouts, Variation: LayoutHeroCenter, Name: "Hero", Description: "Centered hero with header, title, divider, paragraph and button", Category: CategoryLayout, Icon: "hero",
			AIHints: []string{"hero", "intro", "above the fold"}},
		{Type: BlockTypeLayouts, Variation: LayoutTwoColumn5050, Name: "Two Columns 50/50", Description: "Two equal columns of image and text", Category: CategoryLayout, Icon: "columns",
			AIHints: []string{"split", "side by side"}},
		{Type: BlockTypeLayouts, Variation: LayoutTwoColumn6040, Name: "Two Columns 60/40", Description: "Wider left column", Category: CategoryLayout, Icon: "columns"},
		{Type: BlockTypeLayouts, Variation: LayoutTwoColumn4060, Name: "Two Columns 40/60", Description: "Wider right column", Category: CategoryLayout, Icon: "columns"},
		{Type: BlockTypeLayouts, Variation: LayoutTwoColumn7030, Name: "Two Columns 70/30", Description: "Dominant left column", Category: CategoryLayout, Icon: "columns"},
		{Type: BlockTypeLayouts, Variation: LayoutTwoColumn3070, Name: "Two Columns 30/70", Description: "Dominant right column", Category: CategoryLayout, Icon: "columns"},
		{Type: BlockTypeLayouts, Variation: LayoutTwoColumn3366, Name: "Two Columns 33/66", Description: "One-third, two-thirds split", Category: CategoryLayout, Icon: "columns"},
		{Type: BlockTypeLayouts, Variation: LayoutStats2Column, Name: "Stats 2-up", Description: "Two stat value/label pairs", Category: CategoryLayout, Icon: "stats",
			AIHints: []string{"numbers", "metrics", "kpi"}},
		{Type: BlockTypeLayouts, Variation: LayoutStats3Column, Name: "Stats 3-up", Description: "Three stat value/label pairs", Category: CategoryLayout, Icon: "stats"},
		{Type: BlockTypeLayouts, Variation: LayoutStats4Column, Name: "Stats 4-up", Description: "Four stat value/label pairs", Category: CategoryLayout, Icon: "stats"},
		{Type: BlockTypeLayouts, Variation: LayoutImageOverlay, Name: "Image Overlay", Description: "Text and button over a background image", Category: CategoryLayout, Icon: "overlay",
			AIHints: []string{"background image", "banner"}},
		{Type: BlockTypeLayouts, Variation: LayoutTwoColumnText, Name: "Two Column Text", Description: "Two titled text columns", Category: CategoryLayout, Icon: "columns",
			AIHints: []string{"comparison"}},
		{Type: BlockTypeLayouts, Variation: LayoutCompactImageText, Name: "Compact Image + Text", Description: "Thumbnail beside a short paragraph", Category: CategoryLayout, Icon: "media",
			AIHints: []string{"thumbnail", "media object"}},
		{Type: BlockTypeLayouts, Variation: LayoutMagazineFeature, Name: "Magazine Feature", Description: "Large image with category, title, excerpt and byline", Category: CategoryLayout, Icon: "article",
			AIHints: []string{"article", "editorial", "story"}},
		{Type: BlockTypeLayouts, Variation: LayoutCardCentered, Name: "Centered Card", Description: "Centered card with image, text and button", Category: CategoryLayout, Icon: "card",
			AIHints: []string{"card", "testimonial", "quote"}},
	}
	return defs
}

// AllBlockDefinitions returns a copy of the registry catalog.
func AllBlockDefinitions() []BlockDefinition {
	out := make([]BlockDefinition, len(registry))
	copy(out, registry)
	return out
}

// GetBlockDefinition looks up a definition by type (and variation for
// layouts blocks).
func GetBlockDefinition(t BlockType, v LayoutVariation) (BlockDefinition, bool) {
	for _, d := range registry {
		if d.Type == t && d.Variation == v {
			return d, true
		}
	}
	return BlockDefinition{}, false
}

// GetBlocksByCategory returns every definition in the given category, in
// registry order. An unknown category yields an empty slice.
func GetBlocksByCategory(category string) []BlockDefinition {
	var out []BlockDefinition
	for _, d := range registry {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the distinct registry categories, sorted.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range registry {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	sort.Strings(out)
	return out
}

// SearchBlocks matches query (case-insensitive) against name, description
// and AI hints. An empty query returns the whole catalog.
func SearchBlocks(query string) []BlockDefinition {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return AllBlockDefinitions()
	}
	var out []BlockDefinition
	for _, d := range registry {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d)
			continue
		}
		for _, h := range d.AIHints {
			if strings.Contains(strings.ToLower(h), q) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
