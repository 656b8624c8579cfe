package sections

import (
	"fmt"
	"strings"

	"github.com/stener88/joltibase/pkg/blocks"
)

// Bidirectional migration between the legacy section model and the block
// model. Migration runs over trusted, previously-valid stored data, so a
// structurally incomplete section (testimonial without its testimonial
// object, comparison without its comparison object) is a data integrity
// error, not something to paper over. Round trips preserve the section
// type; content fields are normalized, not bit-identical.

// Heading sizes by legacy level. Level 0 means "unknown", treated as 1.
var headingFontSizes = map[int]int{1: 32, 2: 28, 3: 24}

const listBullet = "• "

// spacerSizeForHeight buckets a raw pixel height into the block model's
// size enum.
func spacerSizeForHeight(h int) string {
	switch {
	case h <= 20:
		return blocks.SpacerSmall
	case h >= 48:
		return blocks.SpacerLarge
	default:
		return blocks.SpacerMedium
	}
}

// statsVariationFor clamps an item count into the 2..4 grid range.
func statsVariationFor(n int) blocks.LayoutVariation {
	switch {
	case n <= 2:
		return blocks.LayoutStats2Column
	case n == 3:
		return blocks.LayoutStats3Column
	default:
		return blocks.LayoutStats4Column
	}
}

// SectionToBlock converts one legacy section into a block at the given
// position. Unknown section types yield (nil, nil): the caller decides
// whether a dropped section matters. A nil generator falls back to UUIDs.
func SectionToBlock(s *Section, position int, ids blocks.IDGenerator) (*blocks.EmailBlock, error) {
	if s == nil {
		return nil, nil
	}

	newBlock := func(t blocks.BlockType, variation blocks.LayoutVariation) (*blocks.EmailBlock, error) {
		return blocks.CreateDefaultBlock(t, position, variation, ids)
	}

	switch s.Type {
	case SectionHeading:
		b, err := newBlock(blocks.BlockTypeText, "")
		if err != nil {
			return nil, err
		}
		settings := b.Settings.(*blocks.TextSettings)
		size, ok := headingFontSizes[s.Level]
		if !ok {
			size = headingFontSizes[1]
		}
		settings.FontSize = size
		settings.FontWeight = 700
		b.Content = &blocks.TextContent{Text: s.Text}
		return b, nil

	case SectionText:
		b, err := newBlock(blocks.BlockTypeText, "")
		if err != nil {
			return nil, err
		}
		b.Content = &blocks.TextContent{Text: s.Text}
		return b, nil

	case SectionList:
		b, err := newBlock(blocks.BlockTypeText, "")
		if err != nil {
			return nil, err
		}
		lines := make([]string, 0, len(s.Items))
		for _, item := range s.Items {
			lines = append(lines, listBullet+item)
		}
		text := strings.Join(lines, "\n")
		if text == "" {
			// A list with no items keeps the bullet marker so the reverse
			// conversion still recognizes it as a list.
			text = listBullet
		}
		b.Content = &blocks.TextContent{Text: text}
		return b, nil

	case SectionDivider:
		b, err := newBlock(blocks.BlockTypeDivider, "")
		if err != nil {
			return nil, err
		}
		b.Content = &blocks.DividerContent{}
		return b, nil

	case SectionSpacer:
		b, err := newBlock(blocks.BlockTypeSpacer, "")
		if err != nil {
			return nil, err
		}
		b.Settings.(*blocks.SpacerSettings).Size = spacerSizeForHeight(s.Height)
		return b, nil

	case SectionHero:
		b, err := newBlock(blocks.BlockTypeLayouts, blocks.LayoutHeroCenter)
		if err != nil {
			return nil, err
		}
		hero := &HeroSection{}
		if s.Hero != nil {
			hero = s.Hero
		}
		b.Content = &blocks.HeroContent{
			ShowTitle:     hero.Title != "",
			Title:         hero.Title,
			ShowParagraph: hero.Subtitle != "",
			Paragraph:     hero.Subtitle,
			ShowButton:    hero.ButtonText != "",
			ButtonText:    hero.ButtonText,
			ButtonURL:     hero.ButtonURL,
		}
		return b, nil

	case SectionFeatureGrid:
		b, err := newBlock(blocks.BlockTypeLayouts, blocks.LayoutTwoColumn5050)
		if err != nil {
			return nil, err
		}
		cols := make([]blocks.LayoutColumn, 0, 2)
		for _, f := range s.Features {
			cols = append(cols, blocks.LayoutColumn{
				ImageURL: f.ImageURL,
				Title:    f.Title,
				Text:     f.Text,
			})
			if len(cols) == 2 {
				break
			}
		}
		b.Content = &blocks.TwoColumnContent{Columns: cols}
		return b, nil

	case SectionTestimonial:
		if s.Testimonial == nil {
			return nil, fmt.Errorf("testimonial section at position %d has no testimonial object", position)
		}
		b, err := newBlock(blocks.BlockTypeLayouts, blocks.LayoutCardCentered)
		if err != nil {
			return nil, err
		}
		b.Content = &blocks.CardCenteredContent{
			ImageURL: s.Testimonial.AvatarURL,
			Title:    s.Testimonial.AuthorName,
			Text:     s.Testimonial.Quote,
		}
		return b, nil

	case SectionStats:
		b, err := newBlock(blocks.BlockTypeLayouts, statsVariationFor(len(s.Stats)))
		if err != nil {
			return nil, err
		}
		items := make([]blocks.StatItem, 0, len(s.Stats))
		for _, st := range s.Stats {
			items = append(items, blocks.StatItem{Value: st.Value, Label: st.Label})
		}
		b.Content = &blocks.StatsContent{Items: items}
		return b, nil

	case SectionComparison:
		if s.Comparison == nil {
			return nil, fmt.Errorf("comparison section at position %d has no comparison object", position)
		}
		b, err := newBlock(blocks.BlockTypeLayouts, blocks.LayoutTwoColumnText)
		if err != nil {
			return nil, err
		}
		b.Content = &blocks.TwoColumnTextContent{
			LeftTitle:  s.Comparison.Left.Title,
			LeftText:   joinBulleted(s.Comparison.Left.Items),
			RightTitle: s.Comparison.Right.Title,
			RightText:  joinBulleted(s.Comparison.Right.Items),
		}
		return b, nil

	case SectionCTABlock:
		b, err := newBlock(blocks.BlockTypeButton, "")
		if err != nil {
			return nil, err
		}
		cta := &CallToAction{}
		if s.CTA != nil {
			cta = s.CTA
		}
		b.Content = &blocks.ButtonContent{Text: cta.Text, URL: cta.URL}
		return b, nil
	}

	return nil, nil
}

func joinBulleted(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, listBullet+item)
	}
	return strings.Join(lines, "\n")
}

func splitBulleted(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), listBullet))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// BlockToSection converts a block back into its legacy section form. It is
// the inverse of SectionToBlock over that function's image: for every
// legacy type T, converting T to a block and back yields type T again.
// Block types with no legacy equivalent yield (nil, nil).
func BlockToSection(b *blocks.EmailBlock) (*Section, error) {
	if b == nil {
		return nil, nil
	}

	switch b.Type {
	case blocks.BlockTypeText:
		ct, _ := b.Content.(*blocks.TextContent)
		if ct == nil {
			return nil, fmt.Errorf("text block %s has no text content", b.ID)
		}
		if strings.HasPrefix(ct.Text, listBullet) {
			return &Section{Type: SectionList, Items: splitBulleted(ct.Text)}, nil
		}
		if s, _ := b.Settings.(*blocks.TextSettings); s != nil && s.FontSize >= 24 && s.FontWeight >= 700 {
			level := 3
			for l, size := range headingFontSizes {
				if s.FontSize >= size && l < level {
					level = l
				}
			}
			return &Section{Type: SectionHeading, Text: ct.Text, Level: level}, nil
		}
		return &Section{Type: SectionText, Text: ct.Text}, nil

	case blocks.BlockTypeDivider:
		return &Section{Type: SectionDivider}, nil

	case blocks.BlockTypeSpacer:
		size := blocks.SpacerMedium
		if s, _ := b.Settings.(*blocks.SpacerSettings); s != nil && s.Size != "" {
			size = s.Size
		}
		height, ok := blocks.SpacerSizeHeights[size]
		if !ok {
			height = blocks.SpacerSizeHeights[blocks.SpacerMedium]
		}
		return &Section{Type: SectionSpacer, Height: height}, nil

	case blocks.BlockTypeButton:
		ct, _ := b.Content.(*blocks.ButtonContent)
		if ct == nil {
			return nil, fmt.Errorf("button block %s has no button content", b.ID)
		}
		return &Section{
			Type: SectionCTABlock,
			CTA:  &CallToAction{Text: ct.Text, URL: ct.URL},
		}, nil

	case blocks.BlockTypeLayouts:
		return layoutBlockToSection(b)
	}

	return nil, nil
}

func layoutBlockToSection(b *blocks.EmailBlock) (*Section, error) {
	switch b.LayoutVariation {
	case blocks.LayoutHeroCenter:
		ct, _ := b.Content.(*blocks.HeroContent)
		if ct == nil {
			return nil, fmt.Errorf("hero layout block %s has no hero content", b.ID)
		}
		return &Section{
			Type: SectionHero,
			Hero: &HeroSection{
				Title:      ct.Title,
				Subtitle:   ct.Paragraph,
				ButtonText: ct.ButtonText,
				ButtonURL:  ct.ButtonURL,
			},
		}, nil

	case blocks.LayoutTwoColumn5050, blocks.LayoutTwoColumn6040, blocks.LayoutTwoColumn4060,
		blocks.LayoutTwoColumn7030, blocks.LayoutTwoColumn3070, blocks.LayoutTwoColumn3366:
		ct, _ := b.Content.(*blocks.TwoColumnContent)
		if ct == nil {
			return nil, fmt.Errorf("two-column layout block %s has no column content", b.ID)
		}
		features := make([]Feature, 0, len(ct.Columns))
		for _, col := range ct.Columns {
			features = append(features, Feature{
				ImageURL: col.ImageURL,
				Title:    col.Title,
				Text:     col.Text,
			})
		}
		return &Section{Type: SectionFeatureGrid, Features: features}, nil

	case blocks.LayoutStats2Column, blocks.LayoutStats3Column, blocks.LayoutStats4Column:
		ct, _ := b.Content.(*blocks.StatsContent)
		if ct == nil {
			return nil, fmt.Errorf("stats layout block %s has no stats content", b.ID)
		}
		stats := make([]Stat, 0, len(ct.Items))
		for _, item := range ct.Items {
			stats = append(stats, Stat{Value: item.Value, Label: item.Label})
		}
		return &Section{Type: SectionStats, Stats: stats}, nil

	case blocks.LayoutTwoColumnText:
		ct, _ := b.Content.(*blocks.TwoColumnTextContent)
		if ct == nil {
			return nil, fmt.Errorf("comparison layout block %s has no text content", b.ID)
		}
		return &Section{
			Type: SectionComparison,
			Comparison: &Comparison{
				Left:  ComparisonSide{Title: ct.LeftTitle, Items: splitBulleted(ct.LeftText)},
				Right: ComparisonSide{Title: ct.RightTitle, Items: splitBulleted(ct.RightText)},
			},
		}, nil

	case blocks.LayoutCardCentered:
		ct, _ := b.Content.(*blocks.CardCenteredContent)
		if ct == nil {
			return nil, fmt.Errorf("testimonial layout block %s has no card content", b.ID)
		}
		return &Section{
			Type: SectionTestimonial,
			Testimonial: &Testimonial{
				Quote:      ct.Text,
				AuthorName: ct.Title,
				AvatarURL:  ct.ImageURL,
			},
		}, nil
	}

	return nil, nil
}

// ContentToBlocks converts a whole legacy document into an ordered block
// array: headline/subheadline become a leading hero block, the sections
// follow in order, then the document CTA as a button and the footer as a
// footer block.
func ContentToBlocks(content *EmailContent, ids blocks.IDGenerator) ([]blocks.EmailBlock, error) {
	if content == nil {
		return nil, nil
	}

	var out []blocks.EmailBlock
	position := 0

	if content.Headline != "" || content.Subheadline != "" {
		hero := &Section{
			Type: SectionHero,
			Hero: &HeroSection{Title: content.Headline, Subtitle: content.Subheadline},
		}
		b, err := SectionToBlock(hero, position, ids)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
		position++
	}

	for i := range content.Sections {
		b, err := SectionToBlock(&content.Sections[i], position, ids)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		if b == nil {
			continue
		}
		out = append(out, *b)
		position++
	}

	if content.CTA != nil {
		b, err := blocks.CreateDefaultBlock(blocks.BlockTypeButton, position, "", ids)
		if err != nil {
			return nil, err
		}
		b.Content = &blocks.ButtonContent{Text: content.CTA.Text, URL: content.CTA.URL}
		out = append(out, *b)
		position++
	}

	if content.Footer != nil {
		b, err := blocks.CreateDefaultBlock(blocks.BlockTypeFooter, position, "", ids)
		if err != nil {
			return nil, err
		}
		b.Content = &blocks.FooterContent{
			CompanyName:    content.Footer.CompanyName,
			Address:        content.Footer.Address,
			UnsubscribeURL: content.Footer.UnsubscribeURL,
		}
		out = append(out, *b)
	}

	return out, nil
}

// BlocksToContent reconstructs a legacy document from a block array. At
// most one hero becomes the headline/subheadline, one button becomes the
// document CTA, one footer becomes the footer; every other convertible
// block becomes an ordered section. Blocks with no legacy form are
// dropped.
func BlocksToContent(bs []blocks.EmailBlock) (*EmailContent, error) {
	content := &EmailContent{}
	heroUsed, ctaUsed, footerUsed := false, false, false

	for i := range bs {
		b := &bs[i]

		if !heroUsed && b.Type == blocks.BlockTypeLayouts && b.LayoutVariation == blocks.LayoutHeroCenter {
			if ct, _ := b.Content.(*blocks.HeroContent); ct != nil {
				content.Headline = ct.Title
				content.Subheadline = ct.Paragraph
				heroUsed = true
				continue
			}
		}

		if !ctaUsed && b.Type == blocks.BlockTypeButton {
			if ct, _ := b.Content.(*blocks.ButtonContent); ct != nil {
				content.CTA = &CallToAction{Text: ct.Text, URL: ct.URL}
				ctaUsed = true
				continue
			}
		}

		if !footerUsed && b.Type == blocks.BlockTypeFooter {
			if ct, _ := b.Content.(*blocks.FooterContent); ct != nil {
				content.Footer = &FooterInfo{
					CompanyName:    ct.CompanyName,
					Address:        ct.Address,
					UnsubscribeURL: ct.UnsubscribeURL,
				}
				footerUsed = true
				continue
			}
		}

		s, err := BlockToSection(b)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, b.Type, err)
		}
		if s != nil {
			content.Sections = append(content.Sections, *s)
		}
	}

	return content, nil
}
