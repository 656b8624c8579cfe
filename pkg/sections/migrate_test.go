package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stener88/joltibase/pkg/blocks"
)

func sampleSection(t SectionType) *Section {
	switch t {
	case SectionHeading:
		return &Section{Type: SectionHeading, Text: "Big news", Level: 2}
	case SectionText:
		return &Section{Type: SectionText, Text: "Plain paragraph."}
	case SectionList:
		return &Section{Type: SectionList, Items: []string{"first", "second", "third"}}
	case SectionDivider:
		return &Section{Type: SectionDivider}
	case SectionSpacer:
		return &Section{Type: SectionSpacer, Height: 40}
	case SectionHero:
		return &Section{Type: SectionHero, Hero: &HeroSection{
			Title: "Welcome", Subtitle: "Glad you are here", ButtonText: "Start", ButtonURL: "https://example.net/start",
		}}
	case SectionFeatureGrid:
		return &Section{Type: SectionFeatureGrid, Features: []Feature{
			{Title: "Fast", Text: "It is quick"},
			{Title: "Safe", Text: "It is secure"},
		}}
	case SectionTestimonial:
		return &Section{Type: SectionTestimonial, Testimonial: &Testimonial{
			Quote: "Changed how we work.", AuthorName: "Sam Ortiz",
		}}
	case SectionStats:
		return &Section{Type: SectionStats, Stats: []Stat{
			{Value: "12k", Label: "Users"},
			{Value: "99.9%", Label: "Uptime"},
			{Value: "4.8", Label: "Rating"},
		}}
	case SectionComparison:
		return &Section{Type: SectionComparison, Comparison: &Comparison{
			Left:  ComparisonSide{Title: "Before", Items: []string{"slow", "manual"}},
			Right: ComparisonSide{Title: "After", Items: []string{"fast", "automatic"}},
		}}
	case SectionCTABlock:
		return &Section{Type: SectionCTABlock, CTA: &CallToAction{Text: "Buy", URL: "https://example.net/buy"}}
	}
	return nil
}

func TestRoundTripTypePreservation(t *testing.T) {
	ids := &blocks.SequentialIDGenerator{Prefix: "mig"}

	for _, st := range AllSectionTypes {
		t.Run(string(st), func(t *testing.T) {
			in := sampleSection(st)
			require.NotNil(t, in, "no sample for %q", st)

			b, err := SectionToBlock(in, 0, ids)
			require.NoError(t, err)
			require.NotNil(t, b)
			assert.NoError(t, blocks.ValidateBlock(b), "migrated block should pass validation")

			back, err := BlockToSection(b)
			require.NoError(t, err)
			require.NotNil(t, back)
			assert.Equal(t, st, back.Type)
		})
	}
}

func TestSectionToBlock_Heading(t *testing.T) {
	b, err := SectionToBlock(sampleSection(SectionHeading), 0, nil)
	require.NoError(t, err)

	settings := b.Settings.(*blocks.TextSettings)
	assert.GreaterOrEqual(t, settings.FontSize, 24)
	assert.GreaterOrEqual(t, settings.FontWeight, 700)
	assert.Equal(t, "Big news", b.Content.(*blocks.TextContent).Text)
}

func TestSectionToBlock_ListJoinsWithBullets(t *testing.T) {
	b, err := SectionToBlock(sampleSection(SectionList), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "• first\n• second\n• third", b.Content.(*blocks.TextContent).Text)
}

func TestSectionToBlock_EmptyListStaysList(t *testing.T) {
	b, err := SectionToBlock(&Section{Type: SectionList}, 0, nil)
	require.NoError(t, err)

	back, err := BlockToSection(b)
	require.NoError(t, err)
	assert.Equal(t, SectionList, back.Type)
	assert.Empty(t, back.Items)
}

func TestSectionToBlock_SpacerBuckets(t *testing.T) {
	tests := []struct {
		height int
		want   string
	}{
		{8, blocks.SpacerSmall},
		{20, blocks.SpacerSmall},
		{21, blocks.SpacerMedium},
		{47, blocks.SpacerMedium},
		{48, blocks.SpacerLarge},
		{120, blocks.SpacerLarge},
	}
	for _, tt := range tests {
		b, err := SectionToBlock(&Section{Type: SectionSpacer, Height: tt.height}, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Settings.(*blocks.SpacerSettings).Size, "height %d", tt.height)
	}
}

func TestSectionToBlock_StatsVariationClamped(t *testing.T) {
	tests := []struct {
		count int
		want  blocks.LayoutVariation
	}{
		{1, blocks.LayoutStats2Column},
		{2, blocks.LayoutStats2Column},
		{3, blocks.LayoutStats3Column},
		{4, blocks.LayoutStats4Column},
		{7, blocks.LayoutStats4Column},
	}
	for _, tt := range tests {
		stats := make([]Stat, tt.count)
		for i := range stats {
			stats[i] = Stat{Value: "1", Label: "x"}
		}
		b, err := SectionToBlock(&Section{Type: SectionStats, Stats: stats}, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.LayoutVariation, "%d stats", tt.count)
	}
}

func TestSectionToBlock_MissingRequiredObjects(t *testing.T) {
	_, err := SectionToBlock(&Section{Type: SectionTestimonial}, 3, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testimonial")

	_, err = SectionToBlock(&Section{Type: SectionComparison}, 4, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comparison")
}

func TestSectionToBlock_UnknownTypeYieldsNil(t *testing.T) {
	b, err := SectionToBlock(&Section{Type: "countdown"}, 0, nil)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestBlockToSection_TextDisambiguation(t *testing.T) {
	mk := func(text string, fontSize, weight int) *blocks.EmailBlock {
		return &blocks.EmailBlock{
			ID:   "t-1",
			Type: blocks.BlockTypeText,
			Settings: &blocks.TextSettings{
				FontSize:   fontSize,
				FontWeight: weight,
			},
			Content: &blocks.TextContent{Text: text},
		}
	}

	tests := []struct {
		name  string
		block *blocks.EmailBlock
		want  SectionType
	}{
		{"large bold is heading", mk("Title", 28, 700), SectionHeading},
		{"large regular stays text", mk("Body", 28, 400), SectionText},
		{"small bold stays text", mk("Body", 16, 700), SectionText},
		{"bulleted is list", mk("• a\n• b", 16, 400), SectionList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := BlockToSection(tt.block)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Type)
		})
	}
}

func TestBlockToSection_NoLegacyEquivalent(t *testing.T) {
	b, err := blocks.CreateDefaultBlock(blocks.BlockTypeSocialLinks, 0, "", nil)
	require.NoError(t, err)

	s, err := BlockToSection(b)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestContentToBlocks(t *testing.T) {
	content := &EmailContent{
		Headline:    "March update",
		Subheadline: "Everything that shipped",
		Sections: []Section{
			*sampleSection(SectionText),
			*sampleSection(SectionStats),
		},
		CTA:    &CallToAction{Text: "Read it", URL: "https://example.net/blog"},
		Footer: &FooterInfo{CompanyName: "Acme Co", UnsubscribeURL: "https://example.net/unsub"},
	}

	out, err := ContentToBlocks(content, &blocks.SequentialIDGenerator{})
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.Equal(t, blocks.BlockTypeLayouts, out[0].Type)
	assert.Equal(t, blocks.LayoutHeroCenter, out[0].LayoutVariation)
	assert.Equal(t, "March update", out[0].Content.(*blocks.HeroContent).Title)

	assert.Equal(t, blocks.BlockTypeText, out[1].Type)
	assert.Equal(t, blocks.BlockTypeLayouts, out[2].Type)

	assert.Equal(t, blocks.BlockTypeButton, out[3].Type)
	assert.Equal(t, "Read it", out[3].Content.(*blocks.ButtonContent).Text)

	assert.Equal(t, blocks.BlockTypeFooter, out[4].Type)
	assert.Equal(t, "Acme Co", out[4].Content.(*blocks.FooterContent).CompanyName)

	for i, b := range out {
		assert.Equal(t, i, b.Position)
		assert.NoError(t, blocks.ValidateBlock(&out[i]))
	}
}

func TestContentToBlocks_PropagatesSectionErrors(t *testing.T) {
	content := &EmailContent{
		Sections: []Section{{Type: SectionTestimonial}},
	}
	_, err := ContentToBlocks(content, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section 0")
}

func TestBlocksToContent(t *testing.T) {
	ids := &blocks.SequentialIDGenerator{}
	content := &EmailContent{
		Headline:    "Hello",
		Subheadline: "World",
		Sections: []Section{
			*sampleSection(SectionText),
			*sampleSection(SectionList),
		},
		CTA:    &CallToAction{Text: "Go", URL: "https://example.net/go"},
		Footer: &FooterInfo{CompanyName: "Acme Co"},
	}

	migrated, err := ContentToBlocks(content, ids)
	require.NoError(t, err)

	back, err := BlocksToContent(migrated)
	require.NoError(t, err)

	assert.Equal(t, "Hello", back.Headline)
	assert.Equal(t, "World", back.Subheadline)
	require.NotNil(t, back.CTA)
	assert.Equal(t, "Go", back.CTA.Text)
	require.NotNil(t, back.Footer)
	assert.Equal(t, "Acme Co", back.Footer.CompanyName)

	require.Len(t, back.Sections, 2)
	assert.Equal(t, SectionText, back.Sections[0].Type)
	assert.Equal(t, SectionList, back.Sections[1].Type)
}

func TestBlocksToContent_OnlyFirstHeroAndCTAAbsorbed(t *testing.T) {
	ids := &blocks.SequentialIDGenerator{}

	hero1, err := SectionToBlock(sampleSection(SectionHero), 0, ids)
	require.NoError(t, err)
	hero2, err := SectionToBlock(sampleSection(SectionHero), 1, ids)
	require.NoError(t, err)

	content, err := BlocksToContent([]blocks.EmailBlock{*hero1, *hero2})
	require.NoError(t, err)

	assert.Equal(t, "Welcome", content.Headline)
	require.Len(t, content.Sections, 1)
	assert.Equal(t, SectionHero, content.Sections[0].Type)
}
