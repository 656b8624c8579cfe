package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stener88/joltibase/pkg/blocks"
	"github.com/stener88/joltibase/pkg/logger"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func defaultBlock(t *testing.T, bt blocks.BlockType, position int, v blocks.LayoutVariation) blocks.EmailBlock {
	t.Helper()
	b, err := blocks.CreateDefaultBlock(bt, position, v, &blocks.SequentialIDGenerator{})
	require.NoError(t, err)
	return *b
}

func sampleBlocks(t *testing.T) []blocks.EmailBlock {
	t.Helper()
	return []blocks.EmailBlock{
		defaultBlock(t, blocks.BlockTypeLogo, 0, ""),
		defaultBlock(t, blocks.BlockTypeText, 1, ""),
		defaultBlock(t, blocks.BlockTypeButton, 2, ""),
		defaultBlock(t, blocks.BlockTypeDivider, 3, ""),
		defaultBlock(t, blocks.BlockTypeLayouts, 4, blocks.LayoutHeroCenter),
		defaultBlock(t, blocks.BlockTypeFooter, 5, ""),
	}
}

func TestRenderBlocksToEmail_Determinism(t *testing.T) {
	bs := sampleBlocks(t)
	tags := blocks.MergeTagMap{"cta_url": "https://example.net/go"}

	first := RenderBlocksToEmail(bs, nil, tags)
	second := RenderBlocksToEmail(bs, nil, tags)
	assert.Equal(t, first, second, "identical input must produce byte-identical output")
}

func TestRenderBlocksToEmail_DocumentScaffold(t *testing.T) {
	html := RenderBlocksToEmail(sampleBlocks(t), nil, nil)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<meta charset="utf-8">`)
	assert.Contains(t, html, "<o:OfficeDocumentSettings>")
	assert.Contains(t, html, "<o:PixelsPerInch>96</o:PixelsPerInch>")
	assert.Contains(t, html, "<o:AllowPNG/>")
	assert.Contains(t, html, "max-width: 600px")
}

func TestRenderBlocksToEmail_EmailSafety(t *testing.T) {
	html := RenderBlocksToEmail(sampleBlocks(t), nil, nil)
	doc := mustDoc(t, html)

	for _, forbidden := range []string{"script", "iframe", "form", "input"} {
		assert.Zero(t, doc.Find(forbidden).Length(), "rendered document must not contain <%s>", forbidden)
	}

	tables := doc.Find("table")
	require.Positive(t, tables.Length())
	tables.Each(func(i int, sel *goquery.Selection) {
		role, ok := sel.Attr("role")
		assert.True(t, ok, "table %d is missing role", i)
		assert.Equal(t, "presentation", role)
	})
}

func TestRenderBlocksToEmail_TextContentIsSanitized(t *testing.T) {
	text := defaultBlock(t, blocks.BlockTypeText, 0, "")
	text.Content = &blocks.TextContent{Text: `Hello <script>alert(1)</script><b>friend</b>`}

	html := RenderBlocksToEmail([]blocks.EmailBlock{text}, nil, nil)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "alert(1)")
	assert.Contains(t, html, "<b>friend</b>")
}

func TestRenderBlocksToEmail_Ordering(t *testing.T) {
	mk := func(pos int, text string) blocks.EmailBlock {
		b := defaultBlock(t, blocks.BlockTypeText, pos, "")
		b.Content = &blocks.TextContent{Text: text}
		return b
	}
	// Input order deliberately scrambled relative to positions.
	bs := []blocks.EmailBlock{mk(2, "third"), mk(0, "first"), mk(1, "second")}

	html := RenderBlocksToEmail(bs, nil, nil)

	iFirst := strings.Index(html, "first")
	iSecond := strings.Index(html, "second")
	iThird := strings.Index(html, "third")
	require.NotEqual(t, -1, iFirst)
	assert.Less(t, iFirst, iSecond)
	assert.Less(t, iSecond, iThird)
}

func TestSortBlocks_EqualPositionsKeepInputOrder(t *testing.T) {
	mk := func(id string, pos int) blocks.EmailBlock {
		return blocks.EmailBlock{ID: id, Type: blocks.BlockTypeText, Position: pos}
	}
	in := []blocks.EmailBlock{mk("a", 1), mk("b", 0), mk("c", 1), mk("d", 1)}

	sorted := SortBlocks(in)

	got := make([]string, len(sorted))
	for i, b := range sorted {
		got[i] = b.ID
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, got)
	assert.Equal(t, "a", in[0].ID, "input slice must not be reordered")
}

func TestRenderBlocksToEmail_MergeTagResolution(t *testing.T) {
	button := defaultBlock(t, blocks.BlockTypeButton, 0, "")
	button.Content = &blocks.ButtonContent{Text: "Go", URL: "{{cta_url}}"}

	html := RenderBlocksToEmail([]blocks.EmailBlock{button},
		nil, blocks.MergeTagMap{"cta_url": "https://example.org/go"})

	doc := mustDoc(t, html)
	href, ok := doc.Find("a").First().Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://example.org/go", href)
}

func TestRenderBlocksToEmail_UnresolvedTagLeftIntactInText(t *testing.T) {
	text := defaultBlock(t, blocks.BlockTypeText, 0, "")
	text.Content = &blocks.TextContent{Text: "Hi {{first_name}}, welcome"}

	html := RenderBlocksToEmail([]blocks.EmailBlock{text}, nil, blocks.MergeTagMap{})
	assert.Contains(t, html, "{{first_name}}")
}

func TestRenderBlocksToEmail_PlaceholderSubstitution(t *testing.T) {
	logo := defaultBlock(t, blocks.BlockTypeLogo, 0, "")
	logo.Content = &blocks.LogoContent{ImageURL: "{{logo_url}}", AltText: "Logo"}

	html := RenderBlocksToEmail([]blocks.EmailBlock{logo}, nil, nil)

	doc := mustDoc(t, html)
	src, ok := doc.Find("img").First().Attr("src")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(src, "data:image/svg+xml"), "src should be a generated placeholder, got %q", src)
	assert.NotContains(t, src, "{{logo_url}}")
}

func TestRenderBlocksToEmail_PlaceholderDomainDenylist(t *testing.T) {
	img := defaultBlock(t, blocks.BlockTypeImage, 0, "")
	img.Content = &blocks.ImageContent{ImageURL: "https://via.placeholder.com/600x400", AltText: "x"}

	html := RenderBlocksToEmail([]blocks.EmailBlock{img}, nil, nil)
	assert.NotContains(t, html, "via.placeholder.com")
	assert.Contains(t, html, "data:image/svg+xml")
}

func TestRenderBlocksToEmail_UnknownTypeDroppedAndLogged(t *testing.T) {
	known := defaultBlock(t, blocks.BlockTypeText, 0, "")
	known.Content = &blocks.TextContent{Text: "kept"}
	unknown := blocks.EmailBlock{ID: "u-1", Type: "carousel", Position: 1}

	r := New(logger.NewTestLogger(t))
	html := r.RenderBlocksToEmail([]blocks.EmailBlock{known, unknown}, nil, nil)

	assert.Contains(t, html, "kept")
	assert.NotContains(t, html, "carousel")
}

func TestRenderBlocksToEmail_GlobalSettingsApplied(t *testing.T) {
	global := &blocks.GlobalEmailSettings{
		BackgroundColor:        "#101010",
		ContentBackgroundColor: "#fefefe",
		MaxWidth:               640,
		FontFamily:             "Georgia, serif",
	}
	html := RenderBlocksToEmail(sampleBlocks(t), global, nil)

	assert.Contains(t, html, "max-width: 640px")
	assert.Contains(t, html, "#101010")
	assert.Contains(t, html, `bgcolor="#fefefe"`)
	assert.Contains(t, html, "Georgia, serif")
}

func TestRenderBlocksToEmail_MobileMediaQuery(t *testing.T) {
	html := RenderBlocksToEmail(sampleBlocks(t), nil, nil)
	assert.Contains(t, html, "@media only screen and (max-width: 480px)")
	assert.Contains(t, html, `class="email-container"`)

	html = RenderBlocksToEmail(sampleBlocks(t), &blocks.GlobalEmailSettings{MobileBreakpoint: 600}, nil)
	assert.Contains(t, html, "@media only screen and (max-width: 600px)")
}

func TestRenderEmail_SubjectAndPreheader(t *testing.T) {
	email := &blocks.Email{
		Subject:     "March update",
		PreviewText: "Everything new this month",
		Blocks:      sampleBlocks(t),
	}
	r := New(nil)
	html := r.RenderEmail(email, nil)

	assert.Contains(t, html, "<title>March update</title>")
	assert.Contains(t, html, "Everything new this month")
	assert.Contains(t, html, "mso-hide: all")
}

func TestRenderContainerBlock(t *testing.T) {
	child := defaultBlock(t, blocks.BlockTypeText, 0, "")
	child.Content = &blocks.TextContent{Text: "nested copy"}

	container := defaultBlock(t, blocks.BlockTypeContainer, 0, "")
	container.Settings = &blocks.ContainerSettings{
		BaseSettings: blocks.BaseSettings{BackgroundColor: "#eef2ff"},
	}
	container.Content = &blocks.ContainerContent{Children: []blocks.EmailBlock{child}}

	html := RenderBlocksToEmail([]blocks.EmailBlock{container}, nil, nil)
	assert.Contains(t, html, "nested copy")
	assert.Contains(t, html, "#eef2ff")
}

func TestRenderContainerBlock_DepthBounded(t *testing.T) {
	// Build a container chain one level past the depth bound; the engine
	// must stop descending instead of recursing forever.
	leaf := defaultBlock(t, blocks.BlockTypeText, 0, "")
	leaf.Content = &blocks.TextContent{Text: "too deep"}

	b := defaultBlock(t, blocks.BlockTypeContainer, 0, "")
	b.Content = &blocks.ContainerContent{Children: []blocks.EmailBlock{leaf}}
	for i := 0; i < blocks.MaxContainerDepth; i++ {
		wrapped := defaultBlock(t, blocks.BlockTypeContainer, 0, "")
		wrapped.Content = &blocks.ContainerContent{Children: []blocks.EmailBlock{b}}
		b = wrapped
	}

	r := New(logger.NewTestLogger(t))
	html := r.RenderBlocksToEmail([]blocks.EmailBlock{b}, nil, nil)
	assert.NotContains(t, html, "too deep")
}

func TestRendererWithLiquidTemplateData(t *testing.T) {
	text := defaultBlock(t, blocks.BlockTypeText, 0, "")
	text.Content = &blocks.TextContent{Text: "Total: {% if premium %}full{% else %}basic{% endif %}"}

	r := &Renderer{TemplateData: map[string]interface{}{"premium": true}}
	html := r.RenderBlocksToEmail([]blocks.EmailBlock{text}, nil, nil)

	assert.Contains(t, html, "Total: full")
	assert.NotContains(t, html, "{% if")
}
