package render

import (
	"fmt"
	"strings"

	"github.com/stener88/joltibase/pkg/blocks"
)

// Layout variation composers. Every composer works in fixed pixel widths
// against the canvas width: percentage columns collapse in Outlook, so
// each column carries an explicit pixel width and the inter-column gap is
// its own fixed-width cell.

// layoutRenderFunc composes one layout variation inside the given content
// width.
type layoutRenderFunc func(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string

// layoutRenderers is the eager dispatch table keyed by variation.
var layoutRenderers map[blocks.LayoutVariation]layoutRenderFunc

func init() {
	layoutRenderers = map[blocks.LayoutVariation]layoutRenderFunc{
		blocks.LayoutHeroCenter:       renderHeroCenter,
		blocks.LayoutTwoColumn5050:    renderTwoColumn,
		blocks.LayoutTwoColumn6040:    renderTwoColumn,
		blocks.LayoutTwoColumn4060:    renderTwoColumn,
		blocks.LayoutTwoColumn7030:    renderTwoColumn,
		blocks.LayoutTwoColumn3070:    renderTwoColumn,
		blocks.LayoutTwoColumn3366:    renderTwoColumn,
		blocks.LayoutStats2Column:     renderStatsGrid,
		blocks.LayoutStats3Column:     renderStatsGrid,
		blocks.LayoutStats4Column:     renderStatsGrid,
		blocks.LayoutImageOverlay:     renderImageOverlay,
		blocks.LayoutTwoColumnText:    renderTwoColumnText,
		blocks.LayoutCompactImageText: renderCompactImageText,
		blocks.LayoutMagazineFeature:  renderMagazineFeature,
		blocks.LayoutCardCentered:     renderCardCentered,
	}
}

func renderLayoutsBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.LayoutSettings)
	if s == nil {
		s = &blocks.LayoutSettings{}
	}
	fn, ok := layoutRenderers[b.LayoutVariation]
	if !ok {
		r.log().WithFields(map[string]interface{}{
			"block_id":  b.ID,
			"variation": string(b.LayoutVariation),
		}).Warn("dropping layouts block with unrenderable variation")
		return ""
	}
	width := ctx.contentWidth(s.Padding)
	inner := fn(r, ctx, s, b, width)
	base := s.BaseSettings
	if s.ContentBackgroundColor != "" && base.BackgroundColor == "" {
		base.BackgroundColor = s.ContentBackgroundColor
	}
	return blockCell(base, "", inner)
}

// layoutPlaceholder is the visible stand-in rendered when a composer has
// nothing to show, keeping document structure stable for in-progress
// editor states.
func layoutPlaceholder(ctx *renderContext, width int) string {
	return fmt.Sprintf(
		`<div style="border: 2px dashed #d1d5db; border-radius: 6px; padding: 32px 16px; font-family: %s; font-size: 14px; color: #9ca3af; text-align: center; width: %dpx; box-sizing: border-box;">Add content</div>`,
		ctx.global.FontFamily, width)
}

func layoutTitle(ctx *renderContext, s *blocks.LayoutSettings, text string, size int, align string) string {
	return fmt.Sprintf(
		`<p style="margin: 0 0 12px 0; font-family: %s; font-size: %dpx; line-height: 1.3; font-weight: bold; color: %s; text-align: %s;">%s</p>`,
		ctx.global.FontFamily, size, colorOrDefault(s.TextColor, "#111827"), align, text)
}

func layoutParagraph(ctx *renderContext, s *blocks.LayoutSettings, text string, align string) string {
	return fmt.Sprintf(
		`<p style="margin: 0 0 16px 0; font-family: %s; font-size: 15px; line-height: 1.6; color: %s; text-align: %s;">%s</p>`,
		ctx.global.FontFamily, colorOrDefault(s.TextColor, "#374151"), align, text)
}

func layoutButton(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, text, url string) string {
	return bulletproofButton(ctx, buttonSpec{
		Text:         text,
		URL:          url,
		Style:        blocks.ButtonStyleSolid,
		ButtonColor:  colorOrDefault(s.AccentColor, "#1d4ed8"),
		TextColor:    "#ffffff",
		BorderRadius: 6,
		FontSize:     15,
	})
}

// columnsRow lays out cells in one row with fixed pixel widths and
// fixed-width gap cells between them.
func columnsRow(widths []int, cells []string) string {
	var sb strings.Builder
	sb.WriteString(openTable("100%", ""))
	sb.WriteString("<tr>")
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(fmt.Sprintf(`<td width="%d" class="stack-gap" style="width: %dpx; font-size: 0; line-height: 0;">&nbsp;</td>`, ColumnGap, ColumnGap))
		}
		sb.WriteString(fmt.Sprintf(`<td width="%d" class="stack-column" style="width: %dpx; vertical-align: top;">%s</td>`, widths[i], widths[i], cell))
	}
	sb.WriteString("</tr></table>")
	return sb.String()
}

func renderHeroCenter(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.HeroContent)
	if ct == nil {
		return layoutPlaceholder(ctx, width)
	}

	var parts []string
	if ct.ShowHeader {
		if v := r.resolveText(ct.HeaderText, ctx.tags); v != "" {
			parts = append(parts, fmt.Sprintf(
				`<p style="margin: 0 0 8px 0; font-family: %s; font-size: 13px; font-weight: bold; letter-spacing: 2px; text-transform: uppercase; color: %s; text-align: center;">%s</p>`,
				ctx.global.FontFamily, colorOrDefault(s.AccentColor, "#1d4ed8"), v))
		}
	}
	if ct.ShowTitle {
		if v := r.resolveText(ct.Title, ctx.tags); v != "" {
			parts = append(parts, layoutTitle(ctx, s, v, 32, blocks.AlignCenter))
		}
	}
	if ct.ShowDivider {
		parts = append(parts, fmt.Sprintf(
			`<div style="border-top: 3px solid %s; width: 48px; margin: 0 auto 16px auto; font-size: 0; line-height: 0;">&nbsp;</div>`,
			colorOrDefault(s.AccentColor, "#1d4ed8")))
	}
	if ct.ShowParagraph {
		if v := r.resolveText(ct.Paragraph, ctx.tags); v != "" {
			parts = append(parts, layoutParagraph(ctx, s, v, blocks.AlignCenter))
		}
	}
	if ct.ShowButton {
		if v := r.resolveText(ct.ButtonText, ctx.tags); v != "" {
			btn := layoutButton(r, ctx, s, v, resolveURL(ct.ButtonURL, ctx.tags))
			parts = append(parts, openTable("", `align="center"`)+"<tr><td>"+btn+"</td></tr></table>")
		}
	}

	if len(parts) == 0 {
		return layoutPlaceholder(ctx, width)
	}
	return strings.Join(parts, "\n")
}

// layoutColumnCell renders one column of a generic two-column layout:
// optional image, title, text, button, stacked.
func layoutColumnCell(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, col blocks.LayoutColumn, width int) string {
	var sb strings.Builder
	if col.ImageURL != "" || col.ImageAlt != "" {
		h := width * 3 / 4
		src := imageSrc(col.ImageURL, ctx.tags, width, h, "Image")
		height := 0
		if !IsRenderableImageURL(resolveURL(col.ImageURL, ctx.tags)) {
			height = h
		}
		sb.WriteString(fmt.Sprintf(`<div style="margin: 0 0 12px 0;">%s</div>`,
			imgTag(src, col.ImageAlt, width, height, "border-radius: 4px;")))
	}
	if v := r.resolveText(col.Title, ctx.tags); v != "" {
		sb.WriteString(layoutTitle(ctx, s, v, 18, blocks.AlignLeft))
	}
	if v := r.resolveText(col.Text, ctx.tags); v != "" {
		sb.WriteString(layoutParagraph(ctx, s, v, blocks.AlignLeft))
	}
	if v := r.resolveText(col.ButtonText, ctx.tags); v != "" {
		sb.WriteString(layoutButton(r, ctx, s, v, resolveURL(col.ButtonURL, ctx.tags)))
	}
	return sb.String()
}

func renderTwoColumn(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.TwoColumnContent)
	if ct == nil || len(ct.Columns) == 0 {
		return layoutPlaceholder(ctx, width)
	}
	leftShare, ok := blocks.TwoColumnRatios[b.LayoutVariation]
	if !ok {
		leftShare = 50
	}
	widths := ColumnWidths(width, ColumnGap, []int{leftShare, 100 - leftShare})

	cols := ct.Columns
	if len(cols) == 1 {
		cols = append(cols, blocks.LayoutColumn{})
	}
	cells := []string{
		layoutColumnCell(r, ctx, s, cols[0], widths[0]),
		layoutColumnCell(r, ctx, s, cols[1], widths[1]),
	}
	if strings.TrimSpace(cells[0]) == "" && strings.TrimSpace(cells[1]) == "" {
		return layoutPlaceholder(ctx, width)
	}
	return columnsRow(widths, cells)
}

func renderStatsGrid(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.StatsContent)
	n := blocks.StatsColumnCounts[b.LayoutVariation]
	if ct == nil || len(ct.Items) == 0 || n == 0 {
		return layoutPlaceholder(ctx, width)
	}
	items := ct.Items
	if len(items) > n {
		items = items[:n]
	}
	widths := ColumnWidths(width, ColumnGap, equalShares(n))

	cells := make([]string, n)
	for i := 0; i < n; i++ {
		if i >= len(items) {
			cells[i] = "&nbsp;"
			continue
		}
		value := r.resolveText(items[i].Value, ctx.tags)
		label := r.resolveText(items[i].Label, ctx.tags)
		cells[i] = fmt.Sprintf(
			`<p style="margin: 0 0 4px 0; font-family: %s; font-size: 28px; font-weight: bold; color: %s; text-align: center;">%s</p>`+
				`<p style="margin: 0; font-family: %s; font-size: 13px; color: %s; text-align: center;">%s</p>`,
			ctx.global.FontFamily, colorOrDefault(s.AccentColor, "#1d4ed8"), value,
			ctx.global.FontFamily, colorOrDefault(s.TextColor, "#374151"), label)
	}
	return columnsRow(widths, cells)
}

func renderImageOverlay(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.ImageOverlayContent)
	if ct == nil {
		return layoutPlaceholder(ctx, width)
	}
	height := width * 2 / 3
	src := imageSrc(ct.ImageURL, ctx.tags, width, height, "Background")

	var overlay strings.Builder
	if v := r.resolveText(ct.BadgeText, ctx.tags); v != "" {
		overlay.WriteString(fmt.Sprintf(
			`<span style="display: inline-block; padding: 4px 12px; margin-bottom: 12px; background-color: %s; font-family: %s; font-size: 12px; font-weight: bold; letter-spacing: 1px; color: #ffffff; border-radius: 4px;">%s</span><br>`,
			colorOrDefault(s.AccentColor, "#1d4ed8"), ctx.global.FontFamily, v))
	}
	if v := r.resolveText(ct.Title, ctx.tags); v != "" {
		overlay.WriteString(fmt.Sprintf(
			`<p style="margin: 0 0 12px 0; font-family: %s; font-size: 28px; line-height: 1.2; font-weight: bold; color: #ffffff;">%s</p>`,
			ctx.global.FontFamily, v))
	}
	if v := r.resolveText(ct.Paragraph, ctx.tags); v != "" {
		overlay.WriteString(fmt.Sprintf(
			`<p style="margin: 0 0 16px 0; font-family: %s; font-size: 15px; line-height: 1.6; color: #f3f4f6;">%s</p>`,
			ctx.global.FontFamily, v))
	}
	if v := r.resolveText(ct.ButtonText, ctx.tags); v != "" {
		overlay.WriteString(layoutButton(r, ctx, s, v, resolveURL(ct.ButtonURL, ctx.tags)))
	}
	if overlay.Len() == 0 {
		return layoutPlaceholder(ctx, width)
	}

	// Real CSS overlay positioning is unreliable in email clients, so the
	// text sits in a padded cell over a background image, with a VML fill
	// for Outlook.
	var sb strings.Builder
	sb.WriteString(openTable("100%", ""))
	sb.WriteString(fmt.Sprintf(
		`<tr><td background="%s" width="%d" height="%d" valign="middle" style="background-image: url('%s'); background-size: cover; background-position: center; background-color: #111827;">`,
		escapeAttr(src, true), width, height, escapeAttr(src, true)))
	sb.WriteString("\n<!--[if gte mso 9]>\n")
	sb.WriteString(fmt.Sprintf(
		`<v:rect xmlns:v="urn:schemas-microsoft-com:vml" fill="true" stroke="false" style="width:%dpx;height:%dpx;">`+"\n"+
			`<v:fill type="frame" src="%s" color="#111827"/>`+"\n"+
			`<v:textbox inset="0,0,0,0">`+"\n",
		width, height, escapeAttr(src, true)))
	sb.WriteString("<![endif]-->\n")
	sb.WriteString(fmt.Sprintf(`<div style="padding: 40px 32px;">%s</div>`, overlay.String()))
	sb.WriteString("\n<!--[if gte mso 9]>\n</v:textbox>\n</v:rect>\n<![endif]-->\n")
	sb.WriteString("</td></tr></table>")
	return sb.String()
}

func renderTwoColumnText(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.TwoColumnTextContent)
	if ct == nil {
		return layoutPlaceholder(ctx, width)
	}
	widths := ColumnWidths(width, ColumnGap, []int{50, 50})

	renderSide := func(title, text string) string {
		var sb strings.Builder
		if v := r.resolveText(title, ctx.tags); v != "" {
			sb.WriteString(layoutTitle(ctx, s, v, 18, blocks.AlignLeft))
		}
		if v := r.resolveText(text, ctx.tags); v != "" {
			sb.WriteString(layoutParagraph(ctx, s, v, blocks.AlignLeft))
		}
		return sb.String()
	}
	cells := []string{
		renderSide(ct.LeftTitle, ct.LeftText),
		renderSide(ct.RightTitle, ct.RightText),
	}
	if strings.TrimSpace(cells[0]) == "" && strings.TrimSpace(cells[1]) == "" {
		return layoutPlaceholder(ctx, width)
	}
	return columnsRow(widths, cells)
}

func renderCompactImageText(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.CompactImageTextContent)
	if ct == nil {
		return layoutPlaceholder(ctx, width)
	}
	widths := ColumnWidths(width, ColumnGap, []int{30, 70})

	imgWidth := widths[0]
	src := imageSrc(ct.ImageURL, ctx.tags, imgWidth, imgWidth, "Image")
	height := 0
	if !IsRenderableImageURL(resolveURL(ct.ImageURL, ctx.tags)) {
		height = imgWidth
	}
	imageCell := imgTag(src, ct.ImageAlt, imgWidth, height, "border-radius: 4px;")

	var textCell strings.Builder
	if v := r.resolveText(ct.Title, ctx.tags); v != "" {
		textCell.WriteString(layoutTitle(ctx, s, v, 17, blocks.AlignLeft))
	}
	if v := r.resolveText(ct.Text, ctx.tags); v != "" {
		textCell.WriteString(layoutParagraph(ctx, s, v, blocks.AlignLeft))
	}
	if textCell.Len() == 0 {
		return layoutPlaceholder(ctx, width)
	}

	if ct.ImageSide == "right" {
		return columnsRow([]int{widths[1], widths[0]}, []string{textCell.String(), imageCell})
	}
	return columnsRow(widths, []string{imageCell, textCell.String()})
}

func renderMagazineFeature(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.MagazineFeatureContent)
	if ct == nil {
		return layoutPlaceholder(ctx, width)
	}
	title := r.resolveText(ct.Title, ctx.tags)
	excerpt := r.resolveText(ct.Excerpt, ctx.tags)
	if title == "" && excerpt == "" {
		return layoutPlaceholder(ctx, width)
	}

	var sb strings.Builder
	imgHeight := width * 9 / 16
	src := imageSrc(ct.ImageURL, ctx.tags, width, imgHeight, "Feature")
	height := 0
	if !IsRenderableImageURL(resolveURL(ct.ImageURL, ctx.tags)) {
		height = imgHeight
	}
	sb.WriteString(fmt.Sprintf(`<div style="margin: 0 0 16px 0;">%s</div>`,
		imgTag(src, ct.Title, width, height, "border-radius: 4px;")))

	if v := r.resolveText(ct.Category, ctx.tags); v != "" {
		sb.WriteString(fmt.Sprintf(
			`<p style="margin: 0 0 8px 0; font-family: %s; font-size: 12px; font-weight: bold; letter-spacing: 2px; text-transform: uppercase; color: %s;">%s</p>`,
			ctx.global.FontFamily, colorOrDefault(s.AccentColor, "#1d4ed8"), v))
	}
	if title != "" {
		sb.WriteString(layoutTitle(ctx, s, title, 24, blocks.AlignLeft))
	}
	if excerpt != "" {
		sb.WriteString(layoutParagraph(ctx, s, excerpt, blocks.AlignLeft))
	}

	author := r.resolveText(ct.AuthorName, ctx.tags)
	date := r.resolveText(ct.Date, ctx.tags)
	if author != "" || date != "" {
		const avatarSize = 40
		avatar := avatarSrc(ct.AuthorAvatarURL, ctx.tags, avatarSize, author)
		byline := author
		if author != "" && date != "" {
			byline = author + " &nbsp;·&nbsp; " + date
		} else if date != "" {
			byline = date
		}
		sb.WriteString(openTable("", ""))
		sb.WriteString(fmt.Sprintf(
			`<tr><td width="%d" style="width: %dpx;"><img src="%s" alt="%s" width="%d" height="%d" style="display: block; border: 0; border-radius: 50%%;"></td>`,
			avatarSize, avatarSize, escapeAttr(avatar, true), escapeAttr(author, false), avatarSize, avatarSize))
		sb.WriteString(fmt.Sprintf(
			`<td style="padding-left: 12px; font-family: %s; font-size: 13px; color: %s;">%s</td></tr></table>`,
			ctx.global.FontFamily, colorOrDefault(s.TextColor, "#374151"), byline))
	}
	return sb.String()
}

func renderCardCentered(r *Renderer, ctx *renderContext, s *blocks.LayoutSettings, b *blocks.EmailBlock, width int) string {
	ct, _ := b.Content.(*blocks.CardCenteredContent)
	if ct == nil {
		return layoutPlaceholder(ctx, width)
	}
	title := r.resolveText(ct.Title, ctx.tags)
	text := r.resolveText(ct.Text, ctx.tags)
	if title == "" && text == "" {
		return layoutPlaceholder(ctx, width)
	}

	cardWidth := width * 4 / 5
	var inner strings.Builder
	if ct.ImageURL != "" {
		imgWidth := cardWidth - 64
		imgHeight := imgWidth * 3 / 4
		src := imageSrc(ct.ImageURL, ctx.tags, imgWidth, imgHeight, "Image")
		height := 0
		if !IsRenderableImageURL(resolveURL(ct.ImageURL, ctx.tags)) {
			height = imgHeight
		}
		inner.WriteString(fmt.Sprintf(`<div style="margin: 0 0 16px 0;">%s</div>`,
			imgTag(src, ct.Title, imgWidth, height, "border-radius: 4px; margin: 0 auto;")))
	}
	if title != "" {
		inner.WriteString(layoutTitle(ctx, s, title, 20, blocks.AlignCenter))
	}
	if text != "" {
		inner.WriteString(layoutParagraph(ctx, s, text, blocks.AlignCenter))
	}
	if v := r.resolveText(ct.ButtonText, ctx.tags); v != "" {
		btn := layoutButton(r, ctx, s, v, resolveURL(ct.ButtonURL, ctx.tags))
		inner.WriteString(openTable("", `align="center"`) + "<tr><td>" + btn + "</td></tr></table>")
	}

	var sb strings.Builder
	sb.WriteString(openTable("100%", ""))
	sb.WriteString(`<tr><td align="center">`)
	sb.WriteString(fmt.Sprintf(`<table border="0" cellpadding="0" cellspacing="0" role="presentation" width="%d" style="width: %dpx;">`, cardWidth, cardWidth))
	sb.WriteString(fmt.Sprintf(
		`<tr><td align="center" style="padding: 32px; background-color: %s; border: 1px solid #e5e7eb; border-radius: 8px;">%s</td></tr>`,
		colorOrDefault(s.ContentBackgroundColor, "#ffffff"), inner.String()))
	sb.WriteString("</table></td></tr></table>")
	return sb.String()
}
