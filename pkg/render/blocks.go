package render

import (
	"fmt"
	"strings"

	"github.com/stener88/joltibase/pkg/blocks"
)

// Per-block sub-renderers. Each returns a self-contained fragment: one
// presentation table whose single cell carries the block's padding and
// background. None of them can fail; malformed content degrades to
// placeholder markup.

// blockCell wraps inner markup in the standard block table with the
// block's padding and background applied to the cell.
func blockCell(base blocks.BaseSettings, align, inner string) string {
	cellStyle := styleAttr(
		"padding: "+paddingCSS(base.Padding),
		cssIf(base.BackgroundColor != "", "background-color: "+base.BackgroundColor),
	)
	alignAttr := ""
	if align != "" {
		alignAttr = fmt.Sprintf(` align="%s"`, align)
	}
	return openTable("100%", "") +
		fmt.Sprintf("<tr><td%s%s>%s</td></tr></table>\n", alignAttr, cellStyle, inner)
}

func cssIf(cond bool, decl string) string {
	if cond {
		return decl
	}
	return ""
}

// imgTag emits an image with explicit width/height attributes. Many
// clients ignore CSS sizing, so the attributes are the source of truth;
// height is emitted only when known.
func imgTag(src, alt string, width, height int, extraStyle string) string {
	heightAttr := ""
	if height > 0 {
		heightAttr = fmt.Sprintf(` height="%d"`, height)
	}
	style := "display: block; border: 0; max-width: 100%; height: auto;"
	if extraStyle != "" {
		style += " " + extraStyle
	}
	return fmt.Sprintf(`<img src="%s" alt="%s" width="%d"%s style="%s">`,
		escapeAttr(src, true), escapeAttr(alt, false), width, heightAttr, style)
}

// linkWrap wraps markup in an anchor when href is non-empty.
func linkWrap(href, inner string) string {
	if href == "" {
		return inner
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" style="text-decoration: none;">%s</a>`,
		escapeAttr(href, true), inner)
}

func renderLogoBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.LogoSettings)
	ct, _ := b.Content.(*blocks.LogoContent)
	if s == nil || ct == nil {
		return ""
	}
	width := s.Width
	if width <= 0 || width > ctx.contentWidth(s.Padding) {
		width = 160
	}
	src := imageSrc(ct.ImageURL, ctx.tags, width, width/2, "Logo")
	height := 0
	if !IsRenderableImageURL(resolveURL(ct.ImageURL, ctx.tags)) {
		height = width / 2
	}
	img := imgTag(src, ct.AltText, width, height, "")
	inner := linkWrap(resolveURL(ct.LinkURL, ctx.tags), img)
	return blockCell(s.BaseSettings, alignOrDefault(s.Align, blocks.AlignCenter), inner)
}

func renderSpacerBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.SpacerSettings)
	if s == nil {
		return ""
	}
	height, ok := blocks.SpacerSizeHeights[s.Size]
	if !ok {
		height = blocks.SpacerSizeHeights[blocks.SpacerMedium]
	}
	inner := fmt.Sprintf(`<div style="height: %dpx; line-height: %dpx; font-size: 1px;">&nbsp;</div>`, height, height)
	return blockCell(s.BaseSettings, "", inner)
}

func renderTextBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.TextSettings)
	ct, _ := b.Content.(*blocks.TextContent)
	if s == nil || ct == nil {
		return ""
	}
	fontSize := fontSizeOrDefault(s.FontSize, 16)
	lineHeight := s.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1.6
	}
	fontWeight := s.FontWeight
	if fontWeight <= 0 {
		fontWeight = 400
	}
	text := r.resolveText(ct.Text, ctx.tags)
	inner := fmt.Sprintf(
		`<p style="margin: 0; font-family: %s; font-size: %dpx; line-height: %.2f; font-weight: %d; color: %s; text-align: %s;">%s</p>`,
		ctx.global.FontFamily, fontSize, lineHeight, fontWeight,
		colorOrDefault(s.Color, "#333333"), alignOrDefault(s.Align, blocks.AlignLeft), text)
	return blockCell(s.BaseSettings, "", inner)
}

func renderImageBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.ImageSettings)
	ct, _ := b.Content.(*blocks.ImageContent)
	if s == nil || ct == nil {
		return ""
	}
	maxW := ctx.contentWidth(s.Padding)
	width := s.Width
	if width <= 0 || width > maxW {
		width = maxW
	}
	targetHeight := width * 9 / 16
	src := imageSrc(ct.ImageURL, ctx.tags, width, targetHeight, "Image")
	height := 0
	if !IsRenderableImageURL(resolveURL(ct.ImageURL, ctx.tags)) {
		height = targetHeight
	}
	radius := ""
	if s.BorderRadius > 0 {
		radius = fmt.Sprintf("border-radius: %dpx;", s.BorderRadius)
	}
	img := imgTag(src, ct.AltText, width, height, radius)
	inner := linkWrap(resolveURL(ct.LinkURL, ctx.tags), img)
	return blockCell(s.BaseSettings, alignOrDefault(s.Align, blocks.AlignCenter), inner)
}

func renderButtonBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.ButtonSettings)
	ct, _ := b.Content.(*blocks.ButtonContent)
	if s == nil || ct == nil {
		return ""
	}
	inner := bulletproofButton(ctx, buttonSpec{
		Text:         r.resolveText(ct.Text, ctx.tags),
		URL:          resolveURL(ct.URL, ctx.tags),
		Style:        s.Style,
		ButtonColor:  colorOrDefault(s.ButtonColor, "#1d4ed8"),
		TextColor:    colorOrDefault(s.TextColor, "#ffffff"),
		BorderRadius: s.BorderRadius,
		FontSize:     fontSizeOrDefault(s.FontSize, 16),
	})
	return blockCell(s.BaseSettings, alignOrDefault(s.Align, blocks.AlignCenter), inner)
}

// buttonSpec carries the resolved presentation of one button.
type buttonSpec struct {
	Text         string
	URL          string
	Style        string
	ButtonColor  string
	TextColor    string
	BorderRadius int
	FontSize     int
}

// bulletproofButton renders the anchor-in-table pattern; the solid style
// additionally carries an MSO-only VML roundrect so Outlook shows the
// rounded, filled shape.
func bulletproofButton(ctx *renderContext, spec buttonSpec) string {
	href := escapeAttr(spec.URL, true)
	if href == "" {
		href = "#"
	}
	label := spec.Text

	var anchorStyle, cellStyle string
	switch spec.Style {
	case blocks.ButtonStyleOutline:
		anchorStyle = fmt.Sprintf(
			"display: inline-block; padding: 12px 32px; font-family: %s; font-size: %dpx; font-weight: bold; color: %s; text-decoration: none; border: 2px solid %s; border-radius: %dpx;",
			ctx.global.FontFamily, spec.FontSize, spec.ButtonColor, spec.ButtonColor, spec.BorderRadius)
		cellStyle = fmt.Sprintf("border-radius: %dpx;", spec.BorderRadius)
	case blocks.ButtonStyleGhost:
		anchorStyle = fmt.Sprintf(
			"display: inline-block; padding: 12px 16px; font-family: %s; font-size: %dpx; font-weight: bold; color: %s; text-decoration: underline;",
			ctx.global.FontFamily, spec.FontSize, spec.ButtonColor)
	default: // solid
		anchorStyle = fmt.Sprintf(
			"display: inline-block; padding: 12px 32px; font-family: %s; font-size: %dpx; font-weight: bold; color: %s; text-decoration: none; border-radius: %dpx;",
			ctx.global.FontFamily, spec.FontSize, spec.TextColor, spec.BorderRadius)
		cellStyle = fmt.Sprintf("border-radius: %dpx; background-color: %s;", spec.BorderRadius, spec.ButtonColor)
	}

	var sb strings.Builder

	if spec.Style == blocks.ButtonStyleSolid || spec.Style == "" {
		// VML fallback: Outlook cannot round or fill the anchor itself.
		arcPercent := 0
		if spec.BorderRadius > 0 {
			arcPercent = spec.BorderRadius * 100 / 44
			if arcPercent > 50 {
				arcPercent = 50
			}
		}
		sb.WriteString("<!--[if mso]>\n")
		sb.WriteString(fmt.Sprintf(
			`<v:roundrect xmlns:v="urn:schemas-microsoft-com:vml" xmlns:w="urn:schemas-microsoft-com:office:word" href="%s" style="height:44px;v-text-anchor:middle;width:220px;" arcsize="%d%%" strokecolor="%s" fillcolor="%s">`+"\n",
			href, arcPercent, spec.ButtonColor, spec.ButtonColor))
		sb.WriteString(fmt.Sprintf(
			`<w:anchorlock/><center style="color:%s;font-family:%s;font-size:%dpx;font-weight:bold;">%s</center>`+"\n",
			spec.TextColor, ctx.global.FontFamily, spec.FontSize, label))
		sb.WriteString("</v:roundrect>\n<![endif]-->\n")
		sb.WriteString("<!--[if !mso]><!-->\n")
	}

	sb.WriteString(openTable("", ""))
	sb.WriteString(fmt.Sprintf(`<tr><td%s>`, styleAttr(cellStyle)))
	sb.WriteString(fmt.Sprintf(`<a href="%s" target="_blank" style="%s">%s</a>`, href, anchorStyle, label))
	sb.WriteString("</td></tr></table>")

	if spec.Style == blocks.ButtonStyleSolid || spec.Style == "" {
		sb.WriteString("\n<!--<![endif]-->")
	}
	return sb.String()
}

func renderDividerBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.DividerSettings)
	ct, _ := b.Content.(*blocks.DividerContent)
	if s == nil {
		return ""
	}
	if s.LineStyle == blocks.DividerDecorative {
		glyph := "✦"
		if ct != nil && ct.Glyph != "" {
			glyph = ct.Glyph
		}
		inner := fmt.Sprintf(
			`<div style="font-size: 18px; line-height: 1; color: %s; text-align: center;">%s</div>`,
			colorOrDefault(s.LineColor, "#9ca3af"), escapeHTML(glyph))
		return blockCell(s.BaseSettings, "", inner)
	}

	style := s.LineStyle
	if style == "" {
		style = blocks.DividerSolid
	}
	thickness := s.Thickness
	if thickness <= 0 {
		thickness = 1
	}
	widthPercent := s.WidthPercent
	if widthPercent <= 0 || widthPercent > 100 {
		widthPercent = 100
	}
	// A zero-height bordered div survives more clients than <hr>.
	inner := fmt.Sprintf(
		`<div style="border-top: %dpx %s %s; width: %d%%; margin: 0 auto; font-size: 0; line-height: 0;">&nbsp;</div>`,
		thickness, style, colorOrDefault(s.LineColor, "#e5e7eb"), widthPercent)
	return blockCell(s.BaseSettings, "", inner)
}

func renderSocialLinksBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.SocialLinksSettings)
	ct, _ := b.Content.(*blocks.SocialLinksContent)
	if s == nil || ct == nil || len(ct.Links) == 0 {
		return ""
	}
	size := s.IconSize
	if size <= 0 {
		size = 24
	}
	var cells strings.Builder
	for _, link := range ct.Links {
		icon := SocialIconURI(link.Platform, size, "#6b7280")
		img := fmt.Sprintf(`<img src="%s" alt="%s" width="%d" height="%d" style="display: block; border: 0;">`,
			escapeAttr(icon, true), escapeAttr(link.Platform, false), size, size)
		cells.WriteString(fmt.Sprintf(`<td style="padding: 0 8px;">%s</td>`,
			linkWrap(resolveURL(link.URL, ctx.tags), img)))
	}
	inner := openTable("", "") + "<tr>" + cells.String() + "</tr></table>"
	return blockCell(s.BaseSettings, alignOrDefault(s.Align, blocks.AlignCenter), inner)
}

func renderFooterBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.FooterSettings)
	ct, _ := b.Content.(*blocks.FooterContent)
	if s == nil || ct == nil {
		return ""
	}
	fontSize := fontSizeOrDefault(s.FontSize, 12)
	color := colorOrDefault(s.TextColor, "#6b7280")
	align := alignOrDefault(s.Align, blocks.AlignCenter)
	lineStyle := fmt.Sprintf(
		"margin: 0 0 8px 0; font-family: %s; font-size: %dpx; line-height: 1.5; color: %s; text-align: %s;",
		ctx.global.FontFamily, fontSize, color, align)

	var sb strings.Builder
	if v := r.resolveText(ct.CompanyName, ctx.tags); v != "" {
		sb.WriteString(fmt.Sprintf(`<p style="%s"><strong>%s</strong></p>`, lineStyle, v))
	}
	if v := r.resolveText(ct.Address, ctx.tags); v != "" {
		sb.WriteString(fmt.Sprintf(`<p style="%s">%s</p>`, lineStyle, v))
	}
	if v := r.resolveText(ct.CustomText, ctx.tags); v != "" {
		sb.WriteString(fmt.Sprintf(`<p style="%s">%s</p>`, lineStyle, v))
	}

	linkStyle := fmt.Sprintf("color: %s; text-decoration: underline;", color)
	var links []string
	if u := resolveURL(ct.UnsubscribeURL, ctx.tags); u != "" {
		links = append(links, fmt.Sprintf(`<a href="%s" target="_blank" style="%s">Unsubscribe</a>`, escapeAttr(u, true), linkStyle))
	}
	if u := resolveURL(ct.PreferencesURL, ctx.tags); u != "" {
		links = append(links, fmt.Sprintf(`<a href="%s" target="_blank" style="%s">Email preferences</a>`, escapeAttr(u, true), linkStyle))
	}
	if len(links) > 0 {
		sb.WriteString(fmt.Sprintf(`<p style="%s">%s</p>`, lineStyle, strings.Join(links, " &nbsp;|&nbsp; ")))
	}
	return blockCell(s.BaseSettings, "", sb.String())
}

func renderLinkBarBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.LinkBarSettings)
	ct, _ := b.Content.(*blocks.LinkBarContent)
	if s == nil || ct == nil || len(ct.Links) == 0 {
		return ""
	}
	fontSize := fontSizeOrDefault(s.FontSize, 14)
	color := colorOrDefault(s.TextColor, "#374151")
	separator := s.Separator
	if separator == "" {
		separator = "·"
	}
	linkStyle := fmt.Sprintf("font-family: %s; font-size: %dpx; color: %s; text-decoration: none; font-weight: bold;",
		ctx.global.FontFamily, fontSize, color)

	var parts []string
	for _, l := range ct.Links {
		label := r.resolveText(l.Label, ctx.tags)
		href := resolveURL(l.URL, ctx.tags)
		if href == "" {
			parts = append(parts, fmt.Sprintf(`<span style="%s">%s</span>`, linkStyle, label))
			continue
		}
		parts = append(parts, fmt.Sprintf(`<a href="%s" target="_blank" style="%s">%s</a>`, escapeAttr(href, true), linkStyle, label))
	}
	sepSpan := fmt.Sprintf(`<span style="color: %s; padding: 0 8px;">%s</span>`, color, escapeHTML(separator))
	inner := fmt.Sprintf(`<div style="text-align: %s;">%s</div>`,
		alignOrDefault(s.Align, blocks.AlignCenter), strings.Join(parts, sepSpan))
	return blockCell(s.BaseSettings, "", inner)
}

func renderAddressBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.AddressSettings)
	ct, _ := b.Content.(*blocks.AddressContent)
	if s == nil || ct == nil {
		return ""
	}
	var lines []string
	appendLine := func(v string) {
		if v = r.resolveText(v, ctx.tags); v != "" {
			lines = append(lines, v)
		}
	}
	appendLine(ct.CompanyName)
	appendLine(ct.AddressLine1)
	appendLine(ct.AddressLine2)

	var locality []string
	for _, v := range []string{ct.City, ct.Region, ct.PostalCode} {
		if v = r.resolveText(v, ctx.tags); v != "" {
			locality = append(locality, v)
		}
	}
	if len(locality) > 0 {
		lines = append(lines, strings.Join(locality, ", "))
	}
	appendLine(ct.Country)
	if len(lines) == 0 {
		return ""
	}

	inner := fmt.Sprintf(
		`<p style="margin: 0; font-family: %s; font-size: %dpx; line-height: 1.6; color: %s; text-align: %s;">%s</p>`,
		ctx.global.FontFamily, fontSizeOrDefault(s.FontSize, 12),
		colorOrDefault(s.TextColor, "#6b7280"), alignOrDefault(s.Align, blocks.AlignCenter),
		strings.Join(lines, "<br>"))
	return blockCell(s.BaseSettings, "", inner)
}

func renderContainerBlock(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string {
	s, _ := b.Settings.(*blocks.ContainerSettings)
	ct, _ := b.Content.(*blocks.ContainerContent)
	if s == nil || ct == nil {
		return ""
	}
	if ctx.depth+1 > blocks.MaxContainerDepth {
		r.log().WithField("block_id", b.ID).Warn("container nesting exceeds max depth, dropping subtree")
		return ""
	}
	childCtx := &renderContext{global: ctx.global, tags: ctx.tags, depth: ctx.depth + 1}
	var inner strings.Builder
	for _, child := range SortBlocks(ct.Children) {
		cb := child
		inner.WriteString(r.renderBlock(childCtx, &cb))
	}
	return blockCell(s.BaseSettings, "", inner.String())
}
