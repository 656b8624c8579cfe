package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stener88/joltibase/pkg/blocks"
	"github.com/stener88/joltibase/pkg/logger"
)

// Renderer renders block arrays to HTML documents. The zero value works;
// Logger and TemplateData are optional. A Renderer is stateless across
// calls, so one instance may serve concurrent renders.
type Renderer struct {
	// Logger receives warnings about dropped blocks and failed Liquid
	// passes. Nil means silent.
	Logger logger.Logger
	// TemplateData enables a Liquid templating pass over text content when
	// non-empty. Merge tags are always resolved first, without Liquid.
	TemplateData map[string]interface{}
}

// New returns a Renderer with the given logger.
func New(log logger.Logger) *Renderer {
	return &Renderer{Logger: log}
}

func (r *Renderer) log() logger.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logger.NewNopLogger()
}

// renderContext carries the per-call immutable inputs down the dispatch
// tree.
type renderContext struct {
	global blocks.GlobalEmailSettings
	tags   blocks.MergeTagMap
	depth  int
}

// contentWidth returns the canvas width available inside the given
// horizontal padding.
func (ctx *renderContext) contentWidth(p blocks.Padding) int {
	w := ctx.global.MaxWidth - p.Left - p.Right
	if w < 0 {
		w = 0
	}
	return w
}

// blockRenderFunc renders one block to an HTML fragment (a sequence of
// table rows cells wrapped in its own table). Implementations never fail:
// malformed content degrades to placeholders.
type blockRenderFunc func(r *Renderer, ctx *renderContext, b *blocks.EmailBlock) string

// blockRenderers is the eager dispatch table keyed by block type, built
// once at init. Layout variations have their own table in layouts.go.
var blockRenderers map[blocks.BlockType]blockRenderFunc

func init() {
	blockRenderers = map[blocks.BlockType]blockRenderFunc{
		blocks.BlockTypeLogo:        renderLogoBlock,
		blocks.BlockTypeSpacer:      renderSpacerBlock,
		blocks.BlockTypeText:        renderTextBlock,
		blocks.BlockTypeImage:       renderImageBlock,
		blocks.BlockTypeButton:      renderButtonBlock,
		blocks.BlockTypeDivider:     renderDividerBlock,
		blocks.BlockTypeSocialLinks: renderSocialLinksBlock,
		blocks.BlockTypeFooter:      renderFooterBlock,
		blocks.BlockTypeLinkBar:     renderLinkBarBlock,
		blocks.BlockTypeAddress:     renderAddressBlock,
		blocks.BlockTypeLayouts:     renderLayoutsBlock,
		blocks.BlockTypeContainer:   renderContainerBlock,
	}
}

// SortBlocks stable-sorts a copy of the slice by ascending position, with
// the original array index as the tie-break, so equal positions render in
// input order.
func SortBlocks(bs []blocks.EmailBlock) []blocks.EmailBlock {
	sorted := make([]blocks.EmailBlock, len(bs))
	copy(sorted, bs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// RenderBlocksToEmail renders the block array into a complete HTML
// document. It never fails for validated input: unknown block types are
// logged and dropped, malformed content degrades to placeholders.
func (r *Renderer) RenderBlocksToEmail(bs []blocks.EmailBlock, global *blocks.GlobalEmailSettings, tags blocks.MergeTagMap) string {
	return r.renderDocument(bs, global, tags, "", "")
}

// RenderEmail renders a whole Email document, including its subject (as
// the HTML title) and hidden preview text.
func (r *Renderer) RenderEmail(e *blocks.Email, tags blocks.MergeTagMap) string {
	return r.renderDocument(e.Blocks, e.GlobalSettings, tags, e.Subject, e.PreviewText)
}

func (r *Renderer) renderDocument(bs []blocks.EmailBlock, global *blocks.GlobalEmailSettings, tags blocks.MergeTagMap, title, preview string) string {
	g := blocks.GlobalEmailSettings{}
	if global != nil {
		g = *global
	}
	g = g.Normalize()

	ctx := &renderContext{global: g, tags: tags}

	var body strings.Builder
	for _, b := range SortBlocks(bs) {
		block := b
		body.WriteString(r.renderBlock(ctx, &block))
	}

	return r.wrapDocument(body.String(), ctx, title, preview)
}

// renderBlock dispatches one block. Unknown types render as an empty
// string so one bad block cannot take down the whole email, but the drop
// is logged rather than silent.
func (r *Renderer) renderBlock(ctx *renderContext, b *blocks.EmailBlock) string {
	fn, ok := blockRenderers[b.Type]
	if !ok {
		r.log().WithFields(map[string]interface{}{
			"block_id":   b.ID,
			"block_type": string(b.Type),
		}).Warn("dropping block with unrenderable type")
		return ""
	}
	return fn(r, ctx, b)
}

// wrapDocument wraps the concatenated fragments in the full document
// scaffold: DOCTYPE, MSO OfficeDocumentSettings, full-width outer table,
// MSO centering fallback, and the width-capped inner table.
func (r *Renderer) wrapDocument(fragment string, ctx *renderContext, title, preview string) string {
	g := ctx.global
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html lang="en" xmlns="http://www.w3.org/1999/xhtml" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office">` + "\n")
	sb.WriteString("<head>\n")
	sb.WriteString(`<meta charset="utf-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	sb.WriteString(`<meta http-equiv="X-UA-Compatible" content="IE=edge">` + "\n")
	if title != "" {
		sb.WriteString("<title>" + escapeHTML(title) + "</title>\n")
	}
	// Outlook: render at 96 DPI and keep PNG alpha.
	sb.WriteString("<!--[if mso]>\n")
	sb.WriteString("<xml>\n<o:OfficeDocumentSettings>\n")
	sb.WriteString("<o:AllowPNG/>\n<o:PixelsPerInch>96</o:PixelsPerInch>\n")
	sb.WriteString("</o:OfficeDocumentSettings>\n</xml>\n")
	sb.WriteString("<![endif]-->\n")
	// Clients that honor <style> stack columns below the breakpoint;
	// everything else keeps the fixed-pixel desktop layout.
	sb.WriteString("<style>\n")
	sb.WriteString(fmt.Sprintf("@media only screen and (max-width: %dpx) {\n", g.MobileBreakpoint))
	sb.WriteString(".email-container { width: 100% !important; max-width: 100% !important; }\n")
	sb.WriteString(".stack-column { display: block !important; width: 100% !important; max-width: 100% !important; }\n")
	sb.WriteString(".stack-gap { display: none !important; }\n")
	sb.WriteString("}\n")
	sb.WriteString("</style>\n")
	sb.WriteString("</head>\n")

	sb.WriteString(fmt.Sprintf(`<body style="margin: 0; padding: 0; background-color: %s; font-family: %s;">`+"\n",
		g.BackgroundColor, g.FontFamily))

	if preview != "" {
		// Hidden preheader: inbox preview line without visible rendering.
		sb.WriteString(fmt.Sprintf(
			`<div style="display: none; max-height: 0; overflow: hidden; mso-hide: all;">%s</div>`+"\n",
			escapeHTML(preview)))
	}

	sb.WriteString(openTable("100%", bgAttr(g.BackgroundColor)) + "\n")
	sb.WriteString(`<tr><td align="center" style="padding: 0;">` + "\n")

	// Outlook ignores max-width, so center a fixed-width table for it.
	sb.WriteString(fmt.Sprintf("<!--[if mso]>\n<table border=\"0\" cellpadding=\"0\" cellspacing=\"0\" role=\"presentation\" width=\"%d\" align=\"center\"><tr><td>\n<![endif]-->\n", g.MaxWidth))

	sb.WriteString(fmt.Sprintf(`<table border="0" cellpadding="0" cellspacing="0" role="presentation" width="100%%" bgcolor="%s" class="email-container" style="max-width: %dpx; width: 100%%;">`+"\n",
		g.ContentBackgroundColor, g.MaxWidth))
	sb.WriteString("<tr><td>\n")
	sb.WriteString(fragment)
	sb.WriteString("</td></tr>\n</table>\n")

	sb.WriteString("<!--[if mso]>\n</td></tr></table>\n<![endif]-->\n")

	sb.WriteString("</td></tr>\n</table>\n")
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// RenderBlocksToEmail is the package-level convenience entry point with no
// logger and no Liquid data.
func RenderBlocksToEmail(bs []blocks.EmailBlock, global *blocks.GlobalEmailSettings, tags blocks.MergeTagMap) string {
	return (&Renderer{}).RenderBlocksToEmail(bs, global, tags)
}
