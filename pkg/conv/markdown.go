package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToTelegramHTML renders model output for Telegram, which accepts
// only a small tag whitelist.
func MarkdownToTelegramHTML(md []byte) string {
	// 1. Render HTML
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	// 2. Sanitize tags
	sanitized := tgPolicy.SanitizeBytes(unsafeHTML)

	return string(sanitized)
}

// MarkdownToPlainText is the fallback when Telegram rejects the HTML
// rendering of an answer.
func MarkdownToPlainText(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	rendered := markdown.Render(p.Parse(md), renderer)

	text, err := html2text.FromString(string(rendered), html2text.Options{OmitLinks: true})
	if err != nil {
		return strings.TrimSpace(string(md))
	}
	return text
}
