package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Renderer turns article markdown into HTML that is safe to embed in a page.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy().RequireNoReferrerOnLinks(true),
		strict: bluemonday.StrictPolicy(),
	}
}

func (r *Renderer) ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// PlainText strips every tag, decodes entities and collapses whitespace. The
// result is text, not HTML.
func (r *Renderer) PlainText(src string) string {
	s := html.UnescapeString(r.strict.Sanitize(src))
	return strings.Join(strings.Fields(s), " ")
}
