package site

import (
	"github.com/russross/blackfriday/v2"
)

// renderer converts Markdown to HTML. The engine behind it is an
// external collaborator; the builder only needs this one method.
type renderer interface {
	render(in []byte) string
}

func newMarkdownRenderer() renderer {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	// CommonExtensions covers tables and fenced code; heading IDs give
	// in-page anchors for long documents.
	return &blackfridayRenderer{
		r:          r,
		extensions: blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs,
	}
}

type blackfridayRenderer struct {
	r          blackfriday.Renderer
	extensions blackfriday.Extensions
}

func (b *blackfridayRenderer) render(in []byte) string {
	return string(blackfriday.Run(in,
		blackfriday.WithRenderer(b.r),
		blackfriday.WithExtensions(b.extensions)))
}
