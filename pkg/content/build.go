package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"skiff/pkg/html"
	"skiff/pkg/images"
	"skiff/pkg/web"
)

var (
	// ErrUnsupportedContent marks a payload that claimed a supported
	// type but could not be decoded (for example a broken image). It is
	// recoverable: the controller renders an error document.
	ErrUnsupportedContent = errors.New("unsupported content")

	// ErrNoBuilder marks a MIME type no synthesizer handles. The
	// classifier only ever produces types the dispatch covers, so
	// hitting this is a programming-contract violation, not a user
	// error.
	ErrNoBuilder = errors.New("no document builder for MIME type")
)

// IsRecoverable distinguishes build failures the controller should
// surface as an error document from programming-contract violations
// (builder dispatch gaps), which it must not.
func IsRecoverable(err error) bool {
	return err != nil && !errors.Is(err, ErrNoBuilder)
}

// Builder dispatches classified payloads to the document synthesizer for
// their content kind.
type Builder struct {
	parser   html.Parser
	markdown goldmark.Markdown
}

// NewBuilder creates a Builder that parses HTML (and HTML produced from
// lightweight markup) with the given parser strategy.
func NewBuilder(parser html.Parser) *Builder {
	return &Builder{
		parser:   parser,
		markdown: goldmark.New(),
	}
}

// Build synthesizes a document for the classified payload.
func (b *Builder) Build(data []byte, addr *web.Address, mimeType, encoding string) (*html.Document, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return b.buildImageDocument(data, addr)
	case mimeType == "text/plain":
		return b.buildTextDocument(data, addr)
	case mimeType == "text/markdown":
		return b.buildMarkdownDocument(data, addr)
	case mimeType == "text/gemini":
		return b.parser.Parse([]byte(renderGemtextToHTML(data, addr)), DefaultEncoding, addr)
	case mimeType == "text/html":
		return b.parser.Parse(data, encoding, addr)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoBuilder, mimeType)
}

// ParseHTML parses an HTML string with the builder's active strategy.
// The controller uses it for error-page markup.
func (b *Builder) ParseHTML(markup string, addr *web.Address) (*html.Document, error) {
	return b.parser.Parse([]byte(markup), DefaultEncoding, addr)
}

// buildImageDocument decodes the payload and synthesizes a document whose
// body is a single image reference to the original address. The title
// embeds the decoded pixel dimensions.
func (b *Builder) buildImageDocument(data []byte, addr *web.Address) (*html.Document, error) {
	img, err := images.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedContent, err)
	}
	bounds := img.Bounds()

	doc := html.NewDocument(addr)
	doc.Title = fmt.Sprintf("%s [%dx%d]", addr.Basename(), bounds.Dx(), bounds.Dy())
	doc.Images[addr.String()] = img

	htmlEl := appendElement(doc.Root, "html", nil)
	body := appendElement(htmlEl, "body", nil)
	appendElement(body, "img", map[string]string{"src": addr.String()})
	return doc, nil
}

// buildTextDocument wraps the raw payload verbatim in a preformatted
// block. The title is left empty.
func (b *Builder) buildTextDocument(data []byte, addr *web.Address) (*html.Document, error) {
	doc := html.NewDocument(addr)
	htmlEl := appendElement(doc.Root, "html", nil)
	body := appendElement(htmlEl, "body", nil)
	pre := appendElement(body, "pre", nil)
	pre.AppendText(string(data))
	return doc, nil
}

func (b *Builder) buildMarkdownDocument(data []byte, addr *web.Address) (*html.Document, error) {
	var buf bytes.Buffer
	if err := b.markdown.Convert(data, &buf); err != nil {
		return nil, fmt.Errorf("%w: rendering markdown: %v", ErrUnsupportedContent, err)
	}
	return b.parser.Parse(buf.Bytes(), DefaultEncoding, addr)
}

func appendElement(parent *html.Node, tag string, attrs map[string]string) *html.Node {
	node := &html.Node{
		Type:       html.ElementNode,
		TagName:    tag,
		Attributes: attrs,
		Children:   make([]*html.Node, 0),
	}
	parent.AddChild(node)
	return node
}
