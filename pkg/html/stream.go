package html

import (
	"strings"

	xhtml "golang.org/x/net/html"

	"skiff/pkg/web"
)

// StreamParser is the incremental tokenizing parser: it consumes tokens
// one at a time from golang.org/x/net/html's tokenizer and feeds them
// through the same tree-construction rules as TreeParser. Both strategies
// must yield documents with identical node-tree semantics.
type StreamParser struct{}

func (StreamParser) Parse(data []byte, encoding string, base *web.Address) (*Document, error) {
	doc := NewDocument(base)
	s := &streamBuilder{doc: doc, stack: []*Node{doc.Root}}

	z := xhtml.NewTokenizer(strings.NewReader(decodeCharset(data, encoding)))
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			// io.EOF terminates the stream; the x/net tokenizer has
			// no other unrecoverable states for our inputs.
			break
		}
		s.feed(z.Token())
	}
	s.doc.Title = strings.TrimSpace(s.doc.Title)
	return s.doc, nil
}

type streamBuilder struct {
	doc      *Document
	stack    []*Node
	inTitle  bool
	skip     string // raw-text element currently being skipped ("style")
	preDepth int
}

func (s *streamBuilder) feed(tok xhtml.Token) {
	switch tok.Type {
	case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
		tag := tok.Data
		if tag == "style" {
			s.skip = tag
			return
		}
		if tag == "script" {
			s.skip = tag
			return
		}
		if tag == "title" {
			s.inTitle = true
		}

		if isBlockElement(tag) {
			s.autoCloseP()
		}

		attrs := make(map[string]string, len(tok.Attr))
		for _, a := range tok.Attr {
			attrs[strings.ToLower(a.Key)] = a.Val
		}
		node := &Node{
			Type:       ElementNode,
			TagName:    tag,
			Attributes: attrs,
			Children:   make([]*Node, 0),
		}
		s.currentParent().AddChild(node)
		if !isVoidElement(tag) && tok.Type != xhtml.SelfClosingTagToken {
			s.stack = append(s.stack, node)
		}
		if tag == "pre" {
			s.preDepth++
		}

	case xhtml.TextToken:
		if s.skip == "script" {
			if src := strings.TrimSpace(tok.Data); src != "" {
				s.doc.Scripts = append(s.doc.Scripts, src)
			}
			return
		}
		if s.skip != "" {
			return
		}
		if s.inTitle {
			s.doc.Title += tok.Data
			return
		}
		// Whitespace inside preformatted content is significant.
		if s.preDepth > 0 {
			s.currentParent().AppendText(strings.TrimPrefix(tok.Data, "\n"))
			return
		}
		if strings.TrimSpace(tok.Data) == "" {
			return
		}
		s.currentParent().AppendText(normalizeWhitespace(tok.Data))

	case xhtml.EndTagToken:
		tag := tok.Data
		if tag == s.skip {
			s.skip = ""
			return
		}
		if tag == "title" {
			s.inTitle = false
		}
		if tag == "pre" && s.preDepth > 0 {
			s.preDepth--
		}
		s.closeTag(tag)
	}
}

func (s *streamBuilder) currentParent() *Node {
	if len(s.stack) == 0 {
		return s.doc.Root
	}
	return s.stack[len(s.stack)-1]
}

func (s *streamBuilder) closeTag(tag string) {
	for i := len(s.stack) - 1; i >= 1; i-- {
		if s.stack[i].TagName == tag {
			s.stack = s.stack[:i]
			return
		}
	}
}

func (s *streamBuilder) autoCloseP() {
	for i := len(s.stack) - 1; i >= 1; i-- {
		if s.stack[i].TagName == "p" {
			s.stack = s.stack[:i]
			return
		}
		if isBlockElement(s.stack[i].TagName) {
			return
		}
	}
}
