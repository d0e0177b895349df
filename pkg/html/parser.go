package html

import (
	"fmt"
	gohtml "html"
	"strings"

	"skiff/pkg/web"
)

// TreeParser is the legacy whole-document parser: it tokenizes the entire
// input with the in-package tokenizer and builds the tree with an element
// stack.
type TreeParser struct{}

func (TreeParser) Parse(data []byte, encoding string, base *web.Address) (*Document, error) {
	return parseTree(decodeCharset(data, encoding), base)
}

type treeBuilder struct {
	tokenizer *Tokenizer
	doc       *Document
	stack     []*Node
	inTitle   bool
}

func parseTree(input string, base *web.Address) (*Document, error) {
	b := &treeBuilder{
		tokenizer: NewTokenizer(input),
		doc:       NewDocument(base),
	}
	return b.run()
}

func (b *treeBuilder) run() (*Document, error) {
	b.stack = []*Node{b.doc.Root}

	for {
		token, err := b.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		if token.Type == TokenEOF {
			break
		}

		switch token.Type {
		case TokenStartTag:
			// Raw text elements: capture content verbatim, keep it
			// out of the tree.
			if token.TagName == "script" {
				if src := strings.TrimSpace(b.tokenizer.ReadRawUntil("script")); src != "" {
					b.doc.Scripts = append(b.doc.Scripts, src)
				}
				continue
			}
			if token.TagName == "style" {
				b.tokenizer.ReadRawUntil("style")
				continue
			}
			if token.TagName == "title" {
				b.inTitle = true
			}
			// Preformatted content keeps its whitespace verbatim, so it
			// is captured raw rather than tokenized.
			if token.TagName == "pre" {
				b.autoCloseP()
				node := &Node{
					Type:       ElementNode,
					TagName:    "pre",
					Attributes: token.Attributes,
					Children:   make([]*Node, 0),
				}
				b.currentParent().AddChild(node)
				raw := strings.TrimPrefix(b.tokenizer.ReadRawUntil("pre"), "\n")
				node.AppendText(gohtml.UnescapeString(raw))
				continue
			}

			if isBlockElement(token.TagName) {
				b.autoCloseP()
			}

			node := &Node{
				Type:       ElementNode,
				TagName:    token.TagName,
				Attributes: token.Attributes,
				Children:   make([]*Node, 0),
			}
			b.currentParent().AddChild(node)

			if !isVoidElement(token.TagName) && !token.SelfClosing {
				b.stack = append(b.stack, node)
			}

		case TokenText:
			if b.inTitle {
				b.doc.Title += token.Text
				continue
			}
			if token.Text != "" {
				b.currentParent().AppendText(token.Text)
			}

		case TokenEndTag:
			if token.TagName == "title" {
				b.inTitle = false
				b.doc.Title = strings.TrimSpace(b.doc.Title)
			}
			b.closeTag(token.TagName)
		}
	}

	return b.doc, nil
}

func (b *treeBuilder) currentParent() *Node {
	if len(b.stack) == 0 {
		return b.doc.Root
	}
	return b.stack[len(b.stack)-1]
}

// closeTag pops the stack until the matching tag is found and closed.
// Unmatched end tags are ignored.
func (b *treeBuilder) closeTag(tagName string) {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].TagName == tagName {
			b.stack = b.stack[:i]
			return
		}
	}
}

// autoCloseP closes an open <p> element if one is on the stack, without
// closing past block-level containers.
func (b *treeBuilder) autoCloseP() {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].TagName == "p" {
			b.stack = b.stack[:i]
			return
		}
		if isBlockElement(b.stack[i].TagName) {
			return
		}
	}
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// isBlockElement reports tags that auto-close an open <p>.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "address", "article", "aside", "blockquote", "details", "dialog",
		"dd", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol",
		"p", "pre", "section", "table", "ul":
		return true
	}
	return false
}
