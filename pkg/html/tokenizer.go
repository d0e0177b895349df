package html

import (
	"fmt"
	gohtml "html"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

// Token is one markup item: a tag with its attributes, or a text run.
type Token struct {
	Type        TokenType
	TagName     string
	Attributes  map[string]string
	Text        string
	SelfClosing bool
}

// Tokenizer splits markup into tags and text runs for the legacy tree
// parser. Raw-text element content is read out of band with
// ReadRawUntil, since '<' carries no markup meaning inside it.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// NextToken returns the next tag or text token. Comments, doctype
// declarations, and processing instructions are consumed silently;
// whitespace-only text between tags is dropped.
func (t *Tokenizer) NextToken() (Token, error) {
	for t.pos < len(t.input) {
		if t.input[t.pos] != '<' {
			if tok, ok := t.scanText(); ok {
				return tok, nil
			}
			continue
		}
		switch {
		case strings.HasPrefix(t.rest(), "<!--"):
			t.skipPast("-->")
		case strings.HasPrefix(t.rest(), "<?"):
			t.skipPast("?>")
		case strings.HasPrefix(t.rest(), "<!"):
			t.skipPast(">")
		case strings.HasPrefix(t.rest(), "</"):
			return t.scanEndTag()
		default:
			return t.scanStartTag()
		}
	}
	return Token{Type: TokenEOF}, nil
}

func (t *Tokenizer) rest() string { return t.input[t.pos:] }

// skipPast advances beyond the next occurrence of marker, or to the end
// of the input when it never appears.
func (t *Tokenizer) skipPast(marker string) {
	if idx := strings.Index(t.rest(), marker); idx >= 0 {
		t.pos += idx + len(marker)
		return
	}
	t.pos = len(t.input)
}

// scanText consumes a run up to the next '<'. Whitespace-only runs are
// dropped; anything else is whitespace-normalized and entity-decoded.
func (t *Tokenizer) scanText() (Token, bool) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	raw := t.input[start:t.pos]
	if strings.TrimSpace(raw) == "" {
		return Token{}, false
	}
	return Token{
		Type: TokenText,
		Text: gohtml.UnescapeString(normalizeWhitespace(raw)),
	}, true
}

func (t *Tokenizer) scanEndTag() (Token, error) {
	t.pos += 2
	name := t.scanName(isTagNameChar)
	if name == "" {
		return Token{}, fmt.Errorf("malformed end tag at offset %d", t.pos)
	}
	t.skipPast(">")
	return Token{Type: TokenEndTag, TagName: name}, nil
}

func (t *Tokenizer) scanStartTag() (Token, error) {
	t.pos++
	name := t.scanName(isTagNameChar)
	if name == "" {
		return Token{}, fmt.Errorf("malformed tag at offset %d", t.pos)
	}

	tok := Token{Type: TokenStartTag, TagName: name, Attributes: make(map[string]string)}
	for {
		t.skipSpace()
		if t.pos >= len(t.input) {
			return Token{}, fmt.Errorf("unterminated tag <%s>", name)
		}
		switch t.input[t.pos] {
		case '>':
			t.pos++
			return tok, nil
		case '/':
			t.pos++
			t.skipSpace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				tok.SelfClosing = true
				return tok, nil
			}
		default:
			key, value, err := t.scanAttribute()
			if err != nil {
				return Token{}, err
			}
			tok.Attributes[key] = value
		}
	}
}

// scanAttribute reads one attribute. A bare name without '=' carries an
// empty value.
func (t *Tokenizer) scanAttribute() (key, value string, err error) {
	key = t.scanName(isAttrNameChar)
	if key == "" {
		return "", "", fmt.Errorf("malformed attribute at offset %d", t.pos)
	}
	t.skipSpace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return key, "", nil
	}
	t.pos++
	t.skipSpace()
	value, err = t.scanAttributeValue()
	return key, value, err
}

func (t *Tokenizer) scanAttributeValue() (string, error) {
	if t.pos < len(t.input) {
		if q := t.input[t.pos]; q == '"' || q == '\'' {
			t.pos++
			end := strings.IndexByte(t.rest(), q)
			if end < 0 {
				return "", fmt.Errorf("unterminated attribute value at offset %d", t.pos)
			}
			value := t.input[t.pos : t.pos+end]
			t.pos += end + 1
			return value, nil
		}
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return t.input[start:t.pos], nil
}

// ReadRawUntil consumes content up to and including the closing tag of
// a raw-text element and returns that content. Without a closing tag
// the remainder of the input is consumed.
func (t *Tokenizer) ReadRawUntil(endTag string) string {
	needle := "</" + endTag + ">"
	idx := strings.Index(strings.ToLower(t.rest()), needle)
	if idx < 0 {
		content := t.rest()
		t.pos = len(t.input)
		return content
	}
	content := t.rest()[:idx]
	t.pos += idx + len(needle)
	return content
}

func (t *Tokenizer) scanName(valid func(byte) bool) string {
	start := t.pos
	for t.pos < len(t.input) && valid(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) skipSpace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

// normalizeWhitespace collapses interior whitespace runs to single
// spaces while keeping one boundary space on either side. Boundary
// spaces are significant for inline flow: "text <em>word</em> more"
// must keep the gaps between text nodes and the inline element.
func normalizeWhitespace(s string) string {
	hasLeading := len(s) > 0 && unicode.IsSpace(rune(s[0]))
	hasTrailing := len(s) > 0 && unicode.IsSpace(rune(s[len(s)-1]))

	fields := strings.Fields(s)
	if len(fields) == 0 {
		if hasLeading || hasTrailing {
			return " "
		}
		return ""
	}

	result := strings.Join(fields, " ")
	if hasLeading {
		result = " " + result
	}
	if hasTrailing {
		result = result + " "
	}
	return result
}

func isTagNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

func isAttrNameChar(c byte) bool {
	return isTagNameChar(c) || c == ':' || c == '.'
}
