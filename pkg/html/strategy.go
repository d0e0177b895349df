package html

import (
	"golang.org/x/text/encoding/htmlindex"

	"skiff/pkg/web"
)

// Parser turns raw bytes plus a text encoding into a document. Two
// interchangeable strategies implement it: TreeParser (the whole-document
// parser) and StreamParser (incremental tokenizing over x/net/html).
// Strategy selection must not affect observable document structure.
type Parser interface {
	Parse(data []byte, encoding string, base *web.Address) (*Document, error)
}

// decodeCharset converts data from the named encoding to UTF-8. Unknown
// or empty encodings fall back to treating the bytes as UTF-8.
func decodeCharset(data []byte, encoding string) string {
	if encoding == "" || encoding == "utf-8" {
		return string(data)
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return string(data)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
