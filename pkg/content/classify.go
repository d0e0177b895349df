// Package content classifies fetched payloads and builds documents
// from them.
package content

import (
	"strings"

	"skiff/pkg/web"
)

// DefaultEncoding is the fallback text encoding when the response names
// none.
const DefaultEncoding = "utf-8"

// extensionMIMETypes maps address path suffixes to MIME types when the
// response carries no Content-Type header.
var extensionMIMETypes = []struct {
	suffix string
	mime   string
}{
	{".png", "image/png"},
	{".gif", "image/gif"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".md", "text/markdown"},
	{".gmi", "text/gemini"},
	{".html", "text/html"},
	{".htm", "text/html"},
}

// Classify derives the MIME type and text encoding for a response. The
// Content-Type header wins; without one the address's path suffix decides
// via a fixed table. The payload bytes are never sniffed.
func Classify(headers *web.Headers, addr *web.Address) (mime, encoding string) {
	if contentType, ok := headers.Get("Content-Type"); ok {
		return mimeTypeFromContentType(contentType), encodingFromContentType(contentType)
	}
	return guessMIMETypeFromPath(addr), DefaultEncoding
}

// encodingFromContentType extracts the charset token from a Content-Type
// value, defaulting to utf-8.
func encodingFromContentType(contentType string) string {
	if idx := strings.Index(contentType, "charset="); idx >= 0 {
		return strings.ToLower(strings.TrimSpace(contentType[idx+len("charset="):]))
	}
	return DefaultEncoding
}

// mimeTypeFromContentType takes everything before the first ';'.
func mimeTypeFromContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func guessMIMETypeFromPath(addr *web.Address) string {
	p := addr.Path()
	for _, entry := range extensionMIMETypes {
		if strings.HasSuffix(p, entry.suffix) {
			return entry.mime
		}
	}
	return "text/plain"
}
