package content

import (
	gohtml "html"
	"strings"

	"skiff/pkg/web"
)

// renderGemtextToHTML converts a text/gemini payload to HTML, which is
// then parsed like any other HTML document. Gemtext is line-oriented:
// every line is independently one of heading, link, preformat toggle,
// list item, quote, or plain text.
func renderGemtextToHTML(data []byte, base *web.Address) string {
	var sb strings.Builder
	sb.WriteString("<html><body>\n")

	inPre := false
	inList := false
	closeList := func() {
		if inList {
			sb.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, "```") {
			closeList()
			if inPre {
				sb.WriteString("</pre>\n")
			} else {
				sb.WriteString("<pre>\n")
			}
			inPre = !inPre
			continue
		}
		if inPre {
			sb.WriteString(gohtml.EscapeString(line))
			sb.WriteByte('\n')
			continue
		}

		switch {
		case strings.HasPrefix(line, "###"):
			closeList()
			sb.WriteString("<h3>" + gohtml.EscapeString(strings.TrimSpace(line[3:])) + "</h3>\n")
		case strings.HasPrefix(line, "##"):
			closeList()
			sb.WriteString("<h2>" + gohtml.EscapeString(strings.TrimSpace(line[2:])) + "</h2>\n")
		case strings.HasPrefix(line, "#"):
			closeList()
			sb.WriteString("<h1>" + gohtml.EscapeString(strings.TrimSpace(line[1:])) + "</h1>\n")
		case strings.HasPrefix(line, "=>"):
			closeList()
			target, label := splitGeminiLink(line[2:])
			if target == "" {
				continue
			}
			resolved := base.Resolve(target).String()
			sb.WriteString(`<p><a href="` + gohtml.EscapeString(resolved) + `">` +
				gohtml.EscapeString(label) + "</a></p>\n")
		case strings.HasPrefix(line, "* "):
			if !inList {
				sb.WriteString("<ul>\n")
				inList = true
			}
			sb.WriteString("<li>" + gohtml.EscapeString(line[2:]) + "</li>\n")
		case strings.HasPrefix(line, ">"):
			closeList()
			sb.WriteString("<blockquote>" + gohtml.EscapeString(strings.TrimSpace(line[1:])) + "</blockquote>\n")
		case strings.TrimSpace(line) == "":
			closeList()
		default:
			closeList()
			sb.WriteString("<p>" + gohtml.EscapeString(line) + "</p>\n")
		}
	}

	closeList()
	if inPre {
		sb.WriteString("</pre>\n")
	}
	sb.WriteString("</body></html>\n")
	return sb.String()
}

// splitGeminiLink splits the remainder of a "=>" line into target and
// label. A missing label falls back to the target itself.
func splitGeminiLink(rest string) (target, label string) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", ""
	}
	fields := strings.Fields(rest)
	target = fields[0]
	label = strings.TrimSpace(strings.TrimPrefix(rest, target))
	if label == "" {
		label = target
	}
	return target, label
}
