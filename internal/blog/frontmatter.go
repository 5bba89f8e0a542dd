package blog

import "strings"

const frontMatterDelimiter = "---"

// Document is the result of splitting a raw text document into its metadata
// block and body. HasFrontMatter is false when the document had no block, or
// when the block was never closed; in both cases Meta is empty and Body holds
// the whole text.
type Document struct {
	Meta           map[string]string
	Body           string
	HasFrontMatter bool
}

// ParseDocument splits text into front matter and body.
//
// A block opens with a "---" line on the first line and closes with the next
// "---" line. Each line inside is split on its first colon; the key and value
// are trimmed and one matching pair of surrounding quotes is removed from the
// value. Lines without a colon are ignored.
func ParseDocument(text string) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	block, body, ok := splitFrontMatter(text)
	if !ok {
		return Document{Meta: map[string]string{}, Body: text}
	}
	return Document{
		Meta:           parseMeta(block),
		Body:           body,
		HasFrontMatter: true,
	}
}

// splitFrontMatter finds the opening and closing delimiter lines. It returns
// the raw lines between them and everything after the closing line.
func splitFrontMatter(text string) ([]string, string, bool) {
	first, rest, found := strings.Cut(text, "\n")
	if !found || !isDelimiter(first) {
		return nil, "", false
	}

	var block []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if isDelimiter(line) {
			if !more {
				return block, "", true
			}
			return block, tail, true
		}
		if !more {
			return nil, "", false
		}
		block = append(block, line)
		rest = tail
	}
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t") == frontMatterDelimiter
}

func parseMeta(lines []string) map[string]string {
	meta := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = unquote(strings.TrimSpace(value))
	}
	return meta
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
