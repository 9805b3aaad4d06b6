package domain

import "strings"

const (
	byteOrderMark = "\uFEFF"

	blockOpen   = "/*"
	blockClose  = "*/"
	lineComment = "//"
)

// CountLines returns the number of lines that are neither blank nor
// consumed by a comment.
//
// This is a line scanner, not a lexer: comment tokens inside string literals
// are taken at face value and nested block comments end at the first close
// token. A line that opens a block comment is never counted, even when code
// follows the close token on that same line; only a continuation line that
// closes the block and then carries code counts. A leading byte order mark
// is ignored.
func CountLines(content string) int {
	content = strings.TrimPrefix(content, byteOrderMark)
	if strings.TrimSpace(content) == "" {
		return 0
	}

	count := 0
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if inBlock {
			idx := strings.Index(trimmed, blockClose)
			if idx < 0 {
				continue
			}
			inBlock = false
			rest := strings.TrimSpace(trimmed[idx+len(blockClose):])
			if rest != "" && !strings.HasPrefix(rest, lineComment) {
				count++
			}
			continue
		}

		if strings.HasPrefix(trimmed, blockOpen) {
			if !strings.Contains(trimmed, blockClose) {
				inBlock = true
			}
			continue
		}

		if strings.HasPrefix(trimmed, lineComment) {
			continue
		}

		count++
	}
	return count
}
