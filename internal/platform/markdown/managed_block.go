package markdown

import "strings"

// Block is a generated region of a note delimited by HTML comment markers.
// Text outside the markers belongs to the user and is never rewritten.
type Block struct {
	Start string
	End   string
}

// Replace swaps the block content in body, appending the block when absent.
func (b Block) Replace(body, generated string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	block := b.Start + "\n" + generated + "\n" + b.End

	if start >= 0 && end > start {
		end += len(b.End)
		return body[:start] + block + body[end:]
	}

	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Remove strips the block, leaving the surrounding text intact.
func (b Block) Remove(body string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	if start < 0 || end <= start {
		return body
	}
	end += len(b.End)
	head := strings.TrimRight(body[:start], "\n")
	rest := strings.TrimLeft(body[end:], "\n")
	switch {
	case head == "":
		return rest
	case rest == "":
		return head + "\n"
	default:
		return head + "\n\n" + rest
	}
}
