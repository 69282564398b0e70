// Package markdown reads and writes notes made of YAML frontmatter and a markdown body.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	separator = "---\n"
	closing   = "\n---\n"
)

// ErrInvalidFrontmatter marks a note whose frontmatter cannot be decoded.
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

// Split separates the frontmatter from the body and decodes it into meta.
// Content without frontmatter leaves meta untouched and returns the whole body.
func Split(content string, meta any) (string, error) {
	if !strings.HasPrefix(content, separator) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, closing)
	if idx < 0 {
		return "", fmt.Errorf("%w: missing closing separator", ErrInvalidFrontmatter)
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), meta); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	return strings.TrimPrefix(rest[idx+len(closing):], "\n"), nil
}

// Render encodes meta as frontmatter followed by a blank line and body.
func Render(meta any, body string) (string, error) {
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf.WriteString(separator)
	buf.WriteString("\n")
	buf.WriteString(body)
	return buf.String(), nil
}
