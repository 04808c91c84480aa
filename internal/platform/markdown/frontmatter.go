package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter separates a YAML frontmatter block from the document body.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	if !strings.HasPrefix(content, separator) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	decoded := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &decoded); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return decoded, rest[idx+len("\n---\n"):], nil
}

// RenderFrontmatter prefixes body with meta encoded as YAML frontmatter.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}

// Table renders a GitHub-flavoured markdown table. Pipes inside cells are escaped.
func Table(headers []string, rows [][]string) string {
	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(strings.ReplaceAll(cell, "|", `\|`))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
