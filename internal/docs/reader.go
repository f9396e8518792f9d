// Package docs extracts plain text from uploaded CV and job posting
// documents.
package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions the reader
// cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// SupportedExtensions lists the extensions ReadText accepts.
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

// Supported reports whether the file's extension can be read.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ReadText extracts the plain text of the document at path. Markdown
// frontmatter is stripped; PDF pages are concatenated in order.
func ReadText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	case ".txt":
		return readPlain(path)
	case ".md":
		text, err := readPlain(path)
		if err != nil {
			return "", err
		}
		return stripFrontmatter(text), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract text from page %d: %w", pageIndex, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// stripFrontmatter removes a leading YAML frontmatter block. Invalid
// YAML means the block is treated as regular content.
func stripFrontmatter(content string) string {
	if !strings.HasPrefix(content, "---\n") {
		return content
	}
	endIdx := strings.Index(content[4:], "\n---")
	if endIdx <= 0 {
		return content
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(content[4:4+endIdx]), &meta); err != nil {
		return content
	}
	return strings.TrimPrefix(strings.TrimPrefix(content[4+endIdx+4:], "\n"), "\n")
}
