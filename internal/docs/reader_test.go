package docs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTextPlain(t *testing.T) {
	path := writeTemp(t, "cv.txt", "Jane Doe\nBackend Engineer")

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend Engineer", text)
}

func TestReadTextMarkdown(t *testing.T) {
	t.Run("strips frontmatter", func(t *testing.T) {
		path := writeTemp(t, "cv.md", "---\ntitle: CV\nsource: linkedin\n---\n\n# Jane Doe\nBackend Engineer")

		text, err := ReadText(path)
		require.NoError(t, err)
		assert.Equal(t, "# Jane Doe\nBackend Engineer", text)
	})

	t.Run("keeps invalid frontmatter as content", func(t *testing.T) {
		content := "---\n: :: not yaml [\n---\nBody"
		path := writeTemp(t, "cv.md", content)

		text, err := ReadText(path)
		require.NoError(t, err)
		assert.Equal(t, content, text)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		path := writeTemp(t, "cv.md", "# Jane Doe")

		text, err := ReadText(path)
		require.NoError(t, err)
		assert.Equal(t, "# Jane Doe", text)
	})
}

func TestReadTextUnsupported(t *testing.T) {
	path := writeTemp(t, "cv.docx", "binary stuff")

	_, err := ReadText(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestReadTextMissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("cv.pdf"))
	assert.True(t, Supported("CV.TXT"))
	assert.True(t, Supported("notes.md"))
	assert.False(t, Supported("cv.docx"))
	assert.False(t, Supported("cv"))
}
