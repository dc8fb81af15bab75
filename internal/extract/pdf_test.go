package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtractorFaults(t *testing.T) {
	e := NewPDFExtractor(nil)
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := e.Extract(ctx, filepath.Join(t.TempDir(), "absent.pdf"))
		assert.Error(t, err)
	})

	t.Run("not a pdf", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.pdf")
		require.NoError(t, os.WriteFile(path, []byte("plain text pretending"), 0o600))

		_, err := e.Extract(ctx, path)
		assert.Error(t, err)
	})

	t.Run("truncated pdf is an error not a panic", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "truncated.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n1 0 obj\n<<"), 0o600))

		_, err := e.Extract(ctx, path)
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.pdf")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		_, err := e.Extract(ctx, path)
		assert.Error(t, err)
	})
}
