package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary пишет скрипт, который копирует входной файл в выходной
func fakeBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported")
	}
	path := filepath.Join(t.TempDir(), "wkhtmltopdf")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestConvertMissingBinary(t *testing.T) {
	c := NewConverter("definitely-not-wkhtmltopdf", time.Second, zerolog.Nop())
	assert.False(t, c.Available())

	_, err := c.Convert(context.Background(), "<html></html>")
	assert.True(t, errors.Is(err, ErrConverterUnavailable))
}

func TestConvertCopiesOutput(t *testing.T) {
	bin := fakeBinary(t, `for a; do src=$dst; dst=$a; done; cp "$src" "$dst"`)
	c := NewConverter(bin, 5*time.Second, zerolog.Nop())
	require.True(t, c.Available())

	data, err := c.Convert(context.Background(), "<html>КП</html>")
	require.NoError(t, err)
	assert.Equal(t, "<html>КП</html>", string(data))
}

func TestConvertFailure(t *testing.T) {
	bin := fakeBinary(t, `echo "broken page" >&2; exit 1`)
	c := NewConverter(bin, 5*time.Second, zerolog.Nop())

	_, err := c.Convert(context.Background(), "<html></html>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken page")
}

func TestConvertTimeout(t *testing.T) {
	bin := fakeBinary(t, `exec sleep 5`)
	c := NewConverter(bin, 100*time.Millisecond, zerolog.Nop())

	_, err := c.Convert(context.Background(), "<html></html>")
	assert.True(t, errors.Is(err, ErrConversionTimeout))
}
