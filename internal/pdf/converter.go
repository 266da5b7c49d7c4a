package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrConverterUnavailable - wkhtmltopdf не найден
	ErrConverterUnavailable = errors.New("pdf converter unavailable")
	// ErrConversionTimeout - конвертация не уложилась в отведённое время
	ErrConversionTimeout = errors.New("pdf conversion timed out")
)

// DefaultTimeout ограничивает время работы wkhtmltopdf
const DefaultTimeout = 60 * time.Second

// Converter превращает HTML в PDF через wkhtmltopdf (A4, книжная, без полей)
type Converter struct {
	Binary  string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewConverter создаёт конвертер; пустой binary означает wkhtmltopdf из PATH
func NewConverter(binary string, timeout time.Duration, logger zerolog.Logger) *Converter {
	if binary == "" {
		binary = "wkhtmltopdf"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Converter{Binary: binary, Timeout: timeout, Logger: logger}
}

// Available сообщает, найден ли исполняемый файл
func (c *Converter) Available() bool {
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

// Convert возвращает PDF, собранный из html. Временные файлы удаляются
func (c *Converter) Convert(ctx context.Context, html string) ([]byte, error) {
	binary, err := exec.LookPath(c.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConverterUnavailable, c.Binary)
	}

	dir, err := os.MkdirTemp("", "proposal-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "proposal.html")
	pdfPath := filepath.Join(dir, "proposal.pdf")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write html: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary,
		"--page-size", "A4", "--orientation", "Portrait",
		"--margin-top", "0", "--margin-bottom", "0", "--margin-left", "0", "--margin-right", "0",
		"--enable-local-file-access", "--quiet",
		htmlPath, pdfPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrConversionTimeout, timeout)
		}
		return nil, fmt.Errorf("wkhtmltopdf failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	c.Logger.Debug().Int("bytes", len(data)).Dur("took", time.Since(start)).Msg("pdf converted")
	return data, nil
}
