package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Format selects an output backend
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FileName returns the export file name for a UTC day, e.g.
// searchfields-matrix-2024-05-01.png
func FileName(now time.Time, f Format) string {
	return fmt.Sprintf("searchfields-matrix-%s.%s", now.UTC().Format("2006-01-02"), f)
}

// Render writes the sheet in one format.
func Render(f Format, s Sheet) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatPNG:
		err = RenderPNG(&buf, s)
	case FormatSVG:
		err = RenderSVG(&buf, s)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFiles renders every requested format concurrently into dir and
// returns the written paths in the order the formats were given. Nothing is
// written if any render fails.
func WriteFiles(ctx context.Context, dir string, s Sheet, now time.Time, logger *zap.Logger, formats ...Format) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(formats) == 0 {
		formats = []Format{FormatPNG, FormatSVG}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	rendered := make([][]byte, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := Render(f, s)
			if err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}
			rendered[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(formats))
	for i, f := range formats {
		path := filepath.Join(dir, FileName(now, f))
		if err := os.WriteFile(path, rendered[i], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("exported matrix", zap.String("path", path), zap.Int("bytes", len(rendered[i])))
		paths[i] = path
	}
	return paths, nil
}
