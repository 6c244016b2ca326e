package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink delivers a finished export and returns where it went
type Sink interface {
	Deliver(ctx context.Context, res *Result) (string, error)
}

// DirSink writes exports into a directory
type DirSink struct {
	Dir string
}

// Deliver writes the PNG under its file name, replacing an older file
func (s DirSink) Deliver(ctx context.Context, res *Result) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	dst := filepath.Join(s.Dir, filepath.Base(res.FileName))
	if err := os.WriteFile(dst, res.PNG, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return dst, nil
}
