package chart

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/edakit/internal/utils"
	"github.com/google/uuid"
)

// Displayer shows a finished figure. Plotters call it only for figures they own.
type Displayer interface {
	Display(fig *Figure, name string) error
}

// FileDisplayer writes figures as image files and optionally opens them with a viewer.
type FileDisplayer struct {
	// Dir receives generated file names. Empty means the working directory.
	Dir string
	// Path, when set, is used as-is instead of a generated name.
	Path string
	// Format is png, jpg or svg. Empty means the Path extension, or png.
	Format string
	// OpenCommand, when set, is started with the written path as its only argument.
	OpenCommand string

	// LastPath is the most recently written file.
	LastPath string
}

// DefaultDisplayer is used when an options struct leaves Display nil.
var DefaultDisplayer Displayer = &FileDisplayer{Format: "png"}

func (d *FileDisplayer) format() string {
	if d.Format != "" {
		return strings.ToLower(d.Format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(d.Path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "png"
}

// Display renders fig and writes it atomically.
func (d *FileDisplayer) Display(fig *Figure, name string) error {
	format := d.format()
	var buf bytes.Buffer
	if err := fig.Render(&buf, format); err != nil {
		return err
	}
	path := d.Path
	if path == "" {
		dir := d.Dir
		if dir == "" {
			dir = "."
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%s.%s", utils.Slug(name), uuid.NewString()[:8], format))
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	d.LastPath = path
	slog.Info("chart written", "path", path, "format", format, "bytes", buf.Len())
	if d.OpenCommand != "" {
		cmd := exec.Command(d.OpenCommand, path)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("open chart with %s: %w", d.OpenCommand, err)
		}
		go func() { _ = cmd.Wait() }()
	}
	return nil
}

func displayer(d Displayer) Displayer {
	if d == nil {
		return DefaultDisplayer
	}
	return d
}
