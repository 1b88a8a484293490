package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const filePrefix = "system-report-"

// Write renders the plaintext report into dir and returns the path.
func Write(r *Report, dir, version string) (string, error) {
	return writeFile(r, dir, ".txt", func(f *os.File) error {
		return Render(f, r, version)
	})
}

// WriteHTML renders the HTML variant next to the text report.
func WriteHTML(r *Report, dir, version string) (string, error) {
	return writeFile(r, dir, ".html", func(f *os.File) error {
		return RenderHTML(f, r, version)
	})
}

func writeFile(r *Report, dir, ext string, render func(*os.File) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, filePrefix+r.GeneratedAt.Format("20060102-150405")+ext)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

// Prune removes report files older than the retention window and
// returns how many were deleted. A missing directory prunes nothing.
func Prune(dir string, retention time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := now.Add(-retention)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
