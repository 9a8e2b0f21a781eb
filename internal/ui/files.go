package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quoteterm/internal/events"
)

// writeFile stores an exported file in the configured export directory.
func (m *model) writeFile(f events.File) (string, error) {
	dir := "."
	if m.cfg != nil && strings.TrimSpace(m.cfg.Config.ExportDir) != "" {
		dir = m.cfg.Config.ExportDir
	}
	dir, err := expandPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(f.FileName))
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// loadPath reads a quote file from disk and hands it to the controller.
func (m *model) loadPath(path string) tea.Cmd {
	m.resetMessages()
	resolved, err := expandPath(path)
	if err != nil {
		m.errMessage = fmt.Sprintf("load path: %v", err)
		return nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		m.errMessage = fmt.Sprintf("open file: %v", err)
		return nil
	}
	return m.publish(events.LoadFile{FileName: filepath.Base(resolved), Content: data})
}

func expandPath(p string) (string, error) {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			switch {
			case len(trimmed) == 1:
				trimmed = home
			case trimmed[1] == '/', trimmed[1] == '\\':
				trimmed = filepath.Join(home, trimmed[2:])
			}
		}
	}
	return filepath.Abs(trimmed)
}
