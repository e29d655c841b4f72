package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inkwell/internal/ingest"
)

// The picker only offers these; the pipeline still checks the MIME type of
// whatever is chosen.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp", ".avif"}

func imagePickerHeight(screenH int) int {
	// Leave room for the modal title, borders and help line.
	return min(max(screenH-16, 8), 18)
}

func newImagePicker(startDir string, height int) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = imageExtensions
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = max(height, 8)
	fp.Cursor = pick("›", ">")
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.DisabledFile = styleMuted()
	fp.Styles.DisabledSelected = styleMuted()
	fp.Styles.FileSize = styleMuted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	// Start in the last used directory, else the user's home.
	startDir = strings.TrimSpace(startDir)
	if startDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = home
		}
	}
	if startDir == "" {
		startDir = "."
	}
	fp.CurrentDirectory = startDir
	return fp
}

// updateImagePicker forwards msg to the picker and starts an encode once a
// file is chosen.
func (m *appModel) updateImagePicker(msg tea.Msg) tea.Cmd {
	s := m.modal
	if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "esc" || k.String() == "ctrl+g") {
		s.close()
		return nil
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)

	if ok, path := s.picker.DidSelectFile(msg); ok {
		s.pickerLastDir = filepath.Dir(path)
		s.close()
		return tea.Batch(cmd, m.ingestFile(ingest.DiskFile{Path: path}))
	}
	if ok, path := s.picker.DidSelectDisabledFile(msg); ok {
		m.showMinibuffer("Not an image: " + filepath.Base(path))
	}
	return cmd
}

func (m *appModel) renderImagePickerModal() string {
	bodyW := modalBodyWidth(m.width)
	help := styleMuted().Width(bodyW).Render("enter: insert   h/←: up   esc: cancel")
	dir := styleMuted().Width(bodyW).Render(m.modal.picker.CurrentDirectory)
	content := strings.Join([]string{dir, "", m.modal.picker.View(), "", help}, "\n")
	return renderModalBox(m.width, "Insert image", content)
}
