package tui

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/toolbar"
)

// modalState is shared by every copy of appModel. The toolbar's prompter
// and image requester write into it from inside Update, and the stored
// continuation survives the model being copied.
type modalState struct {
	kind modalKind

	input      textinput.Model
	promptDone func(input string, ok bool)

	alertText string

	picker        filepicker.Model
	pickerLastDir string
	pickerHeight  int

	// cmds are collected while a toolbar action runs and returned by Update.
	cmds []tea.Cmd
}

var (
	_ toolbar.Prompter       = (*modalState)(nil)
	_ toolbar.ImageRequester = (*modalState)(nil)
)

func newModalState() *modalState {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "https://"
	in.CharLimit = 2048
	return &modalState{input: in}
}

// PromptURL opens the URL prompt. done runs when the prompt is submitted or
// cancelled.
func (s *modalState) PromptURL(initial string, done func(string, bool)) {
	s.kind = modalLinkPrompt
	s.promptDone = done
	s.input.SetValue(initial)
	s.input.CursorEnd()
	s.cmds = append(s.cmds, s.input.Focus())
}

// Notify opens an alert with an OK button.
func (s *modalState) Notify(msg string) {
	s.kind = modalAlert
	s.alertText = msg
}

// RequestImage opens the image picker.
func (s *modalState) RequestImage() {
	s.picker = newImagePicker(s.pickerLastDir, s.pickerHeight)
	s.kind = modalPickImage
	s.cmds = append(s.cmds, s.picker.Init())
}

// finishPrompt closes the prompt and runs its continuation once.
func (s *modalState) finishPrompt(ok bool) {
	done := s.promptDone
	value := s.input.Value()
	s.promptDone = nil
	s.input.Blur()
	s.input.SetValue("")
	s.kind = modalNone
	if done != nil {
		done(value, ok)
	}
}

func (s *modalState) close() {
	s.kind = modalNone
	s.alertText = ""
}

func (s *modalState) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
