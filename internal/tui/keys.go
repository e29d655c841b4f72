package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	FocusToolbar  key.Binding
	CopyHTML      key.Binding
	TogglePreview key.Binding
	SelectAll     key.Binding

	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	SelLeft   key.Binding
	SelRight  key.Binding
	SelUp     key.Binding
	SelDown   key.Binding
	SelHome   key.Binding
	SelEnd    key.Binding
	Enter     key.Binding
	Backspace key.Binding
	Delete    key.Binding

	// Toolbar navigation.
	Activate key.Binding
	Back     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		FocusToolbar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toolbar")),
		CopyHTML:      key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "copy html")),
		TogglePreview: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
		SelectAll:     key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+home")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+end")),
		SelLeft:   key.NewBinding(key.WithKeys("shift+left")),
		SelRight:  key.NewBinding(key.WithKeys("shift+right")),
		SelUp:     key.NewBinding(key.WithKeys("shift+up")),
		SelDown:   key.NewBinding(key.WithKeys("shift+down")),
		SelHome:   key.NewBinding(key.WithKeys("shift+home")),
		SelEnd:    key.NewBinding(key.WithKeys("shift+end")),
		Enter:     key.NewBinding(key.WithKeys("enter")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Delete:    key.NewBinding(key.WithKeys("delete")),

		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "apply")),
		Back:     key.NewBinding(key.WithKeys("tab", "esc", "shift+tab"), key.WithHelp("esc", "back")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusToolbar, k.SelectAll, k.CopyHTML, k.TogglePreview, k.Quit}
}
