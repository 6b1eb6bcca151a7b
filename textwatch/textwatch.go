// Package textwatch provides a tether.Source for editable text widgets
// exposing a single text-change listener slot.
//
// Text changes arrive per keystroke; pair this source with a Buffered or
// Unlimited capacity if every edit matters, or keep the Conflated default
// and a Debounce for search-as-you-type.
package textwatch

import "github.com/zoobzio/tether"

// Editor is the widget surface this adapter binds to.
type Editor interface {
	SetOnTextChangedListener(fn func(text string))
	Text() string
}

// Source emits the editor's text after each change.
type Source struct {
	editor Editor
}

// TextChanges creates a Source for the editor's text. The source is
// stateful: binding it replays the current text at subscription time.
func TextChanges(e Editor) *Source {
	return &Source{editor: e}
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(string) bool) (tether.Handle, error) {
	s.editor.SetOnTextChangedListener(func(text string) {
		emit(text)
	})
	return s.editor, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.editor.SetOnTextChangedListener(nil)
}

// Current implements tether.Stateful.
func (s *Source) Current() (string, bool) {
	return s.editor.Text(), true
}
