package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"remotetv/internal/ui/input/types"
)

// TextInputMode owns every key while a text field is being edited
type TextInputMode struct {
	name      string
	textInput *textinput.Model
}

func NewTextInputMode(name, placeholder string, ti *textinput.Model) *TextInputMode {
	ti.Placeholder = placeholder
	ti.Prompt = "" // Prompt is handled in the UI layer
	return &TextInputMode{name: name, textInput: ti}
}

func (m *TextInputMode) Name() string {
	return m.name
}

func (m *TextInputMode) Enter() []types.Action {
	m.textInput.Focus()
	return nil
}

func (m *TextInputMode) Exit() []types.Action {
	m.textInput.Blur()
	return nil
}

func (m *TextInputMode) Value() string {
	return m.textInput.Value()
}

func (m *TextInputMode) HandleKey(ev types.KeyEvent) ([]types.Action, bool) {
	switch ev.Msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEsc:
		return []types.Action{
			types.CancelTextAction{},
			types.ReleaseAction{Owner: m.name},
		}, true
	case tea.KeyEnter, tea.KeyDown:
		return []types.Action{
			types.SubmitTextAction{Text: m.textInput.Value()},
			types.ReleaseAction{Owner: m.name},
		}, true
	}

	*m.textInput, _ = m.textInput.Update(ev.Msg)
	return []types.Action{types.UpdateTextAction{Text: m.textInput.Value()}}, true
}
