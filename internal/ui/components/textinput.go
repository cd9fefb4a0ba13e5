package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/vuminh/ghinho/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with app styling for free-text
// answers.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused text input with the given placeholder.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the input, keeping focus.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}

// styles shared by input-adjacent feedback markers
var (
	CorrectMark   = theme.Body.Foreground(theme.Success).Render("✓")
	IncorrectMark = theme.Body.Foreground(theme.Error).Render("✗")
)
