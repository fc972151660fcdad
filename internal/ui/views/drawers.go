package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/ui/keys"
	"github.com/tgienger/formsmith/internal/ui/styles"
)

// ParseOptions splits a one-option-per-line text block into options,
// dropping blank lines
func ParseOptions(text string) []string {
	var options []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			options = append(options, line)
		}
	}
	return options
}

type elementField int

const (
	fieldName elementField = iota
	fieldDescription
	fieldPlaceholder
	fieldOptions
	fieldFileTypes
	fieldRequired
	fieldSave
)

// ElementDrawer is the full-screen form for editing one element
type ElementDrawer struct {
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	element  models.FormElement
	required bool

	name        textinput.Model
	description textarea.Model
	placeholder textinput.Model
	options     textarea.Model
	fileTypes   textinput.Model

	fields []elementField
	focus  int
}

// NewElementDrawer creates a closed element drawer
func NewElementDrawer() *ElementDrawer {
	name := textinput.New()
	name.Placeholder = "Field name"
	name.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Help text shown under the field"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	placeholder := textinput.New()
	placeholder.Placeholder = "Placeholder"
	placeholder.CharLimit = 200

	options := textarea.New()
	options.Placeholder = "One option per line"
	options.CharLimit = 2000
	options.SetWidth(50)
	options.SetHeight(5)
	options.ShowLineNumbers = false

	fileTypes := textinput.New()
	fileTypes.Placeholder = ".pdf,.png,image/*"
	fileTypes.CharLimit = 200

	return &ElementDrawer{
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		name:        name,
		description: desc,
		placeholder: placeholder,
		options:     options,
		fileTypes:   fileTypes,
	}
}

// Open loads element into the form
func (d *ElementDrawer) Open(element models.FormElement) tea.Cmd {
	d.element = element.Clone()
	d.required = element.Required

	d.name.SetValue(element.Name)
	d.description.SetValue(element.Description)
	d.placeholder.SetValue(element.Placeholder)
	d.options.SetValue(strings.Join(element.Options, "\n"))
	d.fileTypes.SetValue(element.FileTypes)

	d.fields = []elementField{fieldName, fieldDescription}
	if models.ShowsPlaceholder(element.Type) {
		d.fields = append(d.fields, fieldPlaceholder)
	}
	if models.ShowsOptions(element.Type) {
		d.fields = append(d.fields, fieldOptions)
	}
	if models.ShowsFileTypes(element.Type) {
		d.fields = append(d.fields, fieldFileTypes)
	}
	d.fields = append(d.fields, fieldRequired, fieldSave)

	d.focus = 0
	d.updateFocus()
	return textinput.Blink
}

// Element returns the element as currently filled in
func (d *ElementDrawer) Element() models.FormElement {
	el := d.element.Clone()
	el.Name = strings.TrimSpace(d.name.Value())
	el.Description = strings.TrimSpace(d.description.Value())
	el.Required = d.required

	if models.ShowsPlaceholder(el.Type) {
		el.Placeholder = strings.TrimSpace(d.placeholder.Value())
	}
	if models.ShowsOptions(el.Type) {
		el.Options = ParseOptions(d.options.Value())
	}
	if models.ShowsFileTypes(el.Type) {
		el.FileTypes = strings.TrimSpace(d.fileTypes.Value())
	}
	return el
}

func (d *ElementDrawer) SetSize(width, height int) {
	d.width = width
	d.height = height
	inputWidth := clamp(styles.ContentWidth(width)-10, 20, 50)
	d.description.SetWidth(inputWidth)
	d.options.SetWidth(inputWidth)
}

func (d *ElementDrawer) current() elementField {
	if d.focus < 0 || d.focus >= len(d.fields) {
		return fieldName
	}
	return d.fields[d.focus]
}

// Update handles keys while the drawer is open. Other messages go to the
// focused input so its cursor keeps blinking.
func (d *ElementDrawer) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := d.handleKey(km); handled {
			return cmd
		}
	}

	var cmd tea.Cmd
	switch d.current() {
	case fieldName:
		d.name, cmd = d.name.Update(msg)
	case fieldDescription:
		d.description, cmd = d.description.Update(msg)
	case fieldPlaceholder:
		d.placeholder, cmd = d.placeholder.Update(msg)
	case fieldOptions:
		d.options, cmd = d.options.Update(msg)
	case fieldFileTypes:
		d.fileTypes, cmd = d.fileTypes.Update(msg)
	}
	return cmd
}

func (d *ElementDrawer) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, d.keys.Back):
		return emit(DrawerClosed{}), true

	case key.Matches(msg, d.keys.Save):
		return emit(ElementCommitted{Element: d.Element()}), true

	case key.Matches(msg, d.keys.Tab):
		d.focus = (d.focus + 1) % len(d.fields)
		d.updateFocus()
		return nil, true

	case msg.String() == "shift+tab":
		d.focus = (d.focus + len(d.fields) - 1) % len(d.fields)
		d.updateFocus()
		return nil, true

	case key.Matches(msg, d.keys.Enter):
		switch d.current() {
		case fieldName, fieldPlaceholder, fieldFileTypes:
			d.focus++
			d.updateFocus()
			return nil, true
		case fieldRequired:
			d.required = !d.required
			return nil, true
		case fieldSave:
			return emit(ElementCommitted{Element: d.Element()}), true
		}

	case key.Matches(msg, d.keys.Toggle):
		if d.current() == fieldRequired {
			d.required = !d.required
			return nil, true
		}
	}
	return nil, false
}

func (d *ElementDrawer) updateFocus() {
	d.name.Blur()
	d.description.Blur()
	d.placeholder.Blur()
	d.options.Blur()
	d.fileTypes.Blur()

	switch d.current() {
	case fieldName:
		d.name.Focus()
	case fieldDescription:
		d.description.Focus()
	case fieldPlaceholder:
		d.placeholder.Focus()
	case fieldOptions:
		d.options.Focus()
	case fieldFileTypes:
		d.fileTypes.Focus()
	}
}

// View renders the drawer full screen
func (d *ElementDrawer) View() string {
	s := d.styles
	contentWidth := styles.ContentWidth(d.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	styleFor := func(f elementField) lipgloss.Style {
		if d.current() == f {
			return s.InputFocused
		}
		return s.Input
	}

	rows := []string{
		s.Title.Render("Edit " + string(d.element.Type) + " field"),
		s.TitleMuted.Render(models.Summary(d.element.Type)),
		"",
		"Name:",
		styleFor(fieldName).Width(inputWidth).Render(d.name.View()),
		"",
		"Description:",
		styleFor(fieldDescription).Render(d.description.View()),
	}
	for _, f := range d.fields {
		switch f {
		case fieldPlaceholder:
			rows = append(rows, "", "Placeholder:",
				styleFor(f).Width(inputWidth).Render(d.placeholder.View()))
		case fieldOptions:
			rows = append(rows, "", "Options:",
				styleFor(f).Render(d.options.View()))
		case fieldFileTypes:
			rows = append(rows, "", "Allowed file types:",
				styleFor(f).Width(inputWidth).Render(d.fileTypes.View()))
		}
	}

	checkbox := "[ ]"
	if d.required {
		checkbox = "[x]"
	}
	requiredStyle := s.ListItem
	if d.current() == fieldRequired {
		requiredStyle = s.ListSelected
	}
	btnStyle := s.Button
	if d.current() == fieldSave {
		btnStyle = s.ButtonFocused
	}

	rows = append(rows,
		"",
		requiredStyle.Render(checkbox+" Required"),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Space: toggle • Ctrl+S: save • Esc: cancel"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, d.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, d.width, d.height)
}

// GroupDrawer is the full-screen form for a group's name and description
type GroupDrawer struct {
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	isNew    bool
	original string

	name        textinput.Model
	description textarea.Model
	focus       int // 0=name, 1=description, 2=save
}

// NewGroupDrawer creates a closed group drawer
func NewGroupDrawer() *GroupDrawer {
	name := textinput.New()
	name.Placeholder = "Group name"
	name.CharLimit = 100

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	return &GroupDrawer{
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		name:        name,
		description: desc,
	}
}

// Open loads group into the form. isNew changes the title only.
func (d *GroupDrawer) Open(group models.FieldGroup, isNew bool) tea.Cmd {
	d.isNew = isNew
	d.original = group.Name
	d.name.SetValue(group.Name)
	d.description.SetValue(group.Description)
	d.focus = 0
	d.updateFocus()
	return textinput.Blink
}

// Values returns the trimmed name and description. An emptied name on an
// existing group keeps the old one.
func (d *GroupDrawer) Values() (name, description string) {
	name = strings.TrimSpace(d.name.Value())
	if name == "" && !d.isNew {
		name = d.original
	}
	return name, strings.TrimSpace(d.description.Value())
}

func (d *GroupDrawer) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.description.SetWidth(clamp(styles.ContentWidth(width)-10, 20, 50))
}

func (d *GroupDrawer) commit() tea.Cmd {
	name, desc := d.Values()
	return emit(GroupCommitted{Name: name, Description: desc})
}

// Update handles keys while the drawer is open
func (d *GroupDrawer) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, d.keys.Back):
			return emit(DrawerClosed{})
		case key.Matches(km, d.keys.Save):
			return d.commit()
		case key.Matches(km, d.keys.Tab):
			d.focus = (d.focus + 1) % 3
			d.updateFocus()
			return nil
		case km.String() == "shift+tab":
			d.focus = (d.focus + 2) % 3
			d.updateFocus()
			return nil
		case key.Matches(km, d.keys.Enter):
			if d.focus == 0 {
				d.focus = 1
				d.updateFocus()
				return nil
			}
			if d.focus == 2 {
				return d.commit()
			}
		}
	}

	var cmd tea.Cmd
	switch d.focus {
	case 0:
		d.name, cmd = d.name.Update(msg)
	case 1:
		d.description, cmd = d.description.Update(msg)
	}
	return cmd
}

func (d *GroupDrawer) updateFocus() {
	d.name.Blur()
	d.description.Blur()
	switch d.focus {
	case 0:
		d.name.Focus()
	case 1:
		d.description.Focus()
	}
}

// View renders the drawer full screen
func (d *GroupDrawer) View() string {
	s := d.styles
	contentWidth := styles.ContentWidth(d.width)

	title := "Edit Group"
	if d.isNew {
		title = "New Group"
	}

	nameStyle := s.Input
	descStyle := s.Input
	btnStyle := s.Button
	switch d.focus {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(title),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(d.name.View()),
		"",
		"Description:",
		descStyle.Render(d.description.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, d.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, d.width, d.height)
}
