package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/reconcile"
	"github.com/tgienger/formsmith/internal/ui/keys"
	"github.com/tgienger/formsmith/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// ElementListView is the middle pane showing the active group's elements.
// It is also the drop target the catalog sends new elements to.
type ElementListView struct {
	styles *styles.Styles
	keys   keys.KeyMap

	groupID   string
	groupName string
	elements  []models.FormElement

	width   int
	height  int
	focused bool

	cursor  int
	scrollY int

	// Keyboard drag: the element picked up at grabFrom follows the cursor
	grabbing bool
	grabFrom int
}

// NewElementListView creates the element pane
func NewElementListView() *ElementListView {
	return &ElementListView{
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

// SetGroup shows group's elements. Passing an empty id clears the pane.
func (v *ElementListView) SetGroup(id, name string, elements []models.FormElement) {
	if id != v.groupID {
		v.cursor = 0
		v.scrollY = 0
		v.grabbing = false
	}
	v.groupID = id
	v.groupName = name
	v.elements = elements
	if v.cursor >= len(v.elements) {
		v.cursor = max(0, len(v.elements)-1)
	}
	v.ensureVisible()
}

// ContainerID identifies the pane as a drop target
func (v *ElementListView) ContainerID() string {
	return reconcile.GroupContainer(v.groupID)
}

// HasGroup reports whether a group is on screen
func (v *ElementListView) HasGroup() bool {
	return v.groupID != ""
}

// InsertIndex is where a catalog drop lands: just below the cursor
func (v *ElementListView) InsertIndex() int {
	if len(v.elements) == 0 {
		return 0
	}
	return v.cursor + 1
}

// FocusIndex moves the cursor, used after an insert
func (v *ElementListView) FocusIndex(i int) {
	v.cursor = clamp(i, 0, max(0, len(v.elements)-1))
	v.ensureVisible()
}

func (v *ElementListView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ensureVisible()
}

func (v *ElementListView) SetFocused(focused bool) {
	v.focused = focused
	if !focused {
		v.grabbing = false
	}
}

// Grabbing reports whether an element is being dragged
func (v *ElementListView) Grabbing() bool {
	return v.grabbing
}

// Update handles keys while the pane has focus
func (v *ElementListView) Update(msg tea.KeyMsg) tea.Cmd {
	if !v.HasGroup() {
		return nil
	}
	if v.grabbing {
		return v.updateGrabbing(msg)
	}

	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.elements)-1 {
			v.cursor++
			v.ensureVisible()
		}
	case key.Matches(msg, v.keys.Grab):
		if len(v.elements) > 1 {
			v.grabbing = true
			v.grabFrom = v.cursor
		}
	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
		if el, ok := v.current(); ok {
			return emit(ElementSelected{Element: el})
		}
	case key.Matches(msg, v.keys.Copy):
		if el, ok := v.current(); ok {
			return emit(ElementCopyRequested{Element: el})
		}
	case key.Matches(msg, v.keys.Delete):
		if el, ok := v.current(); ok {
			return emit(ElementDeleteRequested{Element: el})
		}
	}
	return nil
}

func (v *ElementListView) updateGrabbing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.grabbing = false
		v.cursor = v.grabFrom
		v.ensureVisible()
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.elements)-1 {
			v.cursor++
			v.ensureVisible()
		}
	case key.Matches(msg, v.keys.Grab), key.Matches(msg, v.keys.Enter):
		v.grabbing = false
		if v.cursor == v.grabFrom {
			return nil
		}
		container := v.ContainerID()
		return emit(ElementDropped{Event: reconcile.DropEvent{
			SourceContainer: container,
			DestContainer:   container,
			SourceIndex:     v.grabFrom,
			DestIndex:       v.cursor,
		}})
	}
	return nil
}

func (v *ElementListView) current() (models.FormElement, bool) {
	if v.cursor < 0 || v.cursor >= len(v.elements) {
		return models.FormElement{}, false
	}
	return v.elements[v.cursor], true
}

func (v *ElementListView) visibleItems() int {
	// Each element is 2 lines + 1 margin
	return max((v.height-6)/3, 1)
}

func (v *ElementListView) ensureVisible() {
	visible := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
}

// View renders the pane
func (v *ElementListView) View() string {
	s := v.styles
	pane := s.Pane
	if v.focused {
		pane = s.PaneFocused
	}
	inner := max(v.width-4, 10)

	var b strings.Builder
	if !v.HasGroup() {
		b.WriteString(s.Title.Render("Form Elements"))
		b.WriteString("\n\n")
		b.WriteString(s.TitleMuted.Render("Select a group to edit its fields."))
		return pane.Width(v.width - 2).Height(v.height - 2).Render(b.String())
	}

	b.WriteString(s.Title.Render(v.groupName))
	b.WriteString("\n")
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("%d fields", len(v.elements))))
	b.WriteString("\n\n")

	if len(v.elements) == 0 {
		b.WriteString(s.TitleMuted.Render("Empty. Tab to the catalog and press ↵ to add a field."))
		return pane.Width(v.width - 2).Height(v.height - 2).Render(b.String())
	}

	shown := v.elements
	if v.grabbing {
		shown = reconcile.MoveItem(v.elements, v.grabFrom, v.cursor)
	}

	var items []string
	end := min(v.scrollY+v.visibleItems(), len(shown))
	for i := v.scrollY; i < end; i++ {
		items = append(items, v.renderElement(shown[i], i == v.cursor, inner))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, items...))

	return pane.Width(v.width - 2).Height(v.height - 2).Render(b.String())
}

func (v *ElementListView) renderElement(el models.FormElement, atCursor bool, width int) string {
	s := v.styles

	name := el.Name
	if el.Required {
		name += s.ElementRequired.Render(" *")
	}
	title := models.Icon(el.Type) + "  " + name
	meta := s.ElementType.Render(string(el.Type))
	if el.Description != "" {
		meta += s.TitleMuted.Render("  " + el.Description)
	}

	style := s.ElementItem.Width(width)
	switch {
	case atCursor && v.grabbing:
		style = s.ElementGrabbed.Width(width)
	case atCursor && v.focused:
		style = s.ListSelected.Width(width)
	}

	return style.Render(title) + "\n" + s.ElementItem.Width(width).Render(meta) + "\n"
}
