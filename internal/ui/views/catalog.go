package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/formsmith/internal/dropzone"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/reconcile"
	"github.com/tgienger/formsmith/internal/ui/keys"
	"github.com/tgienger/formsmith/internal/ui/styles"
)

// inserter is implemented by targets that pick their own insert position
type inserter interface {
	InsertIndex() int
}

// CatalogView is the right pane listing one template per element type.
// Pressing enter drops a copy of the template into the connected list.
type CatalogView struct {
	styles *styles.Styles
	keys   keys.KeyMap

	catalog []models.FormElement
	shown   []models.FormElement
	target  dropzone.Target

	width   int
	height  int
	focused bool

	cursor    int
	scrollY   int
	searching bool
	search    textinput.Model
}

// NewCatalogView creates the catalog pane over catalog
func NewCatalogView(catalog []models.FormElement) *CatalogView {
	search := textinput.New()
	search.Placeholder = "Search fields..."
	search.CharLimit = 50

	v := &CatalogView{
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		catalog: catalog,
		search:  search,
	}
	v.applyFilter()
	return v
}

// ConnectTo sets the list that receives drops
func (v *CatalogView) ConnectTo(target dropzone.Target) {
	v.target = target
}

// Target returns the connected list, if any
func (v *CatalogView) Target() dropzone.Target {
	return v.target
}

// Searching reports whether the search box has the keyboard
func (v *CatalogView) Searching() bool {
	return v.searching
}

func (v *CatalogView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.search.Width = max(width-10, 8)
	v.ensureVisible()
}

func (v *CatalogView) SetFocused(focused bool) {
	v.focused = focused
	if !focused && v.searching {
		v.searching = false
		v.search.Blur()
	}
}

// Update handles keys while the pane has focus. While searching, other
// messages go to the search box.
func (v *CatalogView) Update(msg tea.Msg) tea.Cmd {
	km, isKey := msg.(tea.KeyMsg)
	if v.searching {
		if isKey {
			switch {
			case key.Matches(km, v.keys.Back):
				v.searching = false
				v.search.Blur()
				v.search.Reset()
				v.applyFilter()
				return nil
			case key.Matches(km, v.keys.Enter):
				v.searching = false
				v.search.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.applyFilter()
		return cmd
	}
	if !isKey {
		return nil
	}

	switch {
	case key.Matches(km, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return textinput.Blink
	case key.Matches(km, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
	case key.Matches(km, v.keys.Down):
		if v.cursor < len(v.shown)-1 {
			v.cursor++
			v.ensureVisible()
		}
	case key.Matches(km, v.keys.Enter), key.Matches(km, v.keys.Grab):
		return v.drop()
	}
	return nil
}

// drop sends the template under the cursor to the connected list
func (v *CatalogView) drop() tea.Cmd {
	if v.target == nil || v.cursor >= len(v.shown) {
		return nil
	}
	template := v.shown[v.cursor].Clone()

	dest := 0
	if in, ok := v.target.(inserter); ok {
		dest = in.InsertIndex()
	}

	return emit(ElementDropped{Event: reconcile.DropEvent{
		SourceContainer: reconcile.CatalogContainer,
		DestContainer:   v.target.ContainerID(),
		SourceIndex:     v.cursor,
		DestIndex:       dest,
		Payload:         &template,
	}})
}

func (v *CatalogView) applyFilter() {
	v.shown = models.FilterCatalog(v.catalog, v.search.Value())
	v.cursor = clamp(v.cursor, 0, max(0, len(v.shown)-1))
	v.scrollY = 0
	v.ensureVisible()
}

func (v *CatalogView) visibleItems() int {
	// Header rows and category labels take roughly a third of the pane
	return max((v.height-8)*2/3, 1)
}

func (v *CatalogView) ensureVisible() {
	visible := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
}

// View renders the pane
func (v *CatalogView) View() string {
	s := v.styles
	pane := s.Pane
	if v.focused {
		pane = s.PaneFocused
	}
	inner := max(v.width-4, 10)

	searchStyle := s.Input
	if v.searching {
		searchStyle = s.InputFocused
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Form Elements"))
	b.WriteString("\n")
	b.WriteString(searchStyle.Width(inner - 2).Render(v.search.View()))
	b.WriteString("\n")

	if v.target == nil {
		b.WriteString(s.TitleMuted.Render("Select a group to add fields."))
		b.WriteString("\n")
	}

	if len(v.shown) == 0 {
		b.WriteString(s.TitleMuted.Render("No matching fields."))
		return pane.Width(v.width - 2).Height(v.height - 2).Render(b.String())
	}

	var rows []string
	var lastCategory models.ElementCategory
	end := min(v.scrollY+v.visibleItems(), len(v.shown))
	for i := v.scrollY; i < end; i++ {
		el := v.shown[i]
		if el.Category != lastCategory {
			rows = append(rows, s.Category.Render(string(el.Category)))
			lastCategory = el.Category
		}
		rows = append(rows, v.renderEntry(el, i == v.cursor, inner))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return pane.Width(v.width - 2).Height(v.height - 2).Render(b.String())
}

func (v *CatalogView) renderEntry(el models.FormElement, atCursor bool, width int) string {
	s := v.styles

	style := s.ListItem.Width(width)
	if atCursor && v.focused {
		style = s.ListSelected.Width(width)
	}

	line := s.Icon.Render(models.Icon(el.Type)) + string(el.Type)
	if width > 30 {
		line += s.TitleMuted.Render("  " + models.Summary(el.Type))
	}
	return style.Render(line)
}
