package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/ui/keys"
	"github.com/tgienger/formsmith/internal/ui/styles"
)

type groupItem struct {
	group models.FieldGroup
}

func (i groupItem) Title() string       { return i.group.Name }
func (i groupItem) Description() string { return i.group.Description }
func (i groupItem) FilterValue() string { return i.group.Name }

type groupDelegate struct {
	styles     *styles.Styles
	width      int
	selectedID string
}

func (d *groupDelegate) Height() int                               { return 2 }
func (d *groupDelegate) Spacing() int                              { return 1 }
func (d *groupDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d *groupDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	g, ok := item.(groupItem)
	if !ok {
		return
	}

	cursor := index == m.Index()
	width := max(d.width-8, 10)

	var titleStyle, descStyle lipgloss.Style
	if cursor {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	marker := "  "
	if g.group.ID == d.selectedID {
		marker = "● "
	}
	badge := d.styles.Badge.Render(models.Initials(g.group.Name))
	title := titleStyle.Render(marker + g.Title())
	desc := descStyle.Render(fmt.Sprintf("%d fields  %s", len(g.group.Elements), g.Description()))

	fmt.Fprintf(w, "%s %s\n%s", badge, title, desc)
}

// GroupListView is the left pane listing every field group
type GroupListView struct {
	list     list.Model
	delegate *groupDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	focused  bool

	confirmingDelete bool
	deleteTarget     models.FieldGroup
}

// NewGroupListView creates the group pane
func NewGroupListView() *GroupListView {
	s := styles.NewStyles()

	delegate := &groupDelegate{styles: s, width: 30}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Field Groups"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &GroupListView{
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
}

// SetGroups replaces the listed groups
func (v *GroupListView) SetGroups(groups []models.FieldGroup) {
	items := make([]list.Item, len(groups))
	for i, g := range groups {
		items[i] = groupItem{group: g}
	}
	v.list.SetItems(items)
}

// SetSelected marks which group is active
func (v *GroupListView) SetSelected(id string) {
	v.delegate.selectedID = id
	for i, item := range v.list.Items() {
		if g, ok := item.(groupItem); ok && g.group.ID == id {
			v.list.Select(i)
			return
		}
	}
}

func (v *GroupListView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.delegate.width = width
	v.list.SetSize(width-4, height-2)
}

func (v *GroupListView) SetFocused(focused bool) {
	v.focused = focused
}

// Confirming reports whether a delete confirmation is showing
func (v *GroupListView) Confirming() bool {
	return v.confirmingDelete
}

// Update handles keys while the pane has focus
func (v *GroupListView) Update(msg tea.KeyMsg) tea.Cmd {
	if v.confirmingDelete {
		return v.updateConfirmDelete(msg)
	}

	switch {
	case key.Matches(msg, v.keys.New):
		return emit(GroupCreateRequested{})
	case key.Matches(msg, v.keys.Enter):
		if item, ok := v.list.SelectedItem().(groupItem); ok {
			return emit(GroupSelected{Group: item.group})
		}
		return nil
	case key.Matches(msg, v.keys.Edit):
		if item, ok := v.list.SelectedItem().(groupItem); ok {
			return emit(GroupEditRequested{Group: item.group})
		}
		return nil
	case key.Matches(msg, v.keys.Delete):
		if item, ok := v.list.SelectedItem().(groupItem); ok {
			v.confirmingDelete = true
			v.deleteTarget = item.group
		}
		return nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *GroupListView) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Confirm):
		v.confirmingDelete = false
		return emit(GroupDeleteConfirmed{Group: v.deleteTarget})
	case key.Matches(msg, v.keys.Cancel):
		v.confirmingDelete = false
	}
	return nil
}

// View renders the pane
func (v *GroupListView) View() string {
	s := v.styles
	pane := s.Pane
	if v.focused {
		pane = s.PaneFocused
	}

	var content string
	if len(v.list.Items()) == 0 {
		content = lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Field Groups"),
			"",
			s.TitleMuted.Render("No groups yet."),
			s.TitleMuted.Render("Press 'n' to create one."),
		)
	} else {
		content = v.list.View()
	}

	return pane.Width(v.width - 2).Height(v.height - 2).Render(content)
}

// RenderDeleteConfirm renders the delete prompt full screen
func (v *GroupListView) RenderDeleteConfirm(width, height int) string {
	s := v.styles
	contentWidth := styles.ContentWidth(width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Group?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete the group %q?", v.deleteTarget.Name)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}
