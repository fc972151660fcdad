package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/formsmith/internal/db"
	"github.com/tgienger/formsmith/internal/dropzone"
	"github.com/tgienger/formsmith/internal/editor"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/reconcile"
	"github.com/tgienger/formsmith/internal/store"
	"github.com/tgienger/formsmith/internal/ui/keys"
	"github.com/tgienger/formsmith/internal/ui/styles"
	"github.com/tgienger/formsmith/internal/ui/views"
	"go.uber.org/zap"
)

// lastGroupSetting remembers the selected group between runs
const lastGroupSetting = "last_group_id"

// Pane is the pane that has keyboard focus
type Pane int

const (
	PaneGroups Pane = iota
	PaneElements
	PaneCatalog
)

// renderedMsg arrives once the frame for the previous update is drawn
type renderedMsg struct{}

type App struct {
	db       *db.DB
	store    *store.Store
	editor   *editor.Coordinator
	registry *dropzone.Registry
	log      *zap.Logger
	keys     keys.KeyMap
	styles   *styles.Styles

	groups        *views.GroupListView
	elements      *views.ElementListView
	catalog       *views.CatalogView
	elementDrawer *views.ElementDrawer
	groupDrawer   *views.GroupDrawer

	focus     Pane
	showHelp  bool
	lastGroup string
	width     int
	height    int

	unsubscribe func()
}

// NewApp creates the editor UI over s. database holds UI settings.
func NewApp(database *db.DB, s *store.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	registry := dropzone.NewRegistry(log.Named("dropzone"))

	a := &App{
		db:            database,
		store:         s,
		editor:        editor.New(s, reconcile.New(log.Named("reconcile")), registry, log.Named("editor")),
		registry:      registry,
		log:           log,
		keys:          keys.DefaultKeyMap(),
		styles:        styles.NewStyles(),
		groups:        views.NewGroupListView(),
		elements:      views.NewElementListView(),
		catalog:       views.NewCatalogView(models.GenerateCatalog()),
		elementDrawer: views.NewElementDrawer(),
		groupDrawer:   views.NewGroupDrawer(),
	}

	a.unsubscribe = s.Groups().Subscribe(a.groups.SetGroups)
	a.editor.AttachDropZones(a.dropTarget, a.catalog)
	a.setFocus(PaneGroups)
	return a
}

// dropTarget resolves the element pane once it shows a group
func (a *App) dropTarget() dropzone.Target {
	if !a.elements.HasGroup() {
		return nil
	}
	return a.elements
}

// Close detaches the app from the store
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.editor.Close()
}

func (a *App) Init() tea.Cmd {
	// Reopen the last selected group
	lastID, err := a.db.GetSetting(lastGroupSetting)
	if err != nil {
		a.log.Warn("failed to read last group", zap.Error(err))
	}
	if lastID != "" {
		if group, ok := a.store.Find(lastID); ok {
			a.editor.SelectGroup(group)
			a.setFocus(PaneElements)
		}
	}
	a.sync()
	return a.afterRender()
}

// afterRender schedules a renderedMsg when drop zone wiring is waiting
func (a *App) afterRender() tea.Cmd {
	if a.registry.Pending() == 0 {
		return nil
	}
	return func() tea.Msg { return renderedMsg{} }
}

// sync copies the coordinator state into the panes
func (a *App) sync() {
	group, ok := a.editor.ActiveGroup()
	if !ok {
		a.elements.SetGroup("", "", nil)
		a.groups.SetSelected("")
		a.rememberGroup("")
		return
	}
	a.elements.SetGroup(group.ID, group.Name, a.editor.WorkingElements())
	a.groups.SetSelected(group.ID)
	a.rememberGroup(group.ID)
}

func (a *App) rememberGroup(id string) {
	if id == a.lastGroup {
		return
	}
	a.lastGroup = id
	if err := a.db.SetSetting(lastGroupSetting, id); err != nil {
		a.log.Warn("failed to save last group", zap.Error(err))
	}
}

func (a *App) setFocus(p Pane) {
	if p == PaneElements && !a.elements.HasGroup() {
		p = PaneGroups
	}
	a.focus = p
	a.groups.SetFocused(p == PaneGroups)
	a.elements.SetFocused(p == PaneElements)
	a.catalog.SetFocused(p == PaneCatalog)
}

func (a *App) cycleFocus(dir int) {
	next := Pane((int(a.focus) + dir + 3) % 3)
	if next == PaneElements && !a.elements.HasGroup() {
		next = Pane((int(next) + dir + 3) % 3)
	}
	a.setFocus(next)
}

func (a *App) layout() {
	contentWidth := styles.ContentWidth(a.width)
	paneHeight := max(a.height-1, 5)
	groupsWidth, elementsWidth, catalogWidth := styles.PaneWidths(contentWidth)

	a.groups.SetSize(groupsWidth, paneHeight)
	a.elements.SetSize(elementsWidth, paneHeight)
	a.catalog.SetSize(catalogWidth, paneHeight)
	a.elementDrawer.SetSize(a.width, a.height)
	a.groupDrawer.SetSize(a.width, a.height)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case renderedMsg:
		if n := a.registry.Flush(); n > 0 {
			a.log.Debug("drop zones rewired", zap.Int("tasks", n))
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case views.GroupCreateRequested:
		a.editor.CreateGroup()
		draft, _ := a.editor.GroupDraft()
		return a, a.groupDrawer.Open(draft, true)

	case views.GroupSelected:
		a.editor.SelectGroup(msg.Group)
		a.sync()
		a.setFocus(PaneElements)
		return a, a.afterRender()

	case views.GroupEditRequested:
		a.editor.EditGroup(msg.Group)
		return a, a.groupDrawer.Open(msg.Group, false)

	case views.GroupDeleteConfirmed:
		a.editor.DeleteGroup(msg.Group)
		a.sync()
		a.setFocus(a.focus)
		return a, a.afterRender()

	case views.GroupCommitted:
		a.editor.SetGroupDraft(msg.Name, msg.Description)
		a.editor.CommitGroup()
		a.sync()
		a.setFocus(PaneElements)
		return a, a.afterRender()

	case views.ElementSelected:
		a.editor.OpenElementEditor(msg.Element)
		if draft, ok := a.editor.ElementDraft(); ok {
			return a, a.elementDrawer.Open(draft)
		}
		return a, nil

	case views.ElementCommitted:
		a.editor.SetElementDraft(msg.Element)
		a.editor.CommitElement()
		a.sync()
		return a, nil

	case views.DrawerClosed:
		a.editor.CloseElementEditor()
		a.editor.CloseGroupEditor()
		return a, nil

	case views.ElementDropped:
		a.editor.Drop(msg.Event)
		a.sync()
		a.elements.FocusIndex(msg.Event.DestIndex)
		return a, nil

	case views.ElementCopyRequested:
		a.editor.CopyElement(msg.Element)
		a.sync()
		return a, nil

	case views.ElementDeleteRequested:
		a.editor.DeleteElement(msg.Element)
		a.sync()
		return a, nil
	}

	// Cursor blinks and other ticks go to whatever holds the keyboard
	switch a.editor.State() {
	case editor.StateGroupDrawerOpen:
		return a, a.groupDrawer.Update(msg)
	case editor.StateElementOpen:
		return a, a.elementDrawer.Update(msg)
	}
	if a.catalog.Searching() {
		return a, a.catalog.Update(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.showHelp {
		a.showHelp = false
		return nil
	}

	switch a.editor.State() {
	case editor.StateGroupDrawerOpen:
		return a.groupDrawer.Update(msg)
	case editor.StateElementOpen:
		return a.elementDrawer.Update(msg)
	}

	if a.groups.Confirming() {
		return a.groups.Update(msg)
	}
	if a.catalog.Searching() {
		return a.catalog.Update(msg)
	}
	if a.elements.Grabbing() {
		return a.elements.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Tab):
		a.cycleFocus(1)
		return nil
	case msg.String() == "shift+tab":
		a.cycleFocus(-1)
		return nil
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil
	}

	switch a.focus {
	case PaneElements:
		return a.elements.Update(msg)
	case PaneCatalog:
		return a.catalog.Update(msg)
	default:
		return a.groups.Update(msg)
	}
}

func (a *App) View() string {
	if a.showHelp {
		return a.renderHelpPopup()
	}

	switch a.editor.State() {
	case editor.StateGroupDrawerOpen:
		return a.groupDrawer.View()
	case editor.StateElementOpen:
		return a.elementDrawer.View()
	}

	if a.groups.Confirming() {
		return a.groups.RenderDeleteConfirm(a.width, a.height)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		a.groups.View(),
		a.elements.View(),
		a.catalog.View(),
	)
	content := lipgloss.JoinVertical(lipgloss.Left, panes, a.renderHelp())
	return styles.CenterView(content, a.width, a.height)
}

func (a *App) renderHelp() string {
	s := a.styles
	contentWidth := styles.ContentWidth(a.width)
	if contentWidth > 0 && contentWidth < 80 {
		return s.StatusBar.Render(s.HelpKey.Render("?") + " help")
	}

	var hint string
	switch a.focus {
	case PaneGroups:
		hint = fmt.Sprintf("%s open • %s new • %s edit • %s del",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
		)
	case PaneElements:
		if a.elements.Grabbing() {
			hint = fmt.Sprintf("%s move • %s drop • %s cancel",
				s.HelpKey.Render("↑↓"),
				s.HelpKey.Render("space"),
				s.HelpKey.Render("esc"),
			)
		} else {
			hint = fmt.Sprintf("%s edit • %s grab • %s copy • %s del",
				s.HelpKey.Render("↵"),
				s.HelpKey.Render("space"),
				s.HelpKey.Render("c"),
				s.HelpKey.Render("d"),
			)
		}
	case PaneCatalog:
		hint = fmt.Sprintf("%s add • %s search",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("/"),
		)
	}

	return s.StatusBar.Render(fmt.Sprintf("%s • %s pane • %s help • %s quit",
		hint,
		s.HelpKey.Render("tab"),
		s.HelpKey.Render("?"),
		s.HelpKey.Render("q"),
	))
}

func (a *App) renderHelpPopup() string {
	s := a.styles
	contentWidth := styles.ContentWidth(a.width)

	helpItems := []string{
		s.Title.Render("Groups"),
		s.HelpKey.Render("↵") + "      open group",
		s.HelpKey.Render("n") + "      new group",
		s.HelpKey.Render("e") + "      edit name and description",
		s.HelpKey.Render("d") + "      delete group",
		"",
		s.Title.Render("Fields"),
		s.HelpKey.Render("↵") + "      edit field",
		s.HelpKey.Render("space") + "  grab, move with ↑↓, drop",
		s.HelpKey.Render("c") + "      copy field",
		s.HelpKey.Render("d") + "      delete field",
		"",
		s.Title.Render("Catalog"),
		s.HelpKey.Render("↵") + "      add below the selected field",
		s.HelpKey.Render("/") + "      search",
		"",
		s.HelpKey.Render("tab") + "    next pane",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, a.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, a.width, a.height)
}
