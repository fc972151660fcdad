package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/formsmith/internal/db"
	"github.com/tgienger/formsmith/internal/editor"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/reconcile"
	"github.com/tgienger/formsmith/internal/store"
	"github.com/tgienger/formsmith/internal/ui/views"
)

func newTestApp(t *testing.T) (*App, *db.DB, *store.Store) {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	s := store.New(database, nil)
	a := NewApp(database, s, nil)
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, database, s
}

// press sends k and returns the message its command produced, if any
func press(a *App, k tea.KeyMsg) tea.Msg {
	_, cmd := a.Update(k)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestCreateGroupThenAddFromCatalog(t *testing.T) {
	a, _, s := newTestApp(t)
	a.Init()
	a.Update(renderedMsg{})
	assert.Nil(t, a.catalog.Target(), "no group on screen yet")

	a.Update(views.GroupCreateRequested{})
	assert.Equal(t, editor.StateGroupDrawerOpen, a.editor.State())

	_, cmd := a.Update(views.GroupCommitted{Name: "Contact", Description: "How to reach you"})
	require.NotNil(t, cmd, "selection change should wait for a render")

	groups := s.Snapshot()
	require.Len(t, groups, 1)
	assert.Equal(t, "Contact", groups[0].Name)
	assert.Equal(t, editor.StateGroupSelected, a.editor.State())

	a.Update(cmd())
	require.NotNil(t, a.catalog.Target())
	assert.Equal(t, reconcile.GroupContainer(groups[0].ID), a.catalog.Target().ContainerID())

	a.setFocus(PaneCatalog)
	msg := press(a, enter)
	dropped, ok := msg.(views.ElementDropped)
	require.True(t, ok)
	assert.Equal(t, reconcile.CatalogContainer, dropped.Event.SourceContainer)
	a.Update(msg)

	group, ok := s.Find(groups[0].ID)
	require.True(t, ok)
	require.Len(t, group.Elements, 1)
	assert.Equal(t, models.TypeText, group.Elements[0].Type)
	assert.NotEqual(t, dropped.Event.Payload.ID, group.Elements[0].ID)
}

func TestGrabAndMoveElement(t *testing.T) {
	a, _, s := newTestApp(t)
	group := s.Create(models.FieldGroup{
		Name: "Order",
		Elements: []models.FormElement{
			{ID: "a", Type: models.TypeText, Name: "A"},
			{ID: "b", Type: models.TypeText, Name: "B"},
			{ID: "c", Type: models.TypeText, Name: "C"},
		},
	})
	a.Init()
	a.setFocus(PaneElements)

	assert.Nil(t, press(a, space))
	assert.True(t, a.elements.Grabbing())
	press(a, down)
	press(a, down)

	msg := press(a, space)
	require.IsType(t, views.ElementDropped{}, msg)
	a.Update(msg)

	stored, _ := s.Find(group.ID)
	var ids []string
	for _, el := range stored.Elements {
		ids = append(ids, el.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)
}

func TestEditElementThroughDrawer(t *testing.T) {
	a, _, s := newTestApp(t)
	group := s.Create(models.FieldGroup{
		Name:     "Profile",
		Elements: []models.FormElement{{ID: "e1", Type: models.TypeSelect, Name: "Size", Options: []string{"S"}}},
	})
	a.Init()
	a.setFocus(PaneElements)

	msg := press(a, enter)
	require.IsType(t, views.ElementSelected{}, msg)
	a.Update(msg)
	assert.Equal(t, editor.StateElementOpen, a.editor.State())

	edited := models.FormElement{ID: "e1", Type: models.TypeSelect, Name: "T-shirt size", Required: true, Options: []string{"S", "M"}}
	a.Update(views.ElementCommitted{Element: edited})

	assert.Equal(t, editor.StateGroupSelected, a.editor.State())
	stored, _ := s.Find(group.ID)
	require.Len(t, stored.Elements, 1)
	assert.Equal(t, "T-shirt size", stored.Elements[0].Name)
	assert.True(t, stored.Elements[0].Required)
	assert.Equal(t, []string{"S", "M"}, stored.Elements[0].Options)
}

func TestDeleteGroupAsksFirst(t *testing.T) {
	a, _, s := newTestApp(t)
	s.Create(models.FieldGroup{Name: "Temp"})
	a.Init()
	a.setFocus(PaneGroups)

	assert.Nil(t, press(a, runes("d")))
	assert.True(t, a.groups.Confirming())
	assert.Len(t, s.Snapshot(), 1)

	msg := press(a, runes("y"))
	require.IsType(t, views.GroupDeleteConfirmed{}, msg)
	a.Update(msg)

	assert.Empty(t, s.Snapshot())
	assert.False(t, a.elements.HasGroup())
	assert.Equal(t, editor.StateNoGroup, a.editor.State())
}

func TestLastGroupIsRestored(t *testing.T) {
	a, database, s := newTestApp(t)
	first := s.Create(models.FieldGroup{Name: "First"})
	second := s.Create(models.FieldGroup{Name: "Second"})

	a.Update(views.GroupSelected{Group: first})
	saved, err := database.GetSetting(lastGroupSetting)
	require.NoError(t, err)
	assert.Equal(t, first.ID, saved)

	// A fresh app over the same data reopens it, even though the store's
	// own selection is the last created group
	s.Select(&second)
	next := NewApp(database, s, nil)
	defer next.Close()
	next.Init()

	active, ok := next.editor.ActiveGroup()
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID)
	assert.True(t, next.elements.HasGroup())
}
