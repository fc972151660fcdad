package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/reconcile"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParseOptions(t *testing.T) {
	assert.Equal(t, []string{"Small", "Medium", "Large"}, ParseOptions("Small\n  Medium \n\nLarge\n"))
	assert.Nil(t, ParseOptions("\n  \n"))
}

func TestElementListContainerID(t *testing.T) {
	v := NewElementListView()
	assert.False(t, v.HasGroup())

	v.SetGroup("g1", "Contact", []models.FormElement{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, reconcile.GroupContainer("g1"), v.ContainerID())
	assert.Equal(t, 1, v.InsertIndex())

	v.SetGroup("g2", "Empty", nil)
	assert.Equal(t, 0, v.InsertIndex())
}

func TestElementListGrabCancel(t *testing.T) {
	v := NewElementListView()
	v.SetSize(60, 30)
	v.SetGroup("g1", "Contact", []models.FormElement{{ID: "a"}, {ID: "b"}})

	v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, v.Grabbing())
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, v.Grabbing())
}

func TestElementListEmitsActions(t *testing.T) {
	v := NewElementListView()
	el := models.FormElement{ID: "a", Type: models.TypeEmail, Name: "Email"}
	v.SetGroup("g1", "Contact", []models.FormElement{el})

	assert.Equal(t, ElementCopyRequested{Element: el}, v.Update(runes("c"))())
	assert.Equal(t, ElementDeleteRequested{Element: el}, v.Update(runes("d"))())
	assert.Equal(t, ElementSelected{Element: el}, v.Update(tea.KeyMsg{Type: tea.KeyEnter})())
}

func TestCatalogDropNeedsTarget(t *testing.T) {
	v := NewCatalogView(models.GenerateCatalog())
	assert.Nil(t, v.Update(tea.KeyMsg{Type: tea.KeyEnter}))

	list := NewElementListView()
	list.SetGroup("g1", "Contact", []models.FormElement{{ID: "a"}, {ID: "b"}})
	v.ConnectTo(list)

	msg := v.Update(tea.KeyMsg{Type: tea.KeyEnter})()
	dropped, ok := msg.(ElementDropped)
	require.True(t, ok)
	assert.Equal(t, reconcile.CatalogContainer, dropped.Event.SourceContainer)
	assert.Equal(t, reconcile.GroupContainer("g1"), dropped.Event.DestContainer)
	assert.Equal(t, 1, dropped.Event.DestIndex)
	require.NotNil(t, dropped.Event.Payload)
	assert.Equal(t, models.TypeText, dropped.Event.Payload.Type)
}

func TestCatalogSearch(t *testing.T) {
	v := NewCatalogView(models.GenerateCatalog())
	v.Update(runes("/"))
	require.True(t, v.Searching())

	for _, r := range "email" {
		v.Update(runes(string(r)))
	}
	require.Len(t, v.shown, 1)
	assert.Equal(t, models.TypeEmail, v.shown[0].Type)

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.Searching())
	assert.Len(t, v.shown, len(models.ElementTypes))
}

func TestElementDrawerOnlyKeepsRelevantFields(t *testing.T) {
	d := NewElementDrawer()
	d.Open(models.FormElement{
		ID:          "e1",
		Type:        models.TypeCheckbox,
		Name:        "Agree",
		Placeholder: "stale",
	})
	d.required = true

	el := d.Element()
	assert.Equal(t, "e1", el.ID)
	assert.True(t, el.Required)
	assert.Equal(t, "stale", el.Placeholder, "hidden fields are left as they were")
	assert.Nil(t, el.Options)

	msg := d.Update(tea.KeyMsg{Type: tea.KeyCtrlS})()
	assert.IsType(t, ElementCommitted{}, msg)
	assert.Equal(t, DrawerClosed{}, d.Update(tea.KeyMsg{Type: tea.KeyEsc})())
}

func TestGroupDrawerKeepsNameWhenEmptied(t *testing.T) {
	d := NewGroupDrawer()
	d.Open(models.FieldGroup{ID: "g1", Name: "Contact"}, false)
	d.name.SetValue("   ")

	name, _ := d.Values()
	assert.Equal(t, "Contact", name)

	d.Open(models.FieldGroup{ID: "g2"}, true)
	name, _ = d.Values()
	assert.Empty(t, name)
}
