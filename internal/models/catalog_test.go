package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForType(t *testing.T) {
	cases := map[ElementType]ElementCategory{
		TypeText:     CategoryText,
		TypeTextArea: CategoryText,
		TypeSelect:   CategorySelection,
		TypeCheckbox: CategorySelection,
		TypeDateTime: CategoryDateTime,
		TypeUpload:   CategoryFiles,
		"Signature":  CategoryAdvanced,
		"":           CategoryAdvanced,
	}
	for typ, want := range cases {
		for i := 0; i < 3; i++ {
			assert.Equal(t, want, CategoryForType(typ), "type %q", typ)
		}
	}
}

func TestGenerateCatalog(t *testing.T) {
	catalog := GenerateCatalog()
	require.Len(t, catalog, len(ElementTypes))

	seen := make(map[string]bool)
	for i, el := range catalog {
		assert.Equal(t, ElementTypes[i], el.Type)
		assert.Empty(t, el.Name)
		assert.False(t, el.Required)
		assert.Equal(t, CategoryForType(el.Type), el.Category)
		assert.NotEmpty(t, el.ID)
		assert.False(t, seen[el.ID], "duplicate id %s", el.ID)
		seen[el.ID] = true

		if el.Type == TypeSelect || el.Type == TypeRadio {
			assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, el.Options)
		} else {
			assert.Nil(t, el.Options)
		}
	}

	again := GenerateCatalog()
	assert.NotEqual(t, catalog[0].ID, again[0].ID)
}

func TestFilterCatalog(t *testing.T) {
	catalog := GenerateCatalog()

	assert.Len(t, FilterCatalog(catalog, "  "), len(catalog))

	got := FilterCatalog(catalog, "PICKER")
	require.Len(t, got, 3)
	assert.Equal(t, TypeDate, got[0].Type)
	assert.Equal(t, TypeTime, got[1].Type)
	assert.Equal(t, TypeDateTime, got[2].Type)

	got = FilterCatalog(catalog, "email")
	require.Len(t, got, 1)
	assert.Equal(t, TypeEmail, got[0].Type)

	assert.Empty(t, FilterCatalog(catalog, "nothing like this"))
}

func TestFilterCatalogDoesNotAlias(t *testing.T) {
	catalog := GenerateCatalog()
	got := FilterCatalog(catalog, "dropdown")
	require.Len(t, got, 1)

	got[0].Options[0] = "changed"
	assert.Equal(t, "Option 1", catalog[5].Options[0])
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "?", Initials(""))
	assert.Equal(t, "?", Initials("   "))
	assert.Equal(t, "C", Initials("contact"))
	assert.Equal(t, "CD", Initials("Contact details form"))
}

func TestFieldVisibility(t *testing.T) {
	assert.True(t, ShowsPlaceholder(TypeEmail))
	assert.False(t, ShowsPlaceholder(TypeSelect))
	assert.True(t, ShowsOptions(TypeRadio))
	assert.False(t, ShowsOptions(TypeCheckbox))
	assert.True(t, ShowsFileTypes(TypeUpload))
	assert.False(t, ShowsFileTypes(TypeText))
}

func TestGroupCloneIsDeep(t *testing.T) {
	g := FieldGroup{
		ID:   "g1",
		Name: "Contact",
		Elements: []FormElement{
			{ID: "e1", Type: TypeSelect, Options: []string{"a", "b"}},
		},
	}
	c := g.Clone()
	c.Elements[0].Options[0] = "z"
	c.Elements[0].Name = "changed"

	assert.Equal(t, "a", g.Elements[0].Options[0])
	assert.Empty(t, g.Elements[0].Name)
	assert.Equal(t, 0, IndexOfElement(g.Elements, "e1"))
	assert.Equal(t, -1, IndexOfElement(g.Elements, "missing"))
}
