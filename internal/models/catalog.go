package models

import (
	"strings"

	"github.com/google/uuid"
)

// categoryTypes is the fixed type→category mapping. Anything not listed
// here belongs to CategoryAdvanced.
var categoryTypes = map[ElementCategory][]ElementType{
	CategoryText:      {TypeText, TypeNumber, TypeEmail, TypeTextArea},
	CategorySelection: {TypeCheckbox, TypeSelect, TypeRadio},
	CategoryDateTime:  {TypeDate, TypeTime, TypeDateTime},
	CategoryFiles:     {TypeUpload},
}

// Categories returns every category in display order
func Categories() []ElementCategory {
	return []ElementCategory{
		CategoryText,
		CategorySelection,
		CategoryDateTime,
		CategoryFiles,
		CategoryAdvanced,
	}
}

// CategoryForType looks up the catalog category for t
func CategoryForType(t ElementType) ElementCategory {
	for category, types := range categoryTypes {
		for _, candidate := range types {
			if candidate == t {
				return category
			}
		}
	}
	return CategoryAdvanced
}

// DefaultOptions returns the placeholder options given to new Select and Radio elements
func DefaultOptions() []string {
	return []string{"Option 1", "Option 2", "Option 3"}
}

// ShowsPlaceholder reports whether a placeholder is meaningful for t
func ShowsPlaceholder(t ElementType) bool {
	switch t {
	case TypeText, TypeNumber, TypeEmail, TypeTextArea:
		return true
	}
	return false
}

// ShowsOptions reports whether t carries an options list
func ShowsOptions(t ElementType) bool {
	return t == TypeSelect || t == TypeRadio
}

// ShowsFileTypes reports whether a file-type filter is meaningful for t
func ShowsFileTypes(t ElementType) bool {
	return t == TypeUpload
}

// NewID returns a fresh element or group id
func NewID() string {
	return uuid.NewString()
}

// GenerateCatalog builds one template per element type
func GenerateCatalog() []FormElement {
	catalog := make([]FormElement, 0, len(ElementTypes))
	for _, t := range ElementTypes {
		el := FormElement{
			ID:       NewID(),
			Type:     t,
			Required: false,
			Category: CategoryForType(t),
		}
		if ShowsOptions(t) {
			el.Options = DefaultOptions()
		}
		catalog = append(catalog, el)
	}
	return catalog
}

// Icon returns a short glyph shown next to a catalog entry
func Icon(t ElementType) string {
	switch t {
	case TypeText:
		return "Aa"
	case TypeNumber:
		return "123"
	case TypeEmail:
		return "✉"
	case TypeCheckbox:
		return "☑"
	case TypeSelect:
		return "▼"
	case TypeRadio:
		return "◉"
	case TypeTextArea:
		return "¶"
	case TypeDate:
		return "📅"
	case TypeTime:
		return "⏱"
	case TypeDateTime:
		return "📆"
	case TypeUpload:
		return "📎"
	default:
		return "📋"
	}
}

// Summary returns a one-line description of t
func Summary(t ElementType) string {
	switch t {
	case TypeText:
		return "Single line text input"
	case TypeNumber:
		return "Numeric input field"
	case TypeEmail:
		return "Email address input"
	case TypeCheckbox:
		return "True/false checkbox"
	case TypeSelect:
		return "Dropdown selection"
	case TypeRadio:
		return "Single selection radio buttons"
	case TypeTextArea:
		return "Multi-line text input"
	case TypeDate:
		return "Date picker"
	case TypeTime:
		return "Time picker"
	case TypeDateTime:
		return "Date and time picker"
	case TypeUpload:
		return "File upload field"
	default:
		return "Form field"
	}
}

// FilterCatalog returns the templates whose type or summary contains term
func FilterCatalog(catalog []FormElement, term string) []FormElement {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return CloneElements(catalog)
	}

	var out []FormElement
	for _, el := range catalog {
		if strings.Contains(strings.ToLower(string(el.Type)), term) ||
			strings.Contains(strings.ToLower(Summary(el.Type)), term) {
			out = append(out, el.Clone())
		}
	}
	return out
}

// Initials returns the badge text for a group name
func Initials(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(firstRune(words[0]))
	}
	return strings.ToUpper(firstRune(words[0]) + firstRune(words[1]))
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
