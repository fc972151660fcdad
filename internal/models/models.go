package models

// ElementType identifies the kind of form field an element renders as
type ElementType string

const (
	// Text inputs
	TypeText     ElementType = "Text"
	TypeNumber   ElementType = "Number"
	TypeEmail    ElementType = "Email"
	TypeTextArea ElementType = "TextArea"

	// Selection inputs
	TypeCheckbox ElementType = "Checkbox"
	TypeSelect   ElementType = "Select"
	TypeRadio    ElementType = "Radio"

	// Date and time inputs
	TypeDate     ElementType = "Date"
	TypeTime     ElementType = "Time"
	TypeDateTime ElementType = "DateTime"

	// File inputs
	TypeUpload ElementType = "Upload"
)

// ElementTypes lists every element type in catalog order
var ElementTypes = []ElementType{
	TypeText,
	TypeNumber,
	TypeEmail,
	TypeTextArea,
	TypeCheckbox,
	TypeSelect,
	TypeRadio,
	TypeDate,
	TypeTime,
	TypeDateTime,
	TypeUpload,
}

// ElementCategory groups element types in the catalog
type ElementCategory string

const (
	CategoryText      ElementCategory = "Text Inputs"
	CategorySelection ElementCategory = "Selection Inputs"
	CategoryDateTime  ElementCategory = "Date & Time"
	CategoryFiles     ElementCategory = "File Uploads"
	CategoryAdvanced  ElementCategory = "Advanced"
)

// FormElement is one configurable field, either a catalog template or
// an instance owned by a field group
type FormElement struct {
	ID          string          `json:"id"`
	Type        ElementType     `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
	Required    bool            `json:"required"`
	Options     []string        `json:"options,omitempty"`
	FileTypes   string          `json:"fileTypes,omitempty"`
	Category    ElementCategory `json:"category,omitempty"`
}

// Clone returns a copy that shares no memory with e
func (e FormElement) Clone() FormElement {
	c := e
	if e.Options != nil {
		c.Options = append([]string(nil), e.Options...)
	}
	return c
}

// FieldGroup is a named, ordered collection of form elements
type FieldGroup struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Elements    []FormElement `json:"elements"`
}

// Clone returns a deep copy of g
func (g FieldGroup) Clone() FieldGroup {
	c := g
	c.Elements = CloneElements(g.Elements)
	return c
}

// CloneElements deep-copies an element list. A nil list comes back empty.
func CloneElements(elements []FormElement) []FormElement {
	out := make([]FormElement, len(elements))
	for i, el := range elements {
		out[i] = el.Clone()
	}
	return out
}

// CloneGroups deep-copies a group list
func CloneGroups(groups []FieldGroup) []FieldGroup {
	out := make([]FieldGroup, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}

// IndexOfElement returns the position of the element with the given id, or -1
func IndexOfElement(elements []FormElement, id string) int {
	for i, el := range elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
