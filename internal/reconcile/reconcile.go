package reconcile

import (
	"errors"
	"fmt"

	"github.com/tgienger/formsmith/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrNoActiveGroup means a drop arrived while no group was selected
	ErrNoActiveGroup = errors.New("no active group")
	// ErrMalformedPayload means a cross-container drop carried no usable template
	ErrMalformedPayload = errors.New("malformed drag payload")
)

// CatalogContainer is the container id of the catalog pane
const CatalogContainer = "catalog"

// GroupContainer returns the container id of a group's element list
func GroupContainer(groupID string) string {
	return "group:" + groupID
}

// DropEvent describes one finished drag
type DropEvent struct {
	SourceContainer string
	DestContainer   string
	SourceIndex     int
	DestIndex       int
	// Payload is the dragged template; only read for cross-container drops
	Payload *models.FormElement
}

// SameContainer reports whether the drag started and ended in one list
func (ev DropEvent) SameContainer() bool {
	return ev.SourceContainer == ev.DestContainer
}

// Reconciler turns drop events into new element orderings
type Reconciler struct {
	log   *zap.Logger
	newID func() string
}

// New creates a reconciler. A nil logger disables logging.
func New(log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{log: log, newID: models.NewID}
}

// ApplyDrop returns the element list that results from ev. current is
// never modified.
func (r *Reconciler) ApplyDrop(ev DropEvent, current []models.FormElement, active *models.FieldGroup) ([]models.FormElement, error) {
	if active == nil {
		r.log.Debug("drop ignored, no active group",
			zap.String("source", ev.SourceContainer),
			zap.String("dest", ev.DestContainer))
		return nil, ErrNoActiveGroup
	}

	if ev.SameContainer() {
		return MoveItem(current, ev.SourceIndex, ev.DestIndex), nil
	}

	el, err := r.Instantiate(ev.Payload)
	if err != nil {
		r.log.Error("error adding element", zap.String("group_id", active.ID), zap.Error(err))
		return nil, err
	}
	r.log.Debug("element instantiated from template",
		zap.String("group_id", active.ID),
		zap.String("element_id", el.ID),
		zap.String("type", string(el.Type)),
		zap.Int("index", ev.DestIndex))
	return InsertAt(current, ev.DestIndex, el), nil
}

// Instantiate builds a fresh element from a catalog template
func (r *Reconciler) Instantiate(template *models.FormElement) (models.FormElement, error) {
	if template == nil {
		return models.FormElement{}, fmt.Errorf("%w: no template", ErrMalformedPayload)
	}
	if template.Type == "" {
		return models.FormElement{}, fmt.Errorf("%w: template %q has no type", ErrMalformedPayload, template.ID)
	}

	el := models.FormElement{
		ID:          r.newID(),
		Type:        template.Type,
		Name:        "New " + string(template.Type),
		Description: "",
		Placeholder: "",
		Required:    false,
		Category:    template.Category,
	}
	if models.ShowsOptions(el.Type) {
		el.Options = models.DefaultOptions()
	}
	return el, nil
}

// MoveItem returns a copy of list with the item at from moved to to.
// Both indices are clamped to the list bounds.
func MoveItem(list []models.FormElement, from, to int) []models.FormElement {
	out := models.CloneElements(list)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, 0, len(out)-1)
	to = clamp(to, 0, len(out)-1)
	if from == to {
		return out
	}

	moved := out[from]
	step := 1
	if to < from {
		step = -1
	}
	for i := from; i != to; i += step {
		out[i] = out[i+step]
	}
	out[to] = moved
	return out
}

// InsertAt returns a copy of list with el inserted before the element
// currently at index. index is clamped to [0, len(list)].
func InsertAt(list []models.FormElement, index int, el models.FormElement) []models.FormElement {
	index = clamp(index, 0, len(list))
	out := make([]models.FormElement, 0, len(list)+1)
	for _, existing := range list[:index] {
		out = append(out, existing.Clone())
	}
	out = append(out, el.Clone())
	for _, existing := range list[index:] {
		out = append(out, existing.Clone())
	}
	return out
}

// RemoveByID returns a copy of list without the element with the given id
func RemoveByID(list []models.FormElement, id string) []models.FormElement {
	out := make([]models.FormElement, 0, len(list))
	for _, el := range list {
		if el.ID != id {
			out = append(out, el.Clone())
		}
	}
	return out
}

// ReplaceByID returns a copy of list with the element sharing el's id swapped for el
func ReplaceByID(list []models.FormElement, el models.FormElement) []models.FormElement {
	out := models.CloneElements(list)
	for i := range out {
		if out[i].ID == el.ID {
			out[i] = el.Clone()
		}
	}
	return out
}

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
