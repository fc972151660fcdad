package editor

import (
	"github.com/tgienger/formsmith/internal/dropzone"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/reconcile"
	"github.com/tgienger/formsmith/internal/store"
	"go.uber.org/zap"
)

// State is the editing mode the coordinator is in
type State int

const (
	StateNoGroup State = iota
	StateGroupSelected
	StateElementOpen
	StateGroupDrawerOpen
)

func (s State) String() string {
	switch s {
	case StateGroupSelected:
		return "group-selected"
	case StateElementOpen:
		return "element-open"
	case StateGroupDrawerOpen:
		return "group-drawer-open"
	default:
		return "no-group"
	}
}

// Coordinator tracks which group and element are open for editing and
// routes every change through the store. It keeps a working copy of the
// active group's elements so the UI can render edits immediately.
type Coordinator struct {
	store      *store.Store
	reconciler *reconcile.Reconciler
	registry   *dropzone.Registry
	log        *zap.Logger

	active     *models.FieldGroup
	working    []models.FormElement
	draft      *models.FormElement
	groupDraft *models.FieldGroup

	listTarget func() dropzone.Target
	catalog    dropzone.Connector

	unsubscribe func()
}

// New creates a coordinator bound to s. It follows the store's selection
// channel for as long as it lives; call Close to detach.
func New(s *store.Store, reconciler *reconcile.Reconciler, registry *dropzone.Registry, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{
		store:      s,
		reconciler: reconciler,
		registry:   registry,
		log:        log,
	}
	c.unsubscribe = s.Selection().Subscribe(c.onSelection)
	return c
}

// Close stops following the store
func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Coordinator) onSelection(group *models.FieldGroup) {
	switched := (c.active == nil) != (group == nil) ||
		(c.active != nil && group != nil && c.active.ID != group.ID)

	c.active = group
	if group == nil {
		c.working = nil
	} else {
		c.working = models.CloneElements(group.Elements)
	}

	if switched {
		c.draft = nil
		c.requestRewire()
	}
}

// AttachDropZones tells the coordinator how to find the active group's
// drop target and which catalog to connect to it. The wiring is
// re-established after every selection change.
func (c *Coordinator) AttachDropZones(list func() dropzone.Target, catalog dropzone.Connector) {
	c.listTarget = list
	c.catalog = catalog
	c.requestRewire()
}

func (c *Coordinator) requestRewire() {
	if c.registry == nil || c.listTarget == nil || c.catalog == nil {
		return
	}
	c.registry.Rewire(c.listTarget, c.catalog)
}

// State reports the current editing mode
func (c *Coordinator) State() State {
	switch {
	case c.groupDraft != nil:
		return StateGroupDrawerOpen
	case c.draft != nil:
		return StateElementOpen
	case c.active != nil:
		return StateGroupSelected
	}
	return StateNoGroup
}

// ActiveGroup returns a copy of the selected group
func (c *Coordinator) ActiveGroup() (models.FieldGroup, bool) {
	if c.active == nil {
		return models.FieldGroup{}, false
	}
	return c.active.Clone(), true
}

// WorkingElements returns a copy of the active group's element list
func (c *Coordinator) WorkingElements() []models.FormElement {
	return models.CloneElements(c.working)
}

// SelectGroup makes group the active one and closes any open element
func (c *Coordinator) SelectGroup(group models.FieldGroup) {
	if current, ok := c.store.Find(group.ID); ok {
		group = current
	}
	c.draft = nil
	c.store.Select(&group)
}

// OpenElementEditor copies element into an editable draft
func (c *Coordinator) OpenElementEditor(element models.FormElement) {
	if c.active == nil || c.groupDraft != nil {
		c.log.Warn("cannot open element editor", zap.String("state", c.State().String()))
		return
	}
	if models.IndexOfElement(c.working, element.ID) < 0 {
		c.log.Warn("element is not part of the active group",
			zap.String("group_id", c.active.ID),
			zap.String("element_id", element.ID))
		return
	}
	draft := element.Clone()
	c.draft = &draft
}

// ElementDraft returns a copy of the open element draft
func (c *Coordinator) ElementDraft() (models.FormElement, bool) {
	if c.draft == nil {
		return models.FormElement{}, false
	}
	return c.draft.Clone(), true
}

// SetElementDraft replaces the draft's editable fields. The draft keeps
// its id, type and category.
func (c *Coordinator) SetElementDraft(element models.FormElement) {
	if c.draft == nil {
		c.log.Warn("no element draft to edit")
		return
	}
	next := element.Clone()
	next.ID = c.draft.ID
	next.Type = c.draft.Type
	next.Category = c.draft.Category
	c.draft = &next
}

// CloseElementEditor discards the element draft
func (c *Coordinator) CloseElementEditor() {
	c.draft = nil
}

// CommitElement merges the draft into the working list and saves the group
func (c *Coordinator) CommitElement() {
	if c.draft == nil || c.active == nil {
		c.log.Warn("commit without an open element", zap.String("state", c.State().String()))
		return
	}
	draft := *c.draft
	c.draft = nil
	c.commitElements(reconcile.ReplaceByID(c.working, draft))
}

// CopyElement appends a duplicate of element with a fresh id
func (c *Coordinator) CopyElement(element models.FormElement) {
	if c.active == nil {
		c.log.Warn("copy without an active group")
		return
	}
	dup := element.Clone()
	dup.ID = models.NewID()
	dup.Name = element.Name + " (Copy)"

	next := append(models.CloneElements(c.working), dup)
	c.commitElements(next)
}

// DeleteElement removes element from the active group
func (c *Coordinator) DeleteElement(element models.FormElement) {
	if c.active == nil {
		c.log.Warn("delete without an active group")
		return
	}
	if models.IndexOfElement(c.working, element.ID) < 0 {
		return
	}
	c.commitElements(reconcile.RemoveByID(c.working, element.ID))

	if c.draft != nil && c.draft.ID == element.ID {
		c.draft = nil
	}
}

// Drop applies a finished drag to the active group's element list
func (c *Coordinator) Drop(ev reconcile.DropEvent) {
	if c.active == nil {
		c.log.Debug("drop ignored, no active group")
		return
	}
	if want := reconcile.GroupContainer(c.active.ID); ev.DestContainer != want {
		c.log.Warn("drop into a list that is not on screen",
			zap.String("dest", ev.DestContainer),
			zap.String("active", want))
		return
	}

	next, err := c.reconciler.ApplyDrop(ev, c.working, c.active)
	if err != nil {
		return
	}
	c.commitElements(next)
}

func (c *Coordinator) commitElements(elements []models.FormElement) {
	c.working = models.CloneElements(elements)
	group := c.active.Clone()
	group.Elements = elements
	c.store.Update(&group)
}

// CreateGroup opens the group drawer on a new, empty group
func (c *Coordinator) CreateGroup() {
	c.groupDraft = &models.FieldGroup{
		ID:       models.NewID(),
		Elements: []models.FormElement{},
	}
}

// EditGroup opens the group drawer on a copy of group
func (c *Coordinator) EditGroup(group models.FieldGroup) {
	draft := group.Clone()
	c.groupDraft = &draft
}

// GroupDraft returns a copy of the group being edited in the drawer
func (c *Coordinator) GroupDraft() (models.FieldGroup, bool) {
	if c.groupDraft == nil {
		return models.FieldGroup{}, false
	}
	return c.groupDraft.Clone(), true
}

// SetGroupDraft updates the name and description of the group draft
func (c *Coordinator) SetGroupDraft(name, description string) {
	if c.groupDraft == nil {
		c.log.Warn("no group draft to edit")
		return
	}
	c.groupDraft.Name = name
	c.groupDraft.Description = description
}

// CloseGroupEditor discards the group draft
func (c *Coordinator) CloseGroupEditor() {
	c.groupDraft = nil
}

// CommitGroup creates or updates the drafted group, selects it and closes
// the drawer
func (c *Coordinator) CommitGroup() {
	if c.groupDraft == nil {
		c.log.Warn("commit without a group draft")
		return
	}
	draft := c.groupDraft.Clone()
	c.groupDraft = nil

	existing, ok := c.store.Find(draft.ID)
	if !ok {
		created := c.store.Create(draft)
		c.SelectGroup(created)
		return
	}

	// Only metadata comes from the drawer; elements stay as stored
	existing.Name = draft.Name
	existing.Description = draft.Description
	c.store.Update(&existing)
	c.SelectGroup(existing)
}

// DeleteGroup removes group. The caller is responsible for having asked
// the user first.
func (c *Coordinator) DeleteGroup(group models.FieldGroup) {
	c.store.Delete(group.ID)

	if c.active != nil && c.active.ID == group.ID {
		c.active = nil
		c.working = nil
		c.draft = nil
	}
	if c.groupDraft != nil && c.groupDraft.ID == group.ID {
		c.groupDraft = nil
	}
}
