package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/pubsub"
	"go.uber.org/zap"
)

// StorageKey is the blob store key holding the serialized group list
const StorageKey = "form-builder-field-groups"

// ErrFormat is returned when an import payload is not a group list
var ErrFormat = errors.New("invalid configuration format")

// BlobStore is the durable key/value storage the store persists into
type BlobStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Store owns the authoritative list of field groups and the current
// selection. It is the only writer of persisted group data.
type Store struct {
	blobs     BlobStore
	log       *zap.Logger
	groups    *pubsub.Subject[[]models.FieldGroup]
	selection *pubsub.Subject[*models.FieldGroup]
}

// New creates a store and loads any persisted groups from blobs
func New(blobs BlobStore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		blobs:     blobs,
		log:       log,
		groups:    pubsub.NewSubject([]models.FieldGroup{}, models.CloneGroups),
		selection: pubsub.NewSubject[*models.FieldGroup](nil, cloneGroupPtr),
	}
	s.load()
	return s
}

func cloneGroupPtr(g *models.FieldGroup) *models.FieldGroup {
	if g == nil {
		return nil
	}
	c := g.Clone()
	return &c
}

// Groups is the push-based read channel of the full group list
func (s *Store) Groups() *pubsub.Subject[[]models.FieldGroup] {
	return s.groups
}

// Selection is the push-based read channel of the selected group
func (s *Store) Selection() *pubsub.Subject[*models.FieldGroup] {
	return s.selection
}

// Snapshot returns a copy of the current group list
func (s *Store) Snapshot() []models.FieldGroup {
	return s.groups.Value()
}

// Find returns a copy of the group with the given id
func (s *Store) Find(id string) (models.FieldGroup, bool) {
	for _, g := range s.groups.Value() {
		if g.ID == id {
			return g, true
		}
	}
	return models.FieldGroup{}, false
}

// Create fills in defaults for missing fields, appends the group,
// persists and selects it
func (s *Store) Create(partial models.FieldGroup) models.FieldGroup {
	group := partial.Clone()
	if group.ID == "" {
		group.ID = models.NewID()
	}
	if group.Name == "" {
		group.Name = "New Group"
	}

	groups := append(s.groups.Value(), group)
	s.groups.Publish(groups)
	s.save()

	s.Select(&group)

	s.log.Info("group created",
		zap.String("group_id", group.ID),
		zap.String("name", group.Name),
		zap.Int("groups", len(groups)))
	return group
}

// Update replaces the group with the same id. A nil group or a missing
// id is logged and ignored.
func (s *Store) Update(group *models.FieldGroup) {
	if group == nil || group.ID == "" {
		s.log.Warn("cannot update group: invalid group or missing id")
		return
	}

	updated := group.Clone()
	groups := s.groups.Value()
	found := false
	for i := range groups {
		if groups[i].ID == updated.ID {
			groups[i] = updated
			found = true
		}
	}
	if !found {
		s.log.Warn("update for unknown group", zap.String("group_id", updated.ID))
	}
	s.groups.Publish(groups)

	if current := s.selection.Value(); current != nil && current.ID == updated.ID {
		s.selection.Publish(&updated)
	}

	s.save()

	s.log.Debug("group updated",
		zap.String("group_id", updated.ID),
		zap.Int("elements", len(updated.Elements)))
}

// Delete removes the group with the given id and clears the selection if
// it pointed at that group
func (s *Store) Delete(id string) {
	current := s.groups.Value()
	groups := make([]models.FieldGroup, 0, len(current))
	for _, g := range current {
		if g.ID != id {
			groups = append(groups, g)
		}
	}
	s.groups.Publish(groups)

	if selected := s.selection.Value(); selected != nil && selected.ID == id {
		s.selection.Publish(nil)
	}

	s.save()
	s.log.Info("group deleted", zap.String("group_id", id))
}

// Select publishes a copy of group (or nil) as the current selection
func (s *Store) Select(group *models.FieldGroup) {
	s.selection.Publish(group)
	if group != nil {
		s.log.Debug("group selected", zap.String("group_id", group.ID))
	}
}

// Export serializes every group as indented JSON
func (s *Store) Export() (string, error) {
	data, err := json.MarshalIndent(s.groups.Value(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Import replaces the group list with the one encoded in blob. On error
// the current list is left as it was.
func (s *Store) Import(blob string) error {
	groups, err := Decode(blob)
	if err != nil {
		s.log.Error("failed to import configuration", zap.Error(err))
		return err
	}

	s.groups.Publish(groups)
	if selected := s.selection.Value(); selected != nil {
		s.selection.Publish(findGroup(groups, selected.ID))
	}
	s.save()

	s.log.Info("configuration imported", zap.Int("groups", len(groups)))
	return nil
}

func findGroup(groups []models.FieldGroup, id string) *models.FieldGroup {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i]
		}
	}
	return nil
}

// Decode parses a serialized group list. It fails with ErrFormat unless
// blob is a JSON array of groups with ids and typed elements.
func Decode(blob string) ([]models.FieldGroup, error) {
	trimmed := bytes.TrimSpace([]byte(blob))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a list of groups", ErrFormat)
	}

	var groups []models.FieldGroup
	if err := json.Unmarshal(trimmed, &groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	for i := range groups {
		if groups[i].ID == "" {
			return nil, fmt.Errorf("%w: group %d has no id", ErrFormat, i)
		}
		if groups[i].Elements == nil {
			groups[i].Elements = []models.FormElement{}
		}
		for j, el := range groups[i].Elements {
			if el.ID == "" || el.Type == "" {
				return nil, fmt.Errorf("%w: group %q element %d needs an id and a type", ErrFormat, groups[i].ID, j)
			}
		}
	}
	return groups, nil
}

func (s *Store) load() {
	stored, ok, err := s.blobs.Get(StorageKey)
	if err != nil {
		s.log.Error("error loading from storage", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	groups, err := Decode(stored)
	if err != nil {
		s.log.Error("error loading from storage, discarding stored groups", zap.Error(err))
		if err := s.blobs.Remove(StorageKey); err != nil {
			s.log.Error("error removing corrupt storage entry", zap.Error(err))
		}
		s.groups.Publish([]models.FieldGroup{})
		return
	}
	s.groups.Publish(groups)
	s.log.Debug("groups loaded", zap.Int("groups", len(groups)))
}

func (s *Store) save() {
	data, err := json.Marshal(s.groups.Value())
	if err != nil {
		s.log.Error("error saving to storage", zap.Error(err))
		return
	}
	if err := s.blobs.Set(StorageKey, string(data)); err != nil {
		s.log.Error("error saving to storage", zap.Error(err))
	}
}
