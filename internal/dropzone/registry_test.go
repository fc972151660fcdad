package dropzone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type listTarget string

func (l listTarget) ContainerID() string { return string(l) }

type catalogPane struct {
	target Target
	calls  int
}

func (c *catalogPane) ConnectTo(target Target) {
	c.target = target
	c.calls++
}

func TestRewireWaitsForFlush(t *testing.T) {
	r := NewRegistry(nil)
	catalog := &catalogPane{}
	active := listTarget("group:a")

	r.Rewire(func() Target { return active }, catalog)
	assert.Nil(t, catalog.target)
	assert.Equal(t, 1, r.Pending())

	// Selection changes again before the frame is drawn
	active = listTarget("group:b")

	assert.Equal(t, 1, r.Flush())
	assert.Equal(t, "group:b", catalog.target.ContainerID())
	assert.Equal(t, 0, r.Pending())
	assert.Equal(t, 0, r.Flush())
}

func TestRewireSkipsMissingTarget(t *testing.T) {
	r := NewRegistry(nil)
	catalog := &catalogPane{}

	r.Rewire(func() Target { return nil }, catalog)
	r.Flush()
	assert.Equal(t, 0, catalog.calls)
}

func TestTasksQueuedDuringFlushRunNextTime(t *testing.T) {
	r := NewRegistry(nil)
	var order []string

	r.Defer(func() {
		order = append(order, "first")
		r.Defer(func() { order = append(order, "second") })
	})

	assert.Equal(t, 1, r.Flush())
	assert.Equal(t, []string{"first"}, order)
	assert.Equal(t, 1, r.Flush())
	assert.Equal(t, []string{"first", "second"}, order)
}
