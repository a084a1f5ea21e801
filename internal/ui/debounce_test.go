package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type collector struct {
	mu   sync.Mutex
	vals []string
}

func (c *collector) add(v string) {
	c.mu.Lock()
	c.vals = append(c.vals, v)
	c.mu.Unlock()
}

func (c *collector) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.vals...)
}

func TestDebouncer_EmitsLastValue(t *testing.T) {
	var c collector
	d := NewDebouncer(20*time.Millisecond, c.add)
	defer d.Stop()

	d.Push("d")
	d.Push("du")
	d.Push("dune")

	assert.Eventually(t, func() bool { return len(c.get()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"dune"}, c.get())
}

func TestDebouncer_SkipsRepeatedValue(t *testing.T) {
	var c collector
	d := NewDebouncer(10*time.Millisecond, c.add)
	defer d.Stop()

	d.Push("dune")
	assert.Eventually(t, func() bool { return len(c.get()) == 1 }, time.Second, 5*time.Millisecond)

	d.Push("dun")
	d.Push("dune")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"dune"}, c.get())

	d.Push("emma")
	assert.Eventually(t, func() bool { return len(c.get()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"dune", "emma"}, c.get())
}

func TestDebouncer_Stop(t *testing.T) {
	var c collector
	d := NewDebouncer(10*time.Millisecond, c.add)

	d.Push("dune")
	d.Stop()
	d.Push("emma")

	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, c.get())
}
