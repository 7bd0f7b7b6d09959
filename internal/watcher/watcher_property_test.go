//go:build property

package watcher

import (
	"fmt"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestDebouncerProperties validates how pending events collapse into a batch
func TestDebouncerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9876)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	flushOf := func(ids []int) []ChangeEvent {
		d := &Debouncer{output: make(chan []ChangeEvent, 1)}
		for i, id := range ids {
			d.pending = append(d.pending, ChangeEvent{
				Path: fmt.Sprintf("file%d.js", id),
				Type: EventType(i % 4),
			})
		}
		d.flush()
		select {
		case batch := <-d.output:
			return batch
		default:
			return nil
		}
	}

	properties.Property("batch holds each path once, sorted", prop.ForAll(
		func(ids []int) bool {
			batch := flushOf(ids)
			unique := make(map[string]bool)
			for _, id := range ids {
				unique[fmt.Sprintf("file%d.js", id)] = true
			}
			if len(batch) != len(unique) {
				return false
			}
			return sort.SliceIsSorted(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
		},
		gen.SliceOf(gen.IntRange(0, 20)),
	))

	properties.Property("last event per path wins", prop.ForAll(
		func(ids []int) bool {
			last := make(map[string]EventType)
			for i, id := range ids {
				last[fmt.Sprintf("file%d.js", id)] = EventType(i % 4)
			}
			for _, e := range flushOf(ids) {
				if last[e.Path] != e.Type {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(30, gen.IntRange(0, 5)),
	))

	properties.TestingRun(t)
}
