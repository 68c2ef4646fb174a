package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int
	Name string
}

func (r row) RowID() int { return r.ID }

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		existing    []row
		target      []row
		wantInsert  []row
		wantUpdate  []row
		wantDelete  []int
	}{
		{
			name:       "all new against empty",
			existing:   nil,
			target:     []row{{Name: "a"}, {Name: "b"}},
			wantInsert: []row{{Name: "a"}, {Name: "b"}},
		},
		{
			name:       "empty target deletes everything",
			existing:   []row{{ID: 1}, {ID: 2}},
			target:     nil,
			wantDelete: []int{1, 2},
		},
		{
			name:       "mixed add keep drop",
			existing:   []row{{ID: 1, Name: "keep"}, {ID: 2, Name: "drop"}},
			target:     []row{{ID: 1, Name: "keep-renamed"}, {Name: "new"}},
			wantInsert: []row{{Name: "new"}},
			wantUpdate: []row{{ID: 1, Name: "keep-renamed"}},
			wantDelete: []int{2},
		},
		{
			name:       "unknown id treated as insert",
			existing:   []row{{ID: 1}},
			target:     []row{{ID: 1}, {ID: 99, Name: "stale"}},
			wantInsert: []row{{ID: 99, Name: "stale"}},
			wantUpdate: []row{{ID: 1}},
		},
		{
			name:     "identical sets update only",
			existing: []row{{ID: 1}, {ID: 2}},
			target:   []row{{ID: 1}, {ID: 2}},
			wantUpdate: []row{{ID: 1}, {ID: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(tt.existing, tt.target)
			assert.Equal(t, tt.wantInsert, d.ToInsert)
			assert.Equal(t, tt.wantUpdate, d.ToUpdate)
			assert.Equal(t, tt.wantDelete, d.ToDeleteIDs)
		})
	}
}

// Reconciling the previous result again must be a no-op apart from
// updates: zero inserts, zero deletes.
func TestComputeIdempotent(t *testing.T) {
	existing := []row{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	target := []row{{ID: 1, Name: "a2"}, {Name: "c"}}

	first := Compute(existing, target)
	require.Len(t, first.ToInsert, 1)
	require.Equal(t, []int{2}, first.ToDeleteIDs)

	// Simulate the apply: inserted row gets a server id, deleted row is
	// gone, updates are in place.
	applied := []row{{ID: 1, Name: "a2"}, {ID: 3, Name: "c"}}

	second := Compute(applied, applied)
	assert.Empty(t, second.ToInsert)
	assert.Empty(t, second.ToDeleteIDs)
	assert.Equal(t, applied, second.ToUpdate)
	assert.False(t, Compute(applied, []row{}).Empty())
}

// Completeness: after applying the diff, the surviving id set equals the
// ids in target plus fresh ids for the inserts.
func TestComputeCompleteness(t *testing.T) {
	existing := []row{{ID: 10}, {ID: 11}, {ID: 12}}
	target := []row{{ID: 11, Name: "kept"}, {Name: "new1"}, {Name: "new2"}}

	d := Compute(existing, target)

	final := map[int]bool{}
	for _, r := range existing {
		final[r.ID] = true
	}
	for _, id := range d.ToDeleteIDs {
		delete(final, id)
	}
	next := 100
	for range d.ToInsert {
		final[next] = true
		next++
	}

	assert.Equal(t, map[int]bool{11: true, 100: true, 101: true}, final)
	assert.Len(t, d.ToInsert, 2)
	assert.Len(t, d.ToUpdate, 1)
}
