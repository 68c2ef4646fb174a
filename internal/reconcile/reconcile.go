// Package reconcile computes insert/update/delete sets by comparing the
// persisted rows of a nested line-item list against a caller-supplied
// target list. The same engine serves every identified sector type
// (flights, hotels, transfers, car hire, attraction tickets, lounge
// passes, airport parking); non-identified lists (passengers, cruise
// itinerary, cruise extras) are replaced wholesale instead.
package reconcile

// Identifiable is any row type carrying a server-assigned id. A zero id
// marks a row the client considers new.
type Identifiable interface {
	RowID() int
}

// Diff is the outcome of one reconciliation. Apply order inside the
// owning database transaction matters: deletes for all sector types
// first, then inserts, then updates. Removing before re-adding avoids
// transient unique/foreign-key collisions when a client deletes a row
// and re-adds an equivalent one in the same request.
type Diff[T Identifiable] struct {
	ToInsert    []T
	ToUpdate    []T
	ToDeleteIDs []int
}

// Empty reports whether applying the diff would write nothing beyond
// updates of already-present rows.
func (d Diff[T]) Empty() bool {
	return len(d.ToInsert) == 0 && len(d.ToUpdate) == 0 && len(d.ToDeleteIDs) == 0
}

// Compute diffs target against existing:
//
//   - target items with no id, or an id not present in existing, are inserts
//   - target items whose id is present in existing are updates
//   - existing ids absent from target are deletes
//
// Reconciling the result of a previous reconcile again yields no inserts
// and no deletes. Compute itself has no side effects and computes no
// totals; applying the diff is the caller's job.
func Compute[T Identifiable](existing, target []T) Diff[T] {
	existingIDs := make(map[int]struct{}, len(existing))
	for _, row := range existing {
		existingIDs[row.RowID()] = struct{}{}
	}

	targetIDs := make(map[int]struct{}, len(target))
	var d Diff[T]
	for _, item := range target {
		id := item.RowID()
		if id != 0 {
			targetIDs[id] = struct{}{}
		}
		if _, ok := existingIDs[id]; id != 0 && ok {
			d.ToUpdate = append(d.ToUpdate, item)
		} else {
			d.ToInsert = append(d.ToInsert, item)
		}
	}

	for _, row := range existing {
		if _, ok := targetIDs[row.RowID()]; !ok {
			d.ToDeleteIDs = append(d.ToDeleteIDs, row.RowID())
		}
	}
	return d
}
