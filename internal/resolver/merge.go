// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"time"

	"github.com/MKhiriev/go-habit-sync/models"
)

// Merge performs field-level last-writer-wins resolution of two divergent
// snapshots of the same entity:
//
//   - a field present on only one side is kept;
//   - a field with equal values on both sides is kept as-is;
//   - a field both sides changed is taken from the side whose source
//     timestamp is later; an exact timestamp tie is broken by the
//     lexicographically greater value.
//
// The tie-break makes Merge a deterministic, commutative function of its
// two inputs: Merge(a, b) and Merge(b, a) produce the same field set,
// which both replicas rely on to converge without another round trip.
//
// The result keeps local's identity and tombstone handling: a deletion on
// either side whose timestamp is later than every surviving field edit of
// the other side wins; otherwise the live side wins (an edit made after a
// delete resurrects intentionally, a stale delete does not destroy newer
// edits).
func Merge(local, remote models.Entity) models.Entity {
	merged := models.Entity{
		Type:   local.Type,
		ID:     local.ID,
		Fields: make(models.FieldDiff, len(local.Fields)+len(remote.Fields)),
	}

	for name, lv := range local.Fields {
		rv, inRemote := remote.Fields[name]
		if !inRemote {
			merged.Fields[name] = lv
			continue
		}
		merged.Fields[name] = pickFieldValue(lv, rv)
	}
	for name, rv := range remote.Fields {
		if _, inLocal := local.Fields[name]; !inLocal {
			merged.Fields[name] = rv
		}
	}

	merged.Deleted = mergeTombstone(local, remote)

	merged.UpdatedAt = local.UpdatedAt
	if remote.UpdatedAt.After(merged.UpdatedAt) {
		merged.UpdatedAt = remote.UpdatedAt
	}

	return merged
}

// pickFieldValue selects between two values of the same field. Later
// source timestamp wins; ties fall back to byte comparison of values so
// both replicas pick the same side.
func pickFieldValue(a, b models.FieldValue) models.FieldValue {
	switch {
	case a.UpdatedAt.After(b.UpdatedAt):
		return a
	case b.UpdatedAt.After(a.UpdatedAt):
		return b
	case a.Value > b.Value:
		return a
	default:
		return b
	}
}

// mergeTombstone decides whether the merged entity is deleted. A deletion
// wins only when it is at least as recent as the other side's last edit.
func mergeTombstone(local, remote models.Entity) bool {
	switch {
	case local.Deleted && remote.Deleted:
		return true
	case local.Deleted:
		return !lastEdit(remote).After(local.UpdatedAt)
	case remote.Deleted:
		return !lastEdit(local).After(remote.UpdatedAt)
	default:
		return false
	}
}

// lastEdit returns the latest source timestamp across the entity's fields.
func lastEdit(e models.Entity) (latest time.Time) {
	for _, fv := range e.Fields {
		if fv.UpdatedAt.After(latest) {
			latest = fv.UpdatedAt
		}
	}
	return latest
}
