// Package merge implements the table merger (spec.md §4.5): folding a
// sequence of append or overlay compiled tables into one base table,
// continuing past recoverable conflicts and reporting every one of them
// the way the teacher's directory parser keeps walking a malformed PE
// and accumulates every error it hits instead of bailing at the first.
package merge

import (
	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/restable"
)

// Mode selects whether incoming values may replace existing ones.
type Mode uint8

const (
	// ModeAppend only adds new resources; a colliding (config, product)
	// with a structurally different value is an error.
	ModeAppend Mode = iota
	// ModeOverlay permits replacing an existing value, unless the entry's
	// OverlayPolicy forbids it.
	ModeOverlay
)

// Merger folds src tables into a dst table under a fixed Mode.
type Merger struct {
	Mode Mode
}

// Merge folds src into dst in place, returning every conflict
// encountered; dst is modified regardless of whether errors occurred, so
// callers should discard dst on a non-empty return if strict semantics
// are required.
func (m *Merger) Merge(dst *restable.Table, src *restable.Table) []*diag.Fatal {
	var errs []*diag.Fatal

	for _, ee := range src.Enumerate() {
		srcPkg, srcType, srcEntry := ee.Package, ee.Type, ee.Entry

		dstPkg := dst.CreatePackage(srcPkg.Name, srcPkg.ID)
		dstType := dstPkg.FindOrCreateType(srcType.Type)
		dstType.Visibility = restable.Stricter(dstType.Visibility, srcType.Visibility)
		if srcType.TypeID != nil {
			if dstType.TypeID == nil {
				id := *srcType.TypeID
				dstType.TypeID = &id
			} else if *dstType.TypeID != *srcType.TypeID {
				errs = append(errs, diag.NewFatal(diag.Source{},
					"conflicting type id pin for %s:%s: %d vs %d",
					srcPkg.Name, srcType.Type, *dstType.TypeID, *srcType.TypeID))
			}
		}

		dstEntry := dstType.FindOrCreateEntry(srcEntry.Name)
		if err := m.mergeVisibility(dstEntry, srcEntry, srcPkg.Name, srcType.Type); err != nil {
			errs = append(errs, err)
		}

		for _, cv := range restable.SortedValues(srcEntry) {
			cloned := restable.ConfigValue{
				Config:  cv.Config,
				Product: cv.Product,
				Source:  cv.Source,
				Value:   cv.Value.Clone(dst.StringPool),
			}
			if err := m.mergeValue(dstEntry, cloned, srcPkg.Name, srcType.Type); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errs
}

func (m *Merger) mergeVisibility(dstEntry, srcEntry *restable.Entry, pkgName string, typ restable.Type) *diag.Fatal {
	dstEntry.Visibility.Level = restable.Stricter(dstEntry.Visibility.Level, srcEntry.Visibility.Level)
	if srcEntry.Visibility.Comment != "" && dstEntry.Visibility.Comment == "" {
		dstEntry.Visibility.Comment = srcEntry.Visibility.Comment
	}
	if srcEntry.Visibility.StagedAPI {
		dstEntry.Visibility.StagedAPI = true
	}
	if srcEntry.Visibility.StagingGroup != "" && dstEntry.Visibility.StagingGroup == "" {
		dstEntry.Visibility.StagingGroup = srcEntry.Visibility.StagingGroup
	}

	if srcEntry.Visibility.PinnedID != nil {
		if dstEntry.Visibility.PinnedID == nil {
			id := *srcEntry.Visibility.PinnedID
			dstEntry.Visibility.PinnedID = &id
		} else if *dstEntry.Visibility.PinnedID != *srcEntry.Visibility.PinnedID {
			return diag.NewFatal(diag.Source{}, "conflicting pinned id for %s:%s/%s: %s vs %s",
				pkgName, typ, srcEntry.Name, dstEntry.Visibility.PinnedID, srcEntry.Visibility.PinnedID)
		}
	}
	return nil
}

// mergeValue applies step 3 (append/overlay conflict resolution) and
// step 5 (styleable union) of spec.md §4.5.
func (m *Merger) mergeValue(dstEntry *restable.Entry, cv restable.ConfigValue, pkgName string, typ restable.Type) *diag.Fatal {
	existing := dstEntry.FindValue(cv.Config, cv.Product)
	if existing == nil {
		dstEntry.Values = append(dstEntry.Values, cv)
		return nil
	}

	if existingStyleable, ok := existing.Value.(*restable.Styleable); ok {
		if incoming, ok := cv.Value.(*restable.Styleable); ok {
			existingStyleable.Union(incoming)
			return nil
		}
	}

	if existing.Value.Equal(cv.Value) {
		return nil
	}

	if m.Mode == ModeOverlay {
		if dstEntry.OverlayPolicy == restable.OverlayDisallowed {
			return diag.NewFatal(cv.Source, "cannot overlay %s:%s/%s with config %q: overlay disallowed",
				pkgName, typ, dstEntry.Name, cv.Config.String())
		}
		*existing = cv
		return nil
	}

	return diag.NewFatal(cv.Source, "duplicate definition of %s:%s/%s with config %q (previously defined at %s)",
		pkgName, typ, dstEntry.Name, cv.Config.String(), existing.Source)
}
