package link

import (
	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/restable"
)

// Deduper removes version-only-more-specific duplicates: a value whose
// configuration differs from another's purely by being a higher minimum
// platform version, and which carries a structurally equal value, is
// redundant once that version is the floor in use (spec.md §4.7).
type Deduper struct{}

// DedupeTable removes redundant version-qualified duplicates from every
// entry of t.
func (d *Deduper) DedupeTable(t *restable.Table) {
	for _, ee := range t.Enumerate() {
		d.dedupeEntry(ee.Entry)
	}
}

func (d *Deduper) dedupeEntry(e *restable.Entry) {
	values := restable.SortedValues(e)
	var toRemove []androidfw.Configuration
	var toRemoveProduct []string

	for i, a := range values {
		for j, b := range values {
			if i == j || a.Product != b.Product {
				continue
			}
			if !versionOnlyMoreSpecific(a.Config, b.Config) {
				continue
			}
			if !a.Value.Equal(b.Value) {
				continue
			}
			if shadowsIntervening(e, a.Config, b.Config, a.Product) {
				continue
			}
			toRemove = append(toRemove, a.Config)
			toRemoveProduct = append(toRemoveProduct, a.Product)
		}
	}

	for i, cfg := range toRemove {
		e.RemoveValue(cfg, toRemoveProduct[i])
	}
}

// versionOnlyMoreSpecific reports whether a differs from b on the
// platform-version axis only, and a's version is strictly higher.
func versionOnlyMoreSpecific(a, b androidfw.Configuration) bool {
	if a.MinSdkVersion <= b.MinSdkVersion {
		return false
	}
	diff := a.Diff(b)
	return diff == androidfw.AxisVersion
}

// shadowsIntervening reports whether some other value in e would sit
// strictly between more and less in specificity on the version axis,
// meaning removing more would change which value BestValue selects for
// some real target configuration between the two.
func shadowsIntervening(e *restable.Entry, more, less androidfw.Configuration, product string) bool {
	for _, cv := range e.Values {
		if cv.Product != product {
			continue
		}
		if cv.Config == more || cv.Config == less {
			continue
		}
		diff := cv.Config.Diff(less)
		if diff != androidfw.AxisVersion {
			continue
		}
		if cv.Config.MinSdkVersion > less.MinSdkVersion && cv.Config.MinSdkVersion < more.MinSdkVersion {
			return true
		}
	}
	return false
}
