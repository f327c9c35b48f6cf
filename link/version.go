package link

import (
	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/restable"
)

// minSdkForAttr maps an attribute reference to the platform version that
// introduced it, mirroring aapt2's built-in SDK-level attribute table.
var minSdkForAttr = map[restable.Name]int{
	{Package: "android", Type: restable.TypeAttr, Entry: "textAppearance"}: 21,
	{Package: "android", Type: restable.TypeAttr, Entry: "colorAccent"}:    21,
	{Package: "android", Type: restable.TypeAttr, Entry: "fontFamily"}:     16,
	{Package: "android", Type: restable.TypeAttr, Entry: "actionBarStyle"}: 14,
	{Package: "android", Type: restable.TypeAttr, Entry: "switchStyle"}:    14,
	{Package: "android", Type: restable.TypeAttr, Entry: "contextClickable"}: 23,
	{Package: "android", Type: restable.TypeAttr, Entry: "drawableTint"}:   21,
}

// AutoVersioner raises a styled value's platform-version qualifier to the
// highest level required by any attribute it references (spec.md §4.7).
type AutoVersioner struct {
	// MinSdkForAttr overrides the built-in attribute table when set, used
	// by tests and by callers with a custom framework attribute set.
	MinSdkForAttr map[restable.Name]int
}

func (v *AutoVersioner) table() map[restable.Name]int {
	if v.MinSdkForAttr != nil {
		return v.MinSdkForAttr
	}
	return minSdkForAttr
}

// VersionTable walks every entry, cloning any styled value that requires
// a platform version higher than its current qualifier into a new,
// version-raised configuration.
func (v *AutoVersioner) VersionTable(t *restable.Table) {
	for _, ee := range t.Enumerate() {
		v.versionEntry(ee.Entry, t.StringPool)
	}
}

type versionClone struct {
	config     androidfw.Configuration
	origConfig androidfw.Configuration
	product    string
	value      restable.Value
	source     diag.Source
}

func (v *AutoVersioner) versionEntry(e *restable.Entry, pool *restable.StringPool) {
	var clones []versionClone
	for _, cv := range e.Values {
		style, ok := cv.Value.(*restable.Style)
		if !ok {
			continue
		}
		required := v.minSdkForStyle(style)
		if required <= cv.Config.MinSdkVersion {
			continue
		}
		raised := cv.Config
		raised.MinSdkVersion = required
		clones = append(clones, versionClone{
			config:     raised,
			origConfig: cv.Config,
			product:    cv.Product,
			value:      cv.Value,
			source:     cv.Source,
		})
	}

	winners := map[string]versionClone{}
	for _, c := range clones {
		key := c.config.String() + "\x00" + c.product
		cur, ok := winners[key]
		if !ok || c.origConfig.IsBetterThan(cur.origConfig, c.config) {
			winners[key] = c
		}
	}

	for _, c := range winners {
		e.AddValue(restable.ConfigValue{
			Config:  c.config,
			Product: c.product,
			Value:   c.value.Clone(pool),
			Source:  c.source,
		})
	}
}

func (v *AutoVersioner) minSdkForStyle(s *restable.Style) int {
	table := v.table()
	max := 0
	for _, entry := range s.Entries {
		if sdk, ok := table[entry.Attr.Name]; ok && sdk > max {
			max = sdk
		}
	}
	return max
}
