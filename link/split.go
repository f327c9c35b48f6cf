package link

import (
	"fmt"

	"github.com/resourcepack/aapt2go/androidfw"
	"github.com/resourcepack/aapt2go/restable"
)

// SplitConstraint names one output split and the exact set of
// configurations it claims.
type SplitConstraint struct {
	Name    string
	Configs map[androidfw.Configuration]struct{}
}

// Splitter partitions a table into a base and a set of split tables,
// mirroring split/TableSplitter.cpp.
type Splitter struct {
	ConfigFilter       *AxisFilter
	PreferredDensities []int
}

// Split mutates t into the base table (claimed values removed) and
// returns one split table per constraint, in the same order. Constraints
// must be pairwise disjoint; Split fails fast before touching t otherwise
// (spec.md §7, "fatal before any work"). PreferredDensities strips
// non-preferred density variants from the base only when no constraints
// are given; with constraints, no stripping is done.
func (s *Splitter) Split(t *restable.Table, constraints []SplitConstraint) (base *restable.Table, splits []*restable.Table, err error) {
	if err := verifyDisjoint(constraints); err != nil {
		return nil, nil, err
	}

	splits = make([]*restable.Table, len(constraints))
	for i := range splits {
		splits[i] = restable.NewTable()
	}

	for _, pkg := range t.Packages {
		for _, split := range splits {
			split.CreatePackage(pkg.Name, pkg.ID)
		}

		for _, typ := range pkg.Types {
			if typ.Type == restable.TypeMipmap {
				// Mipmaps are launcher-icon density variants; every split
				// needs the full set, so they are never claimed away.
				continue
			}
			for _, entry := range typ.Entries {
				s.splitEntry(pkg, typ, entry, constraints, splits)
			}
		}
	}

	return t, splits, nil
}

func (s *Splitter) splitEntry(pkg *restable.Package, typ *restable.TableType, entry *restable.Entry, constraints []SplitConstraint, splits []*restable.Table) {
	if s.ConfigFilter != nil {
		filtered := entry.Values[:0]
		for _, cv := range entry.Values {
			if s.ConfigFilter.Match(cv.Config) {
				filtered = append(filtered, cv)
			}
		}
		entry.Values = filtered
	}

	densityGroups := map[androidfw.Configuration][]*restable.ConfigValue{}
	claimed := map[*restable.ConfigValue]bool{}
	for i := range entry.Values {
		cv := &entry.Values[i]
		claimed[cv] = false
		if cv.Config.Density != 0 {
			key := cv.Config
			key.Density = 0
			densityGroups[key] = append(densityGroups[key], cv)
		}
	}

	for idx, constraint := range constraints {
		selected := selectSplitValues(constraint, densityGroups, claimed)
		if len(selected) == 0 {
			continue
		}
		splitPkg := splits[idx].FindPackage(pkg.Name)
		splitType := splitPkg.FindOrCreateType(typ.Type)
		if splitType.TypeID == nil {
			splitType.TypeID = typ.TypeID
			splitType.Visibility = typ.Visibility
		}
		splitEntry := splitType.FindOrCreateEntry(entry.Name)
		if splitEntry.ID == nil {
			splitEntry.ID = entry.ID
			splitEntry.Visibility = entry.Visibility
			splitEntry.OverlayPolicy = entry.OverlayPolicy
		}
		for _, cv := range selected {
			splitEntry.SetValue(restable.ConfigValue{
				Config:  cv.Config,
				Product: cv.Product,
				Value:   cv.Value.Clone(splits[idx].StringPool),
				Source:  cv.Source,
			})
		}
	}

	if len(s.PreferredDensities) > 0 && len(constraints) == 0 {
		markNonPreferredDensitiesClaimed(s.PreferredDensities, densityGroups, claimed)
	}

	var remaining []restable.ConfigValue
	for i := range entry.Values {
		cv := &entry.Values[i]
		if !claimed[cv] {
			remaining = append(remaining, *cv)
		}
	}
	entry.Values = remaining
}

// selectSplitValues picks the values of one entry that belong to
// constraint: density-independent configs present in its set exactly,
// plus the best density match for each density-dependent config in its
// set, chosen from whatever densities the entry actually has.
func selectSplitValues(constraint SplitConstraint, densityGroups map[androidfw.Configuration][]*restable.ConfigValue, claimed map[*restable.ConfigValue]bool) []*restable.ConfigValue {
	densityIndependent := map[androidfw.Configuration]bool{}
	densityDependent := map[androidfw.Configuration]int{}
	for cfg := range constraint.Configs {
		if cfg.Density == 0 {
			densityIndependent[cfg] = true
			continue
		}
		key := cfg
		key.Density = 0
		densityDependent[key] = cfg.Density
	}

	var selected []*restable.ConfigValue
	for cv, isClaimed := range claimed {
		if isClaimed || cv.Config.Density != 0 {
			continue
		}
		if densityIndependent[cv.Config] {
			selected = append(selected, cv)
			claimed[cv] = true
		}
	}

	for key, density := range densityDependent {
		group := densityGroups[key]
		if len(group) == 0 {
			continue
		}
		target := key
		target.Density = density
		var best *restable.ConfigValue
		for _, cv := range group {
			if best == nil || cv.Config.IsBetterThan(best.Config, target) {
				best = cv
			}
		}
		claimed[best] = true
		selected = append(selected, best)
	}
	return selected
}

// markNonPreferredDensitiesClaimed implements preferred-density stripping:
// within each density group, only the best match for each preferred
// density survives in the base; the rest are claimed away.
func markNonPreferredDensitiesClaimed(preferred []int, groups map[androidfw.Configuration][]*restable.ConfigValue, claimed map[*restable.ConfigValue]bool) {
	for key, group := range groups {
		keep := map[*restable.ConfigValue]bool{}
		for _, density := range preferred {
			target := key
			target.Density = density
			var best *restable.ConfigValue
			for _, cv := range group {
				if best == nil || cv.Config.IsBetterThan(best.Config, target) {
					best = cv
				}
			}
			keep[best] = true
		}
		for _, cv := range group {
			if !keep[cv] {
				claimed[cv] = true
			}
		}
	}
}

func verifyDisjoint(constraints []SplitConstraint) error {
	for i := 0; i < len(constraints); i++ {
		for j := i + 1; j < len(constraints); j++ {
			for cfg := range constraints[i].Configs {
				if _, ok := constraints[j].Configs[cfg]; ok {
					return fmt.Errorf("config %q appears in multiple splits (%q and %q), target ambiguous",
						cfg.String(), constraints[i].Name, constraints[j].Name)
				}
			}
		}
	}
	return nil
}
