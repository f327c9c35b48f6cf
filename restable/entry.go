package restable

import "github.com/resourcepack/aapt2go/androidfw"
import "github.com/resourcepack/aapt2go/diag"

// OverlayPolicy controls whether an entry may be replaced by an overlay
// input during merge (spec.md §4.5 step 3).
type OverlayPolicy uint8

const (
	OverlayAllowed OverlayPolicy = iota
	OverlayDisallowed
)

// ConfigValue is one configuration-qualified, product-qualified value
// within an Entry.
type ConfigValue struct {
	Config  androidfw.Configuration
	Product string
	Value   Value
	Source  diag.Source
}

// Entry is one resource name within a package and type, carrying one or
// more configuration-qualified values (spec.md §3).
type Entry struct {
	Name          string
	ID            *ID
	Visibility    Visibility
	OverlayPolicy OverlayPolicy
	Values        []ConfigValue
}

// NewEntry returns an empty entry with the given name.
func NewEntry(name string) *Entry {
	return &Entry{Name: name}
}

// FindValue returns the ConfigValue with an exact (config, product) match,
// or nil if none exists.
func (e *Entry) FindValue(config androidfw.Configuration, product string) *ConfigValue {
	for i := range e.Values {
		if e.Values[i].Config == config && e.Values[i].Product == product {
			return &e.Values[i]
		}
	}
	return nil
}

// AddValue inserts a new (config, product, value), returning false (and
// leaving the entry unmodified) if that (config, product) already exists
// -- callers decide whether that is an overlay or an error (spec.md
// invariant 1).
func (e *Entry) AddValue(cv ConfigValue) bool {
	if e.FindValue(cv.Config, cv.Product) != nil {
		return false
	}
	e.Values = append(e.Values, cv)
	return true
}

// SetValue replaces an existing (config, product) value, or appends if
// absent.
func (e *Entry) SetValue(cv ConfigValue) {
	if existing := e.FindValue(cv.Config, cv.Product); existing != nil {
		*existing = cv
		return
	}
	e.Values = append(e.Values, cv)
}

// RemoveValue removes the value with a matching (config, product), if any.
func (e *Entry) RemoveValue(config androidfw.Configuration, product string) bool {
	for i := range e.Values {
		if e.Values[i].Config == config && e.Values[i].Product == product {
			e.Values = append(e.Values[:i], e.Values[i+1:]...)
			return true
		}
	}
	return false
}

// BestValue returns the ConfigValue best matching target among those
// whose Config matches target, per the Configuration.Match/IsBetterThan
// algebra (spec.md §4.1, §4.2 find).
func (e *Entry) BestValue(target androidfw.Configuration, product string) *ConfigValue {
	var best *ConfigValue
	for i := range e.Values {
		cv := &e.Values[i]
		if product != "" && cv.Product != "" && cv.Product != product {
			continue
		}
		if !cv.Config.Match(target) {
			continue
		}
		if best == nil || cv.Config.IsBetterThan(best.Config, target) {
			best = cv
		}
	}
	return best
}
