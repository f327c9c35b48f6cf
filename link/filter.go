package link

import "github.com/resourcepack/aapt2go/androidfw"

// AxisFilter accepts or rejects a configuration per axis, mirroring
// filter/ConfigFilter.cpp's AxisConfigFilter: an accept set per
// configured axis, with the version axis always excluded and the density
// axis stripped out (density selection belongs to preferred-density
// stripping, not filtering).
type AxisFilter struct {
	configs    map[androidfw.Configuration]androidfw.AxisMask
	configMask androidfw.AxisMask
}

// NewAxisFilter returns an empty filter; every configuration matches
// until AddConfig is called at least once for a given axis.
func NewAxisFilter() *AxisFilter {
	return &AxisFilter{configs: map[androidfw.Configuration]androidfw.AxisMask{}}
}

// AddConfig adds config to the accepted set, deriving the axis it
// constrains from its difference against the default configuration.
func (f *AxisFilter) AddConfig(config androidfw.Configuration) {
	def := androidfw.DefaultConfiguration()
	mask := def.Diff(config)
	mask &^= androidfw.AxisVersion

	if mask&androidfw.AxisDensity != 0 {
		config.Density = 0
		mask &^= androidfw.AxisDensity
	}

	f.configs[config] = mask
	f.configMask |= mask
}

// Match reports whether config is accepted: it passes when every axis
// the filter constrains is either unset on config or present among the
// accepted configurations for that axis.
func (f *AxisFilter) Match(config androidfw.Configuration) bool {
	def := androidfw.DefaultConfiguration()
	mask := def.Diff(config)
	if f.configMask&mask == 0 {
		return true
	}

	var matched androidfw.AxisMask
	for target, diffMask := range f.configs {
		diff := target.Diff(config)
		switch {
		case diff&diffMask == 0:
			matched |= diffMask
		case diff&diffMask == androidfw.AxisLocale:
			if config.Locale.Language != "" && config.Locale.Language == target.Locale.Language && config.Locale.Region == "" {
				matched |= androidfw.AxisLocale
			}
		case diff&diffMask == androidfw.AxisSmallestScreenSize:
			if config.SmallestScreenWidthDp != 0 && config.SmallestScreenWidthDp < target.SmallestScreenWidthDp {
				matched |= androidfw.AxisSmallestScreenSize
			}
		}
	}
	return matched == f.configMask&mask
}
