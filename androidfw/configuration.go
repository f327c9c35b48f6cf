// Package androidfw implements the configuration qualifier algebra used to
// select, compare, and serialize resource configurations: parsing a
// qualifier string such as "fr-rFR-sw600dp-xhdpi-v21" into a Configuration,
// comparing two configurations for specificity against a target, and
// computing the axis-difference used by filters and splits.
package androidfw

// Density sentinels, matching the legacy ResTable_config density encoding.
const (
	DensityDefault = 0
	DensityLow     = 120
	DensityMedium  = 160
	DensityTV      = 213
	DensityHigh    = 240
	DensityXHigh   = 320
	DensityXXHigh  = 480
	DensityXXXHigh = 640
	DensityAny     = 0xfffe
	DensityNone    = 0xffff
)

// ScreenSize buckets.
type ScreenSize uint8

const (
	ScreenSizeAny ScreenSize = iota
	ScreenSizeSmall
	ScreenSizeNormal
	ScreenSizeLarge
	ScreenSizeXLarge
)

// ScreenLong / ScreenRound / UIModeNight / Orientation tri-states.
type Tristate uint8

const (
	TristateAny Tristate = iota
	TristateNo
	TristateYes
)

type Orientation uint8

const (
	OrientationAny Orientation = iota
	OrientationPort
	OrientationLand
	OrientationSquare
)

type LayoutDirection uint8

const (
	LayoutDirectionAny LayoutDirection = iota
	LayoutDirectionLTR
	LayoutDirectionRTL
)

type UIModeType uint8

const (
	UIModeTypeAny UIModeType = iota
	UIModeTypeNormal
	UIModeTypeDesk
	UIModeTypeCar
	UIModeTypeTelevision
	UIModeTypeAppliance
	UIModeTypeWatch
	UIModeTypeVrHeadset
)

type Touchscreen uint8

const (
	TouchscreenAny Touchscreen = iota
	TouchscreenNoTouch
	TouchscreenFinger
)

type KeysHidden uint8

const (
	KeysHiddenAny KeysHidden = iota
	KeysHiddenNo
	KeysHiddenYes
	KeysHiddenSoft
)

type Keyboard uint8

const (
	KeyboardAny Keyboard = iota
	KeyboardNoKeys
	KeyboardQwerty
	KeyboardTwelveKey
)

type NavHidden uint8

const (
	NavHiddenAny NavHidden = iota
	NavHiddenNo
	NavHiddenYes
)

type Navigation uint8

const (
	NavigationAny Navigation = iota
	NavigationNoNav
	NavigationDPad
	NavigationTrackball
	NavigationWheel
)

// Locale holds a BCP-47-ish decomposition. Language/Region use ISO codes;
// Script and Variant are populated only by the "b+" BCP-47 form.
type Locale struct {
	Language string
	Region   string
	Script   string
	Variant  string
}

func (l Locale) isSet() bool {
	return l.Language != "" || l.Region != "" || l.Script != "" || l.Variant != ""
}

// Configuration is a fixed-cardinality record of qualifier axes. The zero
// value of every field means "unset" (matches anything), mirroring the
// legacy ResTable_config's all-zero "default" configuration.
type Configuration struct {
	MCC int
	MNC int

	Locale Locale

	LayoutDirection LayoutDirection

	SmallestScreenWidthDp int
	ScreenWidthDp         int
	ScreenHeightDp        int

	ScreenSize   ScreenSize
	ScreenLong   Tristate
	ScreenRound  Tristate
	WideColorGamut Tristate
	HDR          Tristate

	Orientation Orientation

	UIModeType  UIModeType
	UIModeNight Tristate

	Density int

	Touchscreen Touchscreen

	KeysHidden KeysHidden
	Keyboard   Keyboard

	NavHidden  NavHidden
	Navigation Navigation

	ScreenWidth  int // pixels
	ScreenHeight int // pixels

	// MinSdkVersion is aapt2's "version" qualifier (platform-version axis).
	MinSdkVersion int
}

// DefaultConfiguration returns the distinguished "matches anything"
// configuration used as the fallback for unqualified resources.
func DefaultConfiguration() Configuration {
	return Configuration{}
}

// IsDefault reports whether every axis is unset.
func (c Configuration) IsDefault() bool {
	return c == Configuration{}
}
