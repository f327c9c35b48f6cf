package androidfw

import (
	"fmt"
	"strconv"
	"strings"
)

var densityQualifier = map[int]string{
	DensityLow:     "ldpi",
	DensityMedium:  "mdpi",
	DensityTV:      "tvdpi",
	DensityHigh:    "hdpi",
	DensityXHigh:   "xhdpi",
	DensityXXHigh:  "xxhdpi",
	DensityXXXHigh: "xxxhdpi",
	DensityNone:    "nodpi",
	DensityAny:     "anydpi",
}

// String renders the canonical qualifier string, in parse order, such that
// ParseConfiguration(c.String()) reproduces an equivalent Configuration.
func (c Configuration) String() string {
	var parts []string

	if c.MCC != 0 {
		parts = append(parts, fmt.Sprintf("mcc%d", c.MCC))
	}
	if c.MNC != 0 {
		parts = append(parts, fmt.Sprintf("mnc%d", c.MNC))
	}
	if c.Locale.isSet() {
		parts = append(parts, c.localeQualifier())
	}
	switch c.LayoutDirection {
	case LayoutDirectionLTR:
		parts = append(parts, "ldltr")
	case LayoutDirectionRTL:
		parts = append(parts, "ldrtl")
	}
	if c.SmallestScreenWidthDp != 0 {
		parts = append(parts, fmt.Sprintf("sw%ddp", c.SmallestScreenWidthDp))
	}
	if c.ScreenWidthDp != 0 {
		parts = append(parts, fmt.Sprintf("w%ddp", c.ScreenWidthDp))
	}
	if c.ScreenHeightDp != 0 {
		parts = append(parts, fmt.Sprintf("h%ddp", c.ScreenHeightDp))
	}
	switch c.ScreenSize {
	case ScreenSizeSmall:
		parts = append(parts, "small")
	case ScreenSizeNormal:
		parts = append(parts, "normal")
	case ScreenSizeLarge:
		parts = append(parts, "large")
	case ScreenSizeXLarge:
		parts = append(parts, "xlarge")
	}
	switch c.ScreenLong {
	case TristateYes:
		parts = append(parts, "long")
	case TristateNo:
		parts = append(parts, "notlong")
	}
	switch c.ScreenRound {
	case TristateYes:
		parts = append(parts, "round")
	case TristateNo:
		parts = append(parts, "notround")
	}
	switch c.WideColorGamut {
	case TristateYes:
		parts = append(parts, "widecg")
	case TristateNo:
		parts = append(parts, "nowidecg")
	}
	switch c.HDR {
	case TristateYes:
		parts = append(parts, "highdr")
	case TristateNo:
		parts = append(parts, "lowdr")
	}
	switch c.Orientation {
	case OrientationPort:
		parts = append(parts, "port")
	case OrientationLand:
		parts = append(parts, "land")
	case OrientationSquare:
		parts = append(parts, "square")
	}
	switch c.UIModeType {
	case UIModeTypeDesk:
		parts = append(parts, "desk")
	case UIModeTypeCar:
		parts = append(parts, "car")
	case UIModeTypeTelevision:
		parts = append(parts, "television")
	case UIModeTypeAppliance:
		parts = append(parts, "appliance")
	case UIModeTypeWatch:
		parts = append(parts, "watch")
	case UIModeTypeVrHeadset:
		parts = append(parts, "vrheadset")
	}
	switch c.UIModeNight {
	case TristateYes:
		parts = append(parts, "night")
	case TristateNo:
		parts = append(parts, "notnight")
	}
	if c.Density != 0 {
		if name, ok := densityQualifier[c.Density]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("%ddpi", c.Density))
		}
	}
	switch c.Touchscreen {
	case TouchscreenNoTouch:
		parts = append(parts, "notouch")
	case TouchscreenFinger:
		parts = append(parts, "finger")
	}
	switch c.KeysHidden {
	case KeysHiddenNo:
		parts = append(parts, "keysexposed")
	case KeysHiddenYes:
		parts = append(parts, "keyshidden")
	case KeysHiddenSoft:
		parts = append(parts, "keyssoft")
	}
	switch c.Keyboard {
	case KeyboardNoKeys:
		parts = append(parts, "nokeys")
	case KeyboardQwerty:
		parts = append(parts, "qwerty")
	case KeyboardTwelveKey:
		parts = append(parts, "12key")
	}
	switch c.NavHidden {
	case NavHiddenNo:
		parts = append(parts, "navexposed")
	case NavHiddenYes:
		parts = append(parts, "navhidden")
	}
	switch c.Navigation {
	case NavigationNoNav:
		parts = append(parts, "nonav")
	case NavigationDPad:
		parts = append(parts, "dpad")
	case NavigationTrackball:
		parts = append(parts, "trackball")
	case NavigationWheel:
		parts = append(parts, "wheel")
	}
	if c.ScreenWidth != 0 && c.ScreenHeight != 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", c.ScreenWidth, c.ScreenHeight))
	}
	if c.MinSdkVersion != 0 {
		parts = append(parts, "v"+strconv.Itoa(c.MinSdkVersion))
	}

	return strings.Join(parts, "-")
}

func (c Configuration) localeQualifier() string {
	l := c.Locale
	if l.Script == "" && l.Variant == "" {
		if l.Region == "" {
			return l.Language
		}
		return l.Language + "-r" + l.Region
	}
	s := "b+" + l.Language
	if l.Script != "" {
		s += "+" + l.Script
	}
	if l.Region != "" {
		s += "+" + l.Region
	}
	if l.Variant != "" {
		s += "+" + l.Variant
	}
	return s
}

// SafeName returns the configuration's qualifier string with '-' and '+'
// replaced by '_', as used for split-artifact naming (spec.md §6).
func (c Configuration) SafeName() string {
	s := c.String()
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "+", "_")
	return s
}
