package androidfw

import (
	"fmt"
	"strconv"
	"strings"
)

// axis identifies which field of Configuration a qualifier token fills.
// Tokens are tried against axes in this exact order, per spec: MCC, MNC,
// locale, layout-direction, smallest-width, width, height, size, long,
// round, wide-gamut, hdr, orientation, ui-mode, density, touchscreen,
// keys-hidden, keyboard, nav-hidden, navigation, dimensions, version.
type axis int

const (
	axisMCC axis = iota
	axisMNC
	axisLocale
	axisLayoutDir
	axisSmallestWidth
	axisScreenWidthDp
	axisScreenHeightDp
	axisScreenSize
	axisScreenLong
	axisScreenRound
	axisWideGamut
	axisHDR
	axisOrientation
	axisUIMode
	axisDensity
	axisTouchscreen
	axisKeysHidden
	axisKeyboard
	axisNavHidden
	axisNavigation
	axisDimensions
	axisVersion
	axisCount
)

var densityNames = map[string]int{
	"ldpi":    DensityLow,
	"mdpi":    DensityMedium,
	"tvdpi":   DensityTV,
	"hdpi":    DensityHigh,
	"xhdpi":   DensityXHigh,
	"xxhdpi":  DensityXXHigh,
	"xxxhdpi": DensityXXXHigh,
	"nodpi":   DensityNone,
	"anydpi":  DensityAny,
}

// sdkFloorFor returns the minimum SDK version implied by setting a given axis,
// or 0 if the axis does not raise the floor.
func sdkFloorFor(a axis, c Configuration) int {
	switch a {
	case axisLayoutDir:
		return 17
	case axisSmallestWidth, axisScreenWidthDp, axisScreenHeightDp:
		return 13
	case axisScreenRound:
		return 23
	case axisWideGamut, axisHDR:
		return 26
	case axisDensity:
		if c.Density == DensityAny {
			return 21
		}
		return 0
	case axisUIMode:
		if c.UIModeType == UIModeTypeVrHeadset {
			return 26
		}
		return 8
	default:
		return 0
	}
}

// ParseConfiguration parses a dash-separated qualifier string into a
// Configuration. Unknown tokens, or tokens out of the strict axis order,
// are reported as errors naming the offending token.
func ParseConfiguration(qualifiers string) (Configuration, error) {
	var c Configuration
	if qualifiers == "" {
		return c, nil
	}

	tokens := strings.Split(qualifiers, "-")
	cur := axis(0)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "" {
			return Configuration{}, fmt.Errorf("empty qualifier token at position %d in %q", i, qualifiers)
		}

		// BCP-47 locale: "b+lang+Script+REGION+variant"
		if strings.HasPrefix(tok, "b+") && cur <= axisLocale {
			loc, err := parseBCP47(tok)
			if err != nil {
				return Configuration{}, err
			}
			c.Locale = loc
			cur = axisLocale + 1
			continue
		}

		matched := false
		for a := cur; a < axisCount && !matched; a++ {
			consumed, ok, err := tryAxis(a, tok, tokens, i, &c)
			if err != nil {
				return Configuration{}, err
			}
			if ok {
				i += consumed - 1
				cur = a + 1
				matched = true
			}
		}
		if !matched {
			return Configuration{}, fmt.Errorf("unrecognized qualifier %q in %q", tok, qualifiers)
		}
	}

	return c, nil
}

// tryAxis attempts to consume one or more tokens starting at tokens[i] as
// the given axis. It returns the number of tokens consumed.
func tryAxis(a axis, tok string, tokens []string, i int, c *Configuration) (int, bool, error) {
	switch a {
	case axisMCC:
		if strings.HasPrefix(tok, "mcc") {
			v, err := strconv.Atoi(tok[3:])
			if err != nil {
				return 0, false, fmt.Errorf("invalid mcc qualifier %q", tok)
			}
			c.MCC = v
			return 1, true, nil
		}
	case axisMNC:
		if strings.HasPrefix(tok, "mnc") {
			v, err := strconv.Atoi(tok[3:])
			if err != nil {
				return 0, false, fmt.Errorf("invalid mnc qualifier %q", tok)
			}
			c.MNC = v
			return 1, true, nil
		}
	case axisLocale:
		if isLangToken(tok) {
			c.Locale.Language = tok
			if i+1 < len(tokens) && isRegionToken(tokens[i+1]) {
				c.Locale.Region = strings.ToUpper(strings.TrimPrefix(tokens[i+1], "r"))
				return 2, true, nil
			}
			return 1, true, nil
		}
	case axisLayoutDir:
		switch tok {
		case "ldltr":
			c.LayoutDirection = LayoutDirectionLTR
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "ldrtl":
			c.LayoutDirection = LayoutDirectionRTL
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisSmallestWidth:
		if v, ok := parseDpToken(tok, "sw", "dp"); ok {
			c.SmallestScreenWidthDp = v
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisScreenWidthDp:
		if v, ok := parseDpToken(tok, "w", "dp"); ok {
			c.ScreenWidthDp = v
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisScreenHeightDp:
		if v, ok := parseDpToken(tok, "h", "dp"); ok {
			c.ScreenHeightDp = v
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisScreenSize:
		switch tok {
		case "small":
			c.ScreenSize = ScreenSizeSmall
			return 1, true, nil
		case "normal":
			c.ScreenSize = ScreenSizeNormal
			return 1, true, nil
		case "large":
			c.ScreenSize = ScreenSizeLarge
			return 1, true, nil
		case "xlarge":
			c.ScreenSize = ScreenSizeXLarge
			return 1, true, nil
		}
	case axisScreenLong:
		switch tok {
		case "long":
			c.ScreenLong = TristateYes
			return 1, true, nil
		case "notlong":
			c.ScreenLong = TristateNo
			return 1, true, nil
		}
	case axisScreenRound:
		switch tok {
		case "round":
			c.ScreenRound = TristateYes
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "notround":
			c.ScreenRound = TristateNo
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisWideGamut:
		switch tok {
		case "widecg":
			c.WideColorGamut = TristateYes
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "nowidecg":
			c.WideColorGamut = TristateNo
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisHDR:
		switch tok {
		case "highdr":
			c.HDR = TristateYes
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "lowdr":
			c.HDR = TristateNo
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisOrientation:
		switch tok {
		case "port":
			c.Orientation = OrientationPort
			return 1, true, nil
		case "land":
			c.Orientation = OrientationLand
			return 1, true, nil
		case "square":
			c.Orientation = OrientationSquare
			return 1, true, nil
		}
	case axisUIMode:
		switch tok {
		case "desk":
			c.UIModeType = UIModeTypeDesk
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "car":
			c.UIModeType = UIModeTypeCar
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "television", "tv":
			c.UIModeType = UIModeTypeTelevision
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "appliance":
			c.UIModeType = UIModeTypeAppliance
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "watch":
			c.UIModeType = UIModeTypeWatch
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "vrheadset":
			c.UIModeType = UIModeTypeVrHeadset
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "night":
			c.UIModeNight = TristateYes
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		case "notnight":
			c.UIModeNight = TristateNo
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
	case axisDensity:
		if d, ok := densityNames[tok]; ok {
			c.Density = d
			c.MinSdkVersion = maxInt(c.MinSdkVersion, sdkFloorFor(a, *c))
			return 1, true, nil
		}
		if strings.HasSuffix(tok, "dpi") {
			v, err := strconv.Atoi(strings.TrimSuffix(tok, "dpi"))
			if err == nil && v > 0 {
				c.Density = v
				return 1, true, nil
			}
		}
	case axisTouchscreen:
		switch tok {
		case "notouch":
			c.Touchscreen = TouchscreenNoTouch
			return 1, true, nil
		case "finger":
			c.Touchscreen = TouchscreenFinger
			return 1, true, nil
		}
	case axisKeysHidden:
		switch tok {
		case "keysexposed":
			c.KeysHidden = KeysHiddenNo
			return 1, true, nil
		case "keyshidden":
			c.KeysHidden = KeysHiddenYes
			return 1, true, nil
		case "keyssoft":
			c.KeysHidden = KeysHiddenSoft
			return 1, true, nil
		}
	case axisKeyboard:
		switch tok {
		case "nokeys":
			c.Keyboard = KeyboardNoKeys
			return 1, true, nil
		case "qwerty":
			c.Keyboard = KeyboardQwerty
			return 1, true, nil
		case "12key":
			c.Keyboard = KeyboardTwelveKey
			return 1, true, nil
		}
	case axisNavHidden:
		switch tok {
		case "navexposed":
			c.NavHidden = NavHiddenNo
			return 1, true, nil
		case "navhidden":
			c.NavHidden = NavHiddenYes
			return 1, true, nil
		}
	case axisNavigation:
		switch tok {
		case "nonav":
			c.Navigation = NavigationNoNav
			return 1, true, nil
		case "dpad":
			c.Navigation = NavigationDPad
			return 1, true, nil
		case "trackball":
			c.Navigation = NavigationTrackball
			return 1, true, nil
		case "wheel":
			c.Navigation = NavigationWheel
			return 1, true, nil
		}
	case axisDimensions:
		if w, h, ok := parseDimensionToken(tok); ok {
			c.ScreenWidth = w
			c.ScreenHeight = h
			return 1, true, nil
		}
	case axisVersion:
		if strings.HasPrefix(tok, "v") {
			v, err := strconv.Atoi(tok[1:])
			if err != nil {
				return 0, false, fmt.Errorf("invalid version qualifier %q", tok)
			}
			c.MinSdkVersion = maxInt(c.MinSdkVersion, v)
			return 1, true, nil
		}
	}
	return 0, false, nil
}

func isLangToken(tok string) bool {
	if len(tok) != 2 && len(tok) != 3 {
		return false
	}
	for _, r := range tok {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func isRegionToken(tok string) bool {
	if strings.HasPrefix(tok, "r") && len(tok) == 3 {
		for _, r := range tok[1:] {
			if r < 'A' && (r < 'a' || r > 'z') {
				return false
			}
		}
		return true
	}
	return false
}

func parseBCP47(tok string) (Locale, error) {
	parts := strings.Split(tok, "+")
	if len(parts) < 2 {
		return Locale{}, fmt.Errorf("malformed BCP-47 qualifier %q", tok)
	}
	loc := Locale{Language: parts[1]}
	for _, p := range parts[2:] {
		switch {
		case len(p) == 4 && isAlphaTitle(p):
			loc.Script = p
		case len(p) == 2 || len(p) == 3:
			loc.Region = strings.ToUpper(p)
		default:
			loc.Variant = p
		}
	}
	return loc, nil
}

func isAlphaTitle(s string) bool {
	for i, r := range s {
		if i == 0 {
			if r < 'A' || r > 'Z' {
				return false
			}
			continue
		}
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func parseDpToken(tok, prefix, suffix string) (int, bool) {
	if !strings.HasPrefix(tok, prefix) || !strings.HasSuffix(tok, suffix) {
		return 0, false
	}
	middle := tok[len(prefix) : len(tok)-len(suffix)]
	v, err := strconv.Atoi(middle)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// parseDimensionToken parses the "<w>x<h>" screen-size-in-pixels qualifier,
// e.g. "1920x1080".
func parseDimensionToken(tok string) (int, int, bool) {
	wh := strings.SplitN(tok, "x", 2)
	if len(wh) != 2 {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(wh[0])
	h, err2 := strconv.Atoi(wh[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
