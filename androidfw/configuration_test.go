package androidfw

import "testing"

func TestParseConfigurationRoundTrip(t *testing.T) {
	tests := []struct {
		in string
	}{
		{"fr"},
		{"fr-rFR"},
		{"en-rUS"},
		{"sw600dp"},
		{"xhdpi"},
		{"land-xhdpi-v21"},
		{"fr-rFR-sw600dp-xhdpi-v21"},
		{"round-v23"},
		{"b+sr+Latn+419"},
		{""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseConfiguration(tt.in)
			if err != nil {
				t.Fatalf("ParseConfiguration(%q) failed: %v", tt.in, err)
			}
			c2, err := ParseConfiguration(c.String())
			if err != nil {
				t.Fatalf("re-parsing canonical form %q failed: %v", c.String(), err)
			}
			if c != c2 {
				t.Fatalf("round trip mismatch: %+v != %+v (canonical %q)", c, c2, c.String())
			}
		})
	}
}

func TestParseConfigurationImpliesVersion(t *testing.T) {
	c, err := ParseConfiguration("sw600dp")
	if err != nil {
		t.Fatal(err)
	}
	if c.MinSdkVersion != 13 {
		t.Fatalf("expected sw600dp to imply v13, got v%d", c.MinSdkVersion)
	}

	c, err = ParseConfiguration("round")
	if err != nil {
		t.Fatal(err)
	}
	if c.MinSdkVersion != 23 {
		t.Fatalf("expected round to imply v23, got v%d", c.MinSdkVersion)
	}
}

func TestParseConfigurationRejectsUnknownToken(t *testing.T) {
	if _, err := ParseConfiguration("not-a-real-qualifier-xyz"); err == nil {
		t.Fatal("expected an error for an unrecognized qualifier token")
	}
}

func TestMatchAndBetterThan(t *testing.T) {
	target, err := ParseConfiguration("fr-rFR-xhdpi")
	if err != nil {
		t.Fatal(err)
	}

	def := DefaultConfiguration()
	fr, _ := ParseConfiguration("fr")
	frFR, _ := ParseConfiguration("fr-rFR")

	if !def.Match(target) {
		t.Fatal("default configuration should match any target")
	}
	if !fr.Match(target) {
		t.Fatal("fr should match fr-rFR-xhdpi target")
	}
	if !frFR.Match(target) {
		t.Fatal("fr-rFR should match fr-rFR-xhdpi target")
	}

	if !frFR.IsBetterThan(fr, target) {
		t.Fatal("fr-rFR should be better than fr for an fr-rFR target")
	}
	if fr.IsBetterThan(frFR, target) {
		t.Fatal("fr should not be better than fr-rFR for an fr-rFR target")
	}
	if fr.IsBetterThan(fr, target) {
		t.Fatal("IsBetterThan must be irreflexive")
	}
}

func TestDiff(t *testing.T) {
	a, _ := ParseConfiguration("fr-rFR")
	b, _ := ParseConfiguration("en-rUS")
	mask := a.Diff(b)
	if mask&AxisLocale == 0 {
		t.Fatal("expected AxisLocale to be set in the diff mask")
	}
	if mask&AxisDensity != 0 {
		t.Fatal("did not expect AxisDensity to differ")
	}
}

func TestSafeName(t *testing.T) {
	c, _ := ParseConfiguration("fr-rFR-sw600dp-v21")
	got := c.SafeName()
	if got == c.String() {
		t.Fatalf("expected SafeName to replace separators, got %q", got)
	}
	for _, r := range got {
		if r == '-' || r == '+' {
			t.Fatalf("SafeName still contains a separator: %q", got)
		}
	}
}
