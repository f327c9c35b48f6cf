package link

import (
	"testing"

	"github.com/resourcepack/aapt2go/androidfw"
)

func TestAxisFilterAcceptsListedLocale(t *testing.T) {
	f := NewAxisFilter()
	f.AddConfig(androidfw.Configuration{Locale: androidfw.Locale{Language: "en"}})
	f.AddConfig(androidfw.Configuration{Locale: androidfw.Locale{Language: "fr"}})

	if !f.Match(androidfw.Configuration{Locale: androidfw.Locale{Language: "en"}}) {
		t.Fatal("expected en to match")
	}
	if f.Match(androidfw.Configuration{Locale: androidfw.Locale{Language: "de"}}) {
		t.Fatal("expected de to be rejected")
	}
}

func TestAxisFilterIgnoresVersionAxis(t *testing.T) {
	f := NewAxisFilter()
	f.AddConfig(androidfw.Configuration{Locale: androidfw.Locale{Language: "en"}})

	if !f.Match(androidfw.Configuration{Locale: androidfw.Locale{Language: "en"}, MinSdkVersion: 21}) {
		t.Fatal("expected version axis to be ignored by the filter")
	}
}

func TestAxisFilterUnconstrainedAxisPasses(t *testing.T) {
	f := NewAxisFilter()
	f.AddConfig(androidfw.Configuration{Locale: androidfw.Locale{Language: "en"}})

	if !f.Match(androidfw.Configuration{ScreenWidthDp: 600}) {
		t.Fatal("expected a config with no locale set to pass an unrelated-axis filter")
	}
}
