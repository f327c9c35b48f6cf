package aaptcontext

import "testing"

func TestPackageIDDefaultsToAppRange(t *testing.T) {
	ctx := New(Options{CompilationPackage: "com.example.app"})
	if got := ctx.PackageID(); got != 0x7f {
		t.Fatalf("expected default app package id 0x7f, got %#x", got)
	}
}

func TestPackageIDHonorsExplicitAssignment(t *testing.T) {
	id := uint8(0x02)
	ctx := New(Options{CompilationPackage: "com.example.lib", PackageID: &id})
	if got := ctx.PackageID(); got != 0x02 {
		t.Fatalf("expected explicit package id 0x02, got %#x", got)
	}
}

func TestPackageIDSharedLibraryBuildTimeIsZero(t *testing.T) {
	ctx := New(Options{SharedLibraryMode: true})
	if got := ctx.PackageID(); got != 0x00 {
		t.Fatalf("expected shared-library build-time package id 0x00, got %#x", got)
	}
}
