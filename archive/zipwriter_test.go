package archive

import (
	"archive/zip"
	"io"
	"path/filepath"
	"testing"
)

func TestZipWriterWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zip")

	w, err := CreateZipFileArchiveWriter(path)
	if err != nil {
		t.Fatalf("CreateZipFileArchiveWriter: %v", err)
	}
	if err := w.WriteFile("res/values/strings.arsc", FlagCompress, []byte("hello world")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := w.WriteFile("AndroidManifest.xml", 0, []byte("<manifest/>")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("zip.OpenReader: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	if zr.File[0].Name != "res/values/strings.arsc" {
		t.Fatalf("expected entry order preserved, got %q first", zr.File[0].Name)
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("Open entry: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestZipWriterStickyError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zip")

	w, err := CreateZipFileArchiveWriter(path)
	if err != nil {
		t.Fatalf("CreateZipFileArchiveWriter: %v", err)
	}
	if err := w.FinishEntry(); err == nil {
		t.Fatal("expected an error from FinishEntry with no open entry")
	}
	first := w.Err()

	// Every subsequent call must be a no-op reporting the same error.
	if err := w.WriteFile("anything", 0, []byte("x")); err != first {
		t.Fatalf("expected sticky error %v, got %v", first, err)
	}
	if _, err := w.Write([]byte("x")); err != first {
		t.Fatalf("expected sticky error on Write, got %v", err)
	}
}
