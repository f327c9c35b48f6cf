package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirectoryWriterWritesNestedFile(t *testing.T) {
	root := t.TempDir()
	w, err := CreateDirectoryArchiveWriter(root)
	if err != nil {
		t.Fatalf("CreateDirectoryArchiveWriter: %v", err)
	}
	if err := w.WriteFile("res/drawable-hdpi/icon.png", 0, []byte("PNGDATA")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "res", "drawable-hdpi", "icon.png"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "PNGDATA" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestDirectoryWriterRejectsDoubleStart(t *testing.T) {
	root := t.TempDir()
	w, err := CreateDirectoryArchiveWriter(root)
	if err != nil {
		t.Fatalf("CreateDirectoryArchiveWriter: %v", err)
	}
	if err := w.StartEntry("a.txt", 0); err != nil {
		t.Fatalf("StartEntry: %v", err)
	}
	if err := w.StartEntry("b.txt", 0); err == nil {
		t.Fatal("expected an error starting a second entry before finishing the first")
	}
}
