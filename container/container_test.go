package container

import (
	"bytes"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Add(KindResTable, []byte("table-bytes"))
	w.Add(KindResFile, []byte("file-bytes"))
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	payloads, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}
	if payloads[0].Kind != KindResTable || string(payloads[0].Data) != "table-bytes" {
		t.Fatalf("unexpected first payload: %+v", payloads[0])
	}
	if payloads[1].Kind != KindResFile || string(payloads[1].Data) != "file-bytes" {
		t.Fatalf("unexpected second payload: %+v", payloads[1])
	}
}

func TestReadToleratesTrailingPadding(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Add(KindResFile, []byte("x"))
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	buf.Write([]byte{0, 0, 0})

	payloads, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read with padding: %v", err)
	}
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("XXXX\x01\x00\x00\x00")))
	if err == nil {
		t.Fatal("expected an error for bad magic")
	}
}
