// Package container implements the compiled-artifact envelope: the
// intermediate ".flat" file format holding one or more typed payloads
// (a resource-table payload or a compiled-file payload) produced by the
// compile phase and consumed by the linker (spec.md §4.4, §6).
package container

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic identifies a compiled-artifact container.
var Magic = [4]byte{'A', 'A', 'P', 'T'}

// Version is the only container version this package understands.
const Version = 1

// Kind tags a payload's content.
type Kind uint32

const (
	KindResTable  Kind = 0
	KindResFile   Kind = 1
)

// Payload is one typed entry within a container.
type Payload struct {
	Kind Kind
	Data []byte
}

// Writer emits payloads to a container in call order -- never sorted,
// per spec.md §4.4.
type Writer struct {
	w        io.Writer
	payloads []Payload
}

// NewWriter returns a Writer that buffers payloads until Flush.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Add appends one payload to the container, in emit order.
func (w *Writer) Add(kind Kind, data []byte) {
	w.payloads = append(w.payloads, Payload{Kind: kind, Data: data})
}

// Flush writes the magic, version, and every buffered payload.
func (w *Writer) Flush() error {
	if _, err := w.w.Write(Magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w.w, binary.LittleEndian, uint32(Version)); err != nil {
		return err
	}
	for _, p := range w.payloads {
		if err := binary.Write(w.w, binary.LittleEndian, uint32(p.Kind)); err != nil {
			return err
		}
		if err := binary.Write(w.w, binary.LittleEndian, uint64(len(p.Data))); err != nil {
			return err
		}
		if _, err := w.w.Write(p.Data); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes every payload in a container, in emit order. Up to 4
// trailing padding bytes after the last payload are tolerated.
func Read(r io.Reader) ([]Payload, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading container magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("not a compiled-artifact container: bad magic %q", magic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading container version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("unsupported container version %d", version)
	}

	var payloads []Payload
	for {
		var kindBuf [4]byte
		n, err := io.ReadFull(r, kindBuf[:])
		if err == io.EOF || (err == io.ErrUnexpectedEOF && n < 4) {
			// Clean end of stream, or up to 4 bytes of trailing padding.
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading payload kind: %w", err)
		}
		kind := binary.LittleEndian.Uint32(kindBuf[:])

		var length uint64
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			if err == io.EOF {
				// Exactly four trailing padding bytes.
				break
			}
			return nil, fmt.Errorf("reading payload length: %w", err)
		}

		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("reading payload bytes: %w", err)
		}

		payloads = append(payloads, Payload{Kind: Kind(kind), Data: data})
	}

	return payloads, nil
}
