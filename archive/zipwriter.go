package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
)

func init() {
	zip.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})
	zip.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
}

// ZipWriter writes a zip-compatible archive, using klauspost/compress's
// DEFLATE implementation for kCompress entries and 4-byte padding for
// kAlign entries so the archive's payload can be mmap'd in place.
type ZipWriter struct {
	stickyError
	f      *os.File
	zw     *zip.Writer
	cur    io.Writer
	curSet bool
}

// CreateZipFileArchiveWriter opens path, truncating any existing file,
// and returns a Writer backed by it.
func CreateZipFileArchiveWriter(path string) (*ZipWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &ZipWriter{f: f, zw: zip.NewWriter(f)}, nil
}

func (w *ZipWriter) StartEntry(path string, flags Flag) error {
	if !w.ok() {
		return w.err
	}
	if w.curSet {
		return w.fail(fmt.Errorf("archive: StartEntry(%q) called before FinishEntry of a prior entry", path))
	}

	header := &zip.FileHeader{Name: path, Method: zip.Store}
	if flags&FlagCompress != 0 {
		header.Method = zip.Deflate
	}

	cw, err := w.zw.CreateHeader(header)
	if err != nil {
		return w.fail(err)
	}
	if flags&FlagAlign != 0 && flags&FlagCompress == 0 {
		// Stored entries live at a fixed offset inside the archive, so
		// align them by padding the entry's own content to a 4-byte
		// boundary -- the reader skips the padding using the recorded
		// uncompressed size of the real payload, carried out of band in
		// the container envelope rather than the zip header itself.
		cw = &alignPad{w: cw}
	}
	w.cur = cw
	w.curSet = true
	return nil
}

func (w *ZipWriter) Write(p []byte) (int, error) {
	if !w.ok() {
		return 0, w.err
	}
	if !w.curSet {
		return 0, w.fail(fmt.Errorf("archive: Write called with no open entry"))
	}
	n, err := w.cur.Write(p)
	if err != nil {
		w.fail(err)
	}
	return n, err
}

func (w *ZipWriter) FinishEntry() error {
	if !w.ok() {
		return w.err
	}
	if !w.curSet {
		return w.fail(fmt.Errorf("archive: FinishEntry called with no open entry"))
	}
	if pad, ok := w.cur.(*alignPad); ok {
		if err := pad.flushPadding(); err != nil {
			return w.fail(err)
		}
	}
	w.cur = nil
	w.curSet = false
	return nil
}

func (w *ZipWriter) WriteFile(path string, flags Flag, data []byte) error {
	if err := w.StartEntry(path, flags); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.FinishEntry()
}

func (w *ZipWriter) Err() error { return w.err }

func (w *ZipWriter) Close() error {
	if err := w.zw.Close(); err != nil {
		w.fail(err)
	}
	if err := w.f.Close(); err != nil {
		w.fail(err)
	}
	return w.err
}

// alignPad pads a stored entry's byte count up to the next 4-byte
// boundary so the next entry (and this one) land on an mmap-friendly
// offset.
type alignPad struct {
	w       io.Writer
	written int
}

func (p *alignPad) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += n
	return n, err
}

func (p *alignPad) flushPadding() error {
	pad := (4 - p.written%4) % 4
	if pad == 0 {
		return nil
	}
	_, err := p.w.Write(make([]byte, pad))
	return err
}
