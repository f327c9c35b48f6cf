package compile

// ImageCodec is the injected PNG/9-patch front end: decoding, chunking,
// and any crunch/optimization pass live entirely behind this interface
// (spec.md §1, §4.10 "externalized").
type ImageCodec interface {
	// Crunch re-encodes a PNG (or extracts a 9-patch's chunk) into the
	// compiled payload bytes stored in the output archive.
	Crunch(data []byte) ([]byte, error)
}

// RawPassthrough handles files that are copied into the archive
// unmodified (assets/**, raw/**), with an injection seam so a caller can
// validate or transform them without this package knowing the format.
type RawPassthrough interface {
	Process(path string, data []byte) ([]byte, error)
}

// IdentityPassthrough is the trivial RawPassthrough that copies bytes
// through unchanged, used as the default for assets/raw files.
type IdentityPassthrough struct{}

func (IdentityPassthrough) Process(_ string, data []byte) ([]byte, error) {
	return data, nil
}
