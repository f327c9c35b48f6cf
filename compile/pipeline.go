package compile

import (
	"fmt"
	"strings"
	"sync"

	"github.com/resourcepack/aapt2go/aaptcontext"
	"github.com/resourcepack/aapt2go/archive"
	"github.com/resourcepack/aapt2go/container"
	"github.com/resourcepack/aapt2go/diag"
)

// InputFile is one file handed to the compile pipeline.
type InputFile struct {
	Path string
	Data []byte
}

// CompileFunc compiles one input file into a container payload plus its
// exported `@+id/name` symbols. Each call must be safe to run
// concurrently with other calls: it may only touch the InputFile given
// to it and whatever read-only state ctx carries (spec.md §5).
type CompileFunc func(ctx *aaptcontext.Context, f InputFile) (container.Payload, *ExportedSymbols, []*diag.Fatal)

// Pipeline runs a CompileFunc over a batch of independent input files
// using a bounded worker pool, then serializes the resulting container
// payloads into sink in input order (spec.md §5: "workers hand completed
// payloads to a single writer sink").
type Pipeline struct {
	Workers int
	Compile CompileFunc
}

type compileResult struct {
	path     string
	payload  container.Payload
	exported *ExportedSymbols
	errs     []*diag.Fatal
}

// CompileAll compiles every file in files, writes one archive entry per
// file (named by intermediateName) to sink in the same order files were given,
// and returns every file's exported symbols plus every diagnostic raised
// by any file -- one bad file does not stop the others (spec.md §7).
func (p *Pipeline) CompileAll(ctx *aaptcontext.Context, files []InputFile, sink archive.Writer) ([]*ExportedSymbols, []*diag.Fatal) {
	workers := p.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers == 0 {
		return nil, nil
	}

	results := make([]compileResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				f := files[idx]
				payload, exported, errs := p.Compile(ctx, f)
				results[idx] = compileResult{path: f.Path, payload: payload, exported: exported, errs: errs}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	exported := make([]*ExportedSymbols, 0, len(files))
	var allErrs []*diag.Fatal
	for _, r := range results {
		exported = append(exported, r.exported)
		allErrs = append(allErrs, r.errs...)
		if len(r.errs) > 0 {
			continue
		}
		if err := writeCompiledEntry(sink, r.path, r.payload); err != nil {
			allErrs = append(allErrs, diag.NewFatal(diag.Source{Path: r.path}, "writing compiled entry: %v", err))
		}
	}
	return exported, allErrs
}

func writeCompiledEntry(sink archive.Writer, sourcePath string, payload container.Payload) error {
	var buf strings.Builder
	w := container.NewWriter(&buf)
	w.Add(payload.Kind, payload.Data)
	if err := w.Flush(); err != nil {
		return err
	}
	return sink.WriteFile(intermediateName(sourcePath), 0, []byte(buf.String()))
}

// intermediateName derives the ".flat" intermediate filename from a
// resource source path such as "layout-land/main.xml", per spec.md §6's
// "<type-dir>[-<config>]_<name>[.<extension>].flat" convention.
func intermediateName(sourcePath string) string {
	typeDir, file := splitPath(sourcePath)
	if typeDir == "" {
		return file + ".flat"
	}
	return fmt.Sprintf("%s_%s.flat", typeDir, file)
}

// splitPath splits "a/b/c.xml" into typeDir "b" and file "c.xml": the
// resource type-and-config directory is always the immediate parent of
// the leaf file, regardless of how many path segments precede it.
func splitPath(p string) (typeDir, file string) {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return "", p
	}
	file = p[idx+1:]
	rest := p[:idx]
	if parent := strings.LastIndexByte(rest, '/'); parent >= 0 {
		typeDir = rest[parent+1:]
	} else {
		typeDir = rest
	}
	return typeDir, file
}
