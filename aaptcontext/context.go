// Package aaptcontext carries the ambient configuration every compile/link
// stage needs -- diagnostics, symbol resolution, the compiling package's
// identity -- as one struct threaded explicitly through every call,
// instead of through package-level globals (spec.md §9 "no singletons").
package aaptcontext

import (
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/resourcepack/aapt2go/diag"
	"github.com/resourcepack/aapt2go/link"
)

// NameMangler rewrites a resource name crossing a package boundary, the
// injected hook the compile/link stages use instead of a package-level
// naming convention (e.g. merging a static-library's "private" resources
// under a mangled prefix).
type NameMangler interface {
	Mangle(pkg, entry string) string
}

// Options carries the build-time facts a compile or link run needs:
// which package is being compiled, its assigned package id (if any), and
// the minimum platform version the output must support.
type Options struct {
	CompilationPackage string
	PackageID          *uint8
	MinSdkVersion      int
	SharedLibraryMode  bool
}

// Context is the "aapt context" of spec.md §9: everything a stage needs,
// bundled once by the CLI front end and passed by value/pointer to every
// stage rather than reached for via a global.
type Context struct {
	Diagnostics *diag.Diagnostics
	Mangler     NameMangler
	Symbols     *link.SymbolSourceChain
	Options     Options
	Logger      *log.Helper
}

// New builds a Context around a fresh diagnostics sink and an
// error-level-filtered stdout logger, matching the teacher's own
// NewFilter(NewStdLogger(...), FilterLevel(LevelError)) default.
func New(opts Options) *Context {
	base := log.NewStdLogger(os.Stdout)
	helper := log.NewHelper(log.NewFilter(base, log.FilterLevel(log.LevelError)))
	return &Context{
		Diagnostics: diag.New(),
		Symbols:     &link.SymbolSourceChain{},
		Options:     opts,
		Logger:      helper,
	}
}

// PackageID returns the configured package id, defaulting to the app
// range (0x7f) for a non-shared-library build.
func (c *Context) PackageID() uint8 {
	if c.Options.PackageID != nil {
		return *c.Options.PackageID
	}
	if c.Options.SharedLibraryMode {
		return link.PackageIDSharedLibraryBuildTime
	}
	return 0x7f
}
