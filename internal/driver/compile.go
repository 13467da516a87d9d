package driver

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"ztc/internal/charmap"
	"ztc/internal/compiler"
	"ztc/internal/diag"
	"ztc/internal/observ"
	"ztc/internal/source"
	"ztc/internal/trace"
)

// ErrNoInput is returned when neither inline text nor a file path was given.
var ErrNoInput = errors.New("no input: pass script text or --file")

// InlineName is the path diagnostics show for inline text.
const InlineName = "<inline>"

// Options configures one compile or bundle run.
type Options struct {
	Chat           bool
	NFC            bool // привести текст к NFC до компиляции
	Charmap        *charmap.Table
	Mugshots       *charmap.Mugshots
	MaxDiagnostics int
	Timer          *observ.Timer // может быть nil
}

// Input selects what to compile. A non-empty Path wins over Text.
type Input struct {
	Text    string
	HasText bool
	Path    string
}

// CompileResult holds one compiled script and everything needed to report on it.
type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bytes   []byte
	Bag     *diag.Bag
}

// Compile resolves in and compiles it.
func Compile(ctx context.Context, in Input, opts Options) (*CompileResult, error) {
	switch {
	case in.Path != "":
		return CompileFile(ctx, in.Path, opts)
	case in.HasText:
		return CompileText(ctx, in.Text, opts)
	default:
		return nil, ErrNoInput
	}
}

// CompileFile loads path from disk and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*CompileResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "compile-file", trace.ParentSpan(ctx))
	defer span.End(path)
	ctx = trace.WithParentSpan(ctx, span)

	fs := source.NewFileSet()
	id, err := loadScript(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return compileLoaded(ctx, fs, id, opts), nil
}

// CompileText compiles inline text.
func CompileText(ctx context.Context, text string, opts Options) (*CompileResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "compile-text", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithParentSpan(ctx, span)

	fs := source.NewFileSet()
	id := fs.AddVirtual(InlineName, []byte(text))
	id = normalizeScript(ctx, fs, id, opts)
	return compileLoaded(ctx, fs, id, opts), nil
}

// loadScript reads path into fs and applies the optional normalization.
func loadScript(ctx context.Context, fs *source.FileSet, path string, opts Options) (source.FileID, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "load", trace.ParentSpan(ctx))
	idx := opts.Timer.Begin("load")

	id, err := fs.Load(path)

	opts.Timer.End(idx, path)
	span.End(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return normalizeScript(ctx, fs, id, opts), nil
}

// normalizeScript rewrites the file to NFC when asked to. The rewritten text
// is stored as a new version of the same path so diagnostic spans match what
// the compiler saw.
func normalizeScript(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) source.FileID {
	if !opts.NFC {
		return id
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "normalize", trace.ParentSpan(ctx))
	defer span.End("")

	f := fs.Get(id)
	if norm.NFC.IsNormal(f.Content) {
		return id
	}
	return fs.Add(f.Path, norm.NFC.Bytes(f.Content), f.Flags|source.FileNormalizedNFC)
}

func compileLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *CompileResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "compile", trace.ParentSpan(ctx))
	idx := opts.Timer.Begin("compile")

	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	out := compileFile(file, bag, opts)
	bag.Sort()

	opts.Timer.End(idx, fmt.Sprintf("%d bytes", len(out)))
	span.WithExtra("bytes", fmt.Sprint(len(out))).End("")
	return &CompileResult{FileSet: fs, File: file, Bytes: out, Bag: bag}
}

// compileFile runs the engine with diagnostics collected into bag.
func compileFile(file *source.File, bag *diag.Bag, opts Options) []byte {
	c := compiler.New(compiler.Options{
		Chat:     opts.Chat,
		Charmap:  opts.Charmap,
		Mugshots: opts.Mugshots,
		Reporter: diag.BagReporter{Bag: bag},
	})
	return c.Compile(file)
}
