package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"gopkg.microglot.org/clex/internal/exc"
	"gopkg.microglot.org/clex/internal/iter"
	"gopkg.microglot.org/clex/internal/lex"
	"gopkg.microglot.org/clex/internal/source"
	"gopkg.microglot.org/clex/internal/stream"
)

type opts struct {
	Roots          []string
	BufferSize     int
	Batch          int
	SkipWhitespace bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("clex", pflag.PanicOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for inputs.")
	flags.IntVar(&op.BufferSize, "buffer-size", stream.DefaultCapacity, "Lexing buffer capacity in bytes. Bounds the largest token.")
	flags.IntVar(&op.Batch, "batch", 64, "Maximum tokens requested per engine invocation.")
	flags.BoolVar(&op.SkipWhitespace, "skip-whitespace", false, "Drop whitespace tokens from the output.")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	mf := make(source.FileSystemMulti, 0, len(op.Roots))
	for _, root := range op.Roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		rf, err := source.NewFileSystemLocal(absRoot)
		if err != nil {
			panic(err.Error())
		}
		mf = append(mf, rf)
	}

	reporter := exc.NewReporter(nil)

	files := make([]source.File, 0, len(targets))
	if len(targets) == 0 {
		files = append(files, source.NewFileFN("stdin", func() (io.ReadCloser, error) {
			return io.NopCloser(os.Stdin), nil
		}))
	}
	for _, target := range targets {
		opened, err := mf.Open(ctx, target)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		files = append(files, opened...)
	}

	for _, f := range files {
		if err := dump(ctx, f, op, reporter); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	if reported := reporter.Reported(); len(reported) > 0 {
		for _, e := range reported {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}
}

// dump tokenizes one input and prints a category/offset/length record
// per token. Tokenization failures land in the reporter and stop the
// input, but not the run: remaining inputs still get tokenized so the
// user sees every diagnostic at once.
func dump(ctx context.Context, f source.File, op *opts, reporter exc.Reporter) error {
	body, err := f.Body(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = body.Close(ctx)
	}()

	scanner := stream.New(f.Path(ctx), body,
		stream.WithCapacity(op.BufferSize),
		stream.WithReporter(reporter),
	)
	toks := iter.NewTokens(scanner, op.Batch)
	if op.SkipWhitespace {
		toks = iter.NewIteratorFilter(toks, iter.FilterFunc[lex.Token](func(ctx context.Context, t lex.Token) bool {
			return t.Category != lex.CategoryWhitespace
		}))
	}
	defer func() {
		_ = toks.Close(ctx)
	}()

	for t := toks.Next(ctx); t.IsPresent(); t = toks.Next(ctx) {
		tok := t.Value()
		fmt.Printf("%s %d %d\n", tok.Category, tok.Offset, tok.Length)
	}
	return nil
}
