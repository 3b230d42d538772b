// routegen resolves route function declarations into dispatch tables.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bjaus/routing"
	"github.com/bjaus/routing/manifest"
)

var version = "dev"

// errFailed is returned when the pass reported errors. The diagnostics are
// already on stderr, so main only sets the exit code.
var errFailed = errors.New("routing failed")

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("routegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		format      string
		idAccessor  string
		outPath     string
		noWarn      bool
		verbose     bool
		showVersion bool
	)

	fs.StringVar(&format, "format", envOr("ROUTEGEN_FORMAT", "json"), "output format: json or text")
	fs.StringVar(&idAccessor, "id-accessor", envOr("ROUTEGEN_ID_ACCESSOR", ""), "override the identifier accessor name")
	fs.StringVar(&outPath, "o", "", "write tables to this file instead of stdout")
	fs.BoolVar(&noWarn, "no-warn", false, "suppress ambiguous order warnings")
	fs.BoolVar(&verbose, "v", false, "log pass details to stderr")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "routegen %s\n", version)
		return nil
	}

	if format != "json" && format != "text" {
		return fmt.Errorf("unsupported format %q", format)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: routegen [flags] MANIFEST")
	}

	m, err := manifest.LoadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	cfg := m.Config
	if idAccessor != "" {
		cfg.IDAccessor = idAccessor
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	r, err := routing.New(cfg,
		routing.WithLogger(logger),
		routing.WithAmbiguityWarnings(!noWarn),
		routing.WithOnDiagnostic(func(d routing.Diagnostic) {
			_, _ = fmt.Fprintln(stderr, d)
		}),
	)
	if err != nil {
		return fmt.Errorf("configuring resolver: %w", err)
	}

	res := r.Resolve(m.Candidates)

	write := writeJSON
	if format == "text" {
		write = writeText
	}
	if outPath == "" {
		err = write(stdout, res.Tables)
	} else {
		var file *os.File
		if file, err = os.Create(outPath); err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		err = writeAndClose(file, func(w io.Writer) error { return write(w, res.Tables) })
	}
	if err != nil {
		return fmt.Errorf("writing tables: %w", err)
	}

	if n := len(res.Errors()); n > 0 {
		_, _ = fmt.Fprintf(stderr, "%d %s found in route functions\n", n, pluralize("error", n))
		return errFailed
	}
	return nil
}

// writeAndClose writes to w and closes it, reporting the first error.
func writeAndClose(w io.WriteCloser, write func(io.Writer) error) error {
	err := write(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

type tableJSON struct {
	Owner    string      `json:"owner"`
	ID       string      `json:"id"`
	Category string      `json:"category"`
	Entries  []entryJSON `json:"entries"`
}

type entryJSON struct {
	Message  string `json:"message"`
	Function string `json:"function"`
	Context  string `json:"context,omitempty"`
	Shape    string `json:"shape"`
	Location string `json:"location"`
}

func toJSON(tables []*routing.Table) []tableJSON {
	out := make([]tableJSON, 0, len(tables))
	for _, t := range tables {
		tj := tableJSON{
			Owner:    t.Owner.Name(),
			ID:       routing.TypeName(t.Owner.ID),
			Category: t.Category.String(),
		}
		for _, e := range t.Entries {
			ej := entryJSON{
				Message:  routing.TypeName(e.Message),
				Function: e.Route.Name,
				Shape:    e.Route.Shape.String(),
				Location: e.Route.Location.String(),
			}
			if e.Route.AcceptsContext() {
				ej.Context = routing.TypeName(e.Route.Context)
			}
			tj.Entries = append(tj.Entries, ej)
		}
		out = append(out, tj)
	}
	return out
}

func writeJSON(w io.Writer, tables []*routing.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(tables))
}

func writeText(w io.Writer, tables []*routing.Table) error {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%s) [%s]\n", t.Owner.Name(), routing.TypeName(t.Owner.ID), t.Category)
		for j, e := range t.Entries {
			fmt.Fprintf(&b, "  %d. %s -> %s %s\n", j+1, routing.TypeName(e.Message), e.Route.Signature(false), e.Route.Shape)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
