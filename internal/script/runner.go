package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
	"github.com/ironsheep/pixel-engine-mcp/internal/workspace"
)

// maxRunDepth bounds nested "run" commands so a script cannot include itself forever.
const maxRunDepth = 8

// Runner executes commands against a workspace. The store may be shared, but a
// Runner itself must not be used from several goroutines at once.
type Runner struct {
	store   *workspace.Store
	out     io.Writer
	quality int
	depth   int
	ctx     context.Context
	logf    func(format string, args ...any)
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sends progress messages to w. By default they are discarded.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithJPEGQuality sets the quality used by "save" for JPEG files.
func WithJPEGQuality(q int) Option {
	return func(r *Runner) { r.quality = q }
}

// WithLogger traces every executed line through logf.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(r *Runner) { r.logf = logf }
}

// NewRunner creates a runner that reads and writes images in store.
func NewRunner(store *workspace.Store, opts ...Option) *Runner {
	r := &Runner{store: store, out: io.Discard, logf: func(string, ...any) {}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the workspace the runner operates on.
func (r *Runner) Store() *workspace.Store { return r.store }

// Execute runs a single command line. Blank lines and comments are accepted and
// do nothing.
func (r *Runner) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	name, args := fields[0], fields[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	if err := cmd.run(r, args); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%w (usage: %s)", err, cmd.usage)
		}
		return err
	}
	return nil
}

// Run executes every line of in, stopping at the first error or when ctx is
// cancelled. A line reading "exit" or "quit" ends the script early. Errors are
// returned as *LineError.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	prev := r.ctx
	r.ctx = ctx
	defer func() { r.ctx = prev }()

	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(sc.Text())
		if line == "exit" || line == "quit" {
			r.logf("script: %s at line %d", line, lineNo)
			return nil
		}
		if line != "" && !strings.HasPrefix(line, "#") {
			r.logf("script: line %d: %s", lineNo, line)
		}
		if err := r.Execute(line); err != nil {
			cmd := line
			if f := strings.Fields(line); len(f) > 0 {
				cmd = f[0]
			}
			return &LineError{Line: lineNo, Command: cmd, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return r.Run(ctx, f)
}

func (r *Runner) runFile(path string) error {
	if r.depth >= maxRunDepth {
		return fmt.Errorf("scripts nested deeper than %d: %w", maxRunDepth, ErrUsage)
	}
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	r.depth++
	defer func() { r.depth-- }()
	return r.RunFile(ctx, path)
}

// apply runs op on the grid named src and stores the result as dest. With
// split >= 0 the result is a split view of processed (left) and source (right).
func (r *Runner) apply(src, dest string, split int, op func(*imaging.Grid) (*imaging.Grid, error)) error {
	g, err := r.store.Get(src)
	if err != nil {
		return err
	}
	out, err := op(g)
	if err != nil {
		return err
	}
	if split >= 0 {
		if out, err = imaging.ApplySplitView(g, out, split, imaging.ProcessedLeft); err != nil {
			return err
		}
	}
	return r.put(dest, out)
}

func (r *Runner) adjustBrightness(args []string, op func(*imaging.Grid, int) (*imaging.Grid, error)) error {
	if len(args) != 3 {
		return ErrUsage
	}
	delta, err := parseInts(args[:1])
	if err != nil {
		return err
	}
	return r.apply(args[1], args[2], -1, func(g *imaging.Grid) (*imaging.Grid, error) {
		return op(g, delta[0])
	})
}

func (r *Runner) put(name string, g *imaging.Grid) error {
	if _, err := r.store.Put(name, g); err != nil {
		return err
	}
	r.printf("created %s (%dx%d)", name, g.Width(), g.Height())
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
