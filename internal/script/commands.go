package script

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

type command struct {
	usage string
	run   func(r *Runner, args []string) error
}

// unary wraps an engine operation of the form "<op> <src> <dest> [split <pct>]".
func unary(name string, op func(*imaging.Grid) (*imaging.Grid, error), splittable bool) command {
	usage := name + " <src> <dest>"
	if splittable {
		usage += " [split <pct>]"
	}
	return command{
		usage: usage,
		run: func(r *Runner, args []string) error {
			split, err := parseSplit(args, 2, splittable)
			if err != nil {
				return err
			}
			return r.apply(args[0], args[1], split, op)
		},
	}
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"load": {"load <path> <name>", func(r *Runner, args []string) error {
			if len(args) != 2 {
				return ErrUsage
			}
			g, _, err := r.store.Load(args[0], args[1])
			if err != nil {
				return err
			}
			r.printf("loaded %s (%dx%d) from %s", args[1], g.Width(), g.Height(), args[0])
			return nil
		}},
		"save": {"save <path> <name>", func(r *Runner, args []string) error {
			if len(args) != 2 {
				return ErrUsage
			}
			if err := r.store.Save(args[0], args[1], r.quality); err != nil {
				return err
			}
			r.printf("saved %s to %s", args[1], args[0])
			return nil
		}},
		"brighten": {"brighten <delta> <src> <dest>", func(r *Runner, args []string) error {
			return r.adjustBrightness(args, imaging.Brighten)
		}},
		"darken": {"darken <delta> <src> <dest>", func(r *Runner, args []string) error {
			return r.adjustBrightness(args, imaging.Darken)
		}},
		"horizontal-flip": unary("horizontal-flip", imaging.FlipHorizontal, false),
		"vertical-flip":   unary("vertical-flip", imaging.FlipVertical, false),
		"histogram":       unary("histogram", imaging.RenderHistogram, false),
		"color-correct":   unary("color-correct", imaging.ColorCorrect, true),
		"rgb-split": {"rgb-split <src> <red-dest> <green-dest> <blue-dest>", func(r *Runner, args []string) error {
			if len(args) != 4 {
				return ErrUsage
			}
			src, err := r.store.Get(args[0])
			if err != nil {
				return err
			}
			red, green, blue, err := imaging.SplitChannels(src)
			if err != nil {
				return err
			}
			for i, g := range []*imaging.Grid{red, green, blue} {
				if err := r.put(args[i+1], g); err != nil {
					return err
				}
			}
			return nil
		}},
		"rgb-combine": {"rgb-combine <dest> <red-src> <green-src> <blue-src>", func(r *Runner, args []string) error {
			if len(args) != 4 {
				return ErrUsage
			}
			srcs, err := r.store.GetAll(args[1], args[2], args[3])
			if err != nil {
				return err
			}
			g, err := imaging.CombineChannels(srcs[0], srcs[1], srcs[2])
			if err != nil {
				return err
			}
			return r.put(args[0], g)
		}},
		"compress": {"compress <pct> <src> <dest>", func(r *Runner, args []string) error {
			if len(args) != 3 {
				return ErrUsage
			}
			pct, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("percentage %q: %w", args[0], ErrUsage)
			}
			return r.apply(args[1], args[2], -1, func(g *imaging.Grid) (*imaging.Grid, error) {
				return imaging.Compress(g, pct)
			})
		}},
		"levels-adjust": {"levels-adjust <black> <mid> <white> <src> <dest> [split <pct>]", func(r *Runner, args []string) error {
			split, err := parseSplit(args, 5, true)
			if err != nil {
				return err
			}
			pts, err := parseInts(args[:3])
			if err != nil {
				return err
			}
			return r.apply(args[3], args[4], split, func(g *imaging.Grid) (*imaging.Grid, error) {
				return imaging.LevelsAdjust(g, pts[0], pts[1], pts[2])
			})
		}},
		"downscale": {"downscale <width> <height> <src> <dest>", func(r *Runner, args []string) error {
			if len(args) != 4 {
				return ErrUsage
			}
			size, err := parseInts(args[:2])
			if err != nil {
				return err
			}
			return r.apply(args[2], args[3], -1, func(g *imaging.Grid) (*imaging.Grid, error) {
				return imaging.Downscale(g, size[0], size[1])
			})
		}},
		"partial": {"partial <operation> <src> <mask> <dest>", func(r *Runner, args []string) error {
			if len(args) != 4 {
				return ErrUsage
			}
			op, err := imaging.ParseOperation(args[0])
			if err != nil {
				return err
			}
			srcs, err := r.store.GetAll(args[1], args[2])
			if err != nil {
				return err
			}
			g, err := imaging.ApplyWithMask(srcs[0], srcs[1], op)
			if err != nil {
				return err
			}
			return r.put(args[3], g)
		}},
		"run": {"run <script-path>", func(r *Runner, args []string) error {
			if len(args) != 1 {
				return ErrUsage
			}
			return r.runFile(args[0])
		}},
	}

	// The mask-capable operations double as plain commands.
	for _, op := range imaging.Operations() {
		name := op.String()
		if _, ok := commands[name]; ok {
			continue
		}
		splittable := op == imaging.OpBlur || op == imaging.OpSharpen ||
			op == imaging.OpSepia || op == imaging.OpGreyscale
		commands[name] = unary(name, op.Apply, splittable)
	}
}

// Commands returns the usage line of every command, sorted by name.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	usage := make([]string, len(names))
	for i, name := range names {
		usage[i] = commands[name].usage
	}
	return usage
}

// parseSplit accepts exactly n positional arguments, optionally followed by
// "split <pct>" when allowed. It returns -1 when no split was requested.
func parseSplit(args []string, n int, allowed bool) (int, error) {
	switch {
	case len(args) == n:
		return -1, nil
	case allowed && len(args) == n+2 && args[n] == "split":
		pct, err := strconv.Atoi(args[n+1])
		if err != nil {
			return 0, fmt.Errorf("split percentage %q: %w", args[n+1], ErrUsage)
		}
		if pct < 0 || pct > 100 {
			return 0, fmt.Errorf("split percentage %d must be between 0 and 100: %w", pct, ErrUsage)
		}
		return pct, nil
	default:
		return 0, ErrUsage
	}
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer: %w", a, ErrUsage)
		}
		out[i] = v
	}
	return out, nil
}
