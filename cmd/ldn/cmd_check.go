package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/dhamidi/ldn/config"
	"github.com/dhamidi/ldn/ldn"
	"github.com/dhamidi/ldn/watch"
	"github.com/fatih/color"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

type checkResult struct {
	path string
	err  error
}

func newCheckCmd(a *app) *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check that .ldn files parse",
		Long: `Parse every .ldn file below the given paths (default: the current
directory) and report syntax errors as file:line:column: message.

Exits with status 1 if any file fails to parse. With --watch, files are
checked again whenever they change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			r := newReporter(cmd.OutOrStdout(), a.cfg.Color)

			files, err := collectFiles(paths, a.cfg)
			if err != nil {
				return err
			}

			results, err := checkFiles(cmd.Context(), files, a.cfg)
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.err != nil {
					failed++
					r.fail(res.path, res.err)
				}
			}
			log.Infof("checked %d files, %d failed", len(results), failed)

			if watchFiles {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchPaths(ctx, cmd.ErrOrStderr(), paths, a.cfg, r)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watchFiles, "watch", false, "check files again when they change")
	cmd.Flags().IntP("jobs", "j", 0, "number of files parsed in parallel (default from config)")
	cmd.Flags().String("color", "", "color output: auto, always or never (default from config)")
	cmd.Flags().Int("max-depth", 0, "maximum list nesting, 0 for unlimited (default from config)")

	return cmd
}

// collectFiles expands directories into the files below them that have one
// of the configured extensions, honoring a .gitignore at the top of each
// directory. Files named explicitly are always included.
func collectFiles(paths []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat: %w", err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		var ignore *gitignore.GitIgnore
		gitignorePath := filepath.Join(path, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignore, err = gitignore.CompileIgnoreFile(gitignorePath)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", gitignorePath, err)
			}
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p == path {
				return nil
			}
			if ignore != nil {
				rel, err := filepath.Rel(path, p)
				if err != nil {
					return err
				}
				if ignore.MatchesPath(rel) {
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}
			if d.IsDir() {
				if len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.HasExtension(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	return files, nil
}

// checkFiles parses files concurrently. Results are in the order of files.
func checkFiles(ctx context.Context, files []string, cfg *config.Config) ([]checkResult, error) {
	results := make([]checkResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkResult{path: path, err: checkFile(path, cfg)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(path string, cfg *config.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = ldn.NewParser(bufio.NewReader(f), cfg.ParseOptions()...).Parse()
	return err
}

func watchPaths(ctx context.Context, status io.Writer, paths []string, cfg *config.Config, r *reporter) error {
	roots := make(map[string]bool)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat: %w", err)
		}
		if !info.IsDir() {
			path = filepath.Dir(path)
		}
		roots[filepath.Clean(path)] = true
	}

	g, ctx := errgroup.WithContext(ctx)
	for root := range roots {
		w := watch.New(root, cfg.Extensions, func(path string) {
			if err := checkFile(path, cfg); err != nil {
				r.fail(path, err)
				return
			}
			r.ok(path)
		}).OnRemove(r.removed)

		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	fmt.Fprintf(status, "watching %d directories, press Ctrl-C to stop\n", len(roots))
	return g.Wait()
}

// reporter prints check results. It is safe for concurrent use.
type reporter struct {
	mu       sync.Mutex
	out      io.Writer
	path     *color.Color
	errLabel *color.Color
	okLabel  *color.Color
}

func newReporter(out io.Writer, mode string) *reporter {
	r := &reporter{
		out:      out,
		path:     color.New(color.Bold),
		errLabel: color.New(color.FgRed, color.Bold),
		okLabel:  color.New(color.FgGreen),
	}

	if useColor(out, mode) {
		r.path.EnableColor()
		r.errLabel.EnableColor()
		r.okLabel.EnableColor()
	} else {
		r.path.DisableColor()
		r.errLabel.DisableColor()
		r.okLabel.DisableColor()
	}

	return r
}

func useColor(out io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
}

// fail prints path:line:column: error: message.
func (r *reporter) fail(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var perr *ldn.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		fmt.Fprintf(r.out, "%s:%d:%d: %s %s\n",
			r.path.Sprint(path), pos.Line+1, pos.Column+1, r.errLabel.Sprint("error:"), perr.Message())
		return
	}
	fmt.Fprintf(r.out, "%s: %s %s\n", r.path.Sprint(path), r.errLabel.Sprint("error:"), err)
}

func (r *reporter) ok(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s: %s\n", r.path.Sprint(path), r.okLabel.Sprint("ok"))
}

func (r *reporter) removed(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s: removed\n", r.path.Sprint(path))
}
