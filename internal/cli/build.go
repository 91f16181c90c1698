package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dashforge/dashforge/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	out          string // output file path (stdout when empty)
	defaultsFile string // TOML defaults layer
	uid          string // document uid override
	pretty       bool   // indent the output JSON
	noCache      bool   // disable the build cache
	refresh      bool   // bypass cache reads, still store the result
	watch        bool   // rebuild on input changes
}

// buildCommand creates the build command for compiling tree files.
func (c *CLI) buildCommand() *cobra.Command {
	var o buildOpts

	cmd := &cobra.Command{
		Use:   "build <tree.json>",
		Short: "Compile a tree file into a dashboard document",
		Long: `Build compiles a declarative tree file into a complete dashboard
document: panels are placed on the grid, defaults are resolved and the
result is written as dashboard JSON.

With --watch, build keeps running and recompiles whenever the tree file
(or the defaults file) changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(o.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Input:        args[0],
				DefaultsFile: o.defaultsFile,
				UID:          o.uid,
				Pretty:       o.pretty,
				Refresh:      o.refresh,
				Logger:       c.Logger,
			}

			if err := c.runBuild(cmd, runner, opts, o); err != nil {
				return err
			}
			if o.watch {
				return c.watchBuild(cmd, runner, opts, o)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&o.defaultsFile, "defaults", "", "TOML file with an external defaults layer")
	cmd.Flags().StringVar(&o.uid, "uid", "", "override the document uid")
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "indent the output JSON")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the build cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompile even when cached")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "rebuild on input changes")

	return cmd
}

// runBuild executes one pipeline pass and writes the result.
func (c *CLI) runBuild(cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options, o buildOpts) error {
	p := newProgress(c.Logger)

	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if result.CacheInfo.DocumentHit {
		p.done("Loaded cached document")
	} else {
		p.done(fmt.Sprintf("Compiled %d panels", result.Stats.PanelCount))
	}

	if o.out == "" {
		out := cmd.OutOrStdout()
		if _, err := out.Write(result.Encoded); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out)
		return err
	}

	if err := os.WriteFile(o.out, result.Encoded, 0644); err != nil {
		return err
	}
	printSuccess("Built dashboard")
	printFile(o.out)
	printStats(result.Stats.PanelCount, result.Stats.Bytes, result.CacheInfo.DocumentHit)
	return nil
}

// watchBuild rebuilds whenever the tree file or the defaults file changes.
// Editors often replace files on save, so renames and creates in the
// watched directories count as changes too.
func (c *CLI) watchBuild(cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options, o buildOpts) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := map[string]bool{opts.Input: true}
	dirs := map[string]bool{filepath.Dir(opts.Input): true}
	if o.defaultsFile != "" {
		watched[o.defaultsFile] = true
		dirs[filepath.Dir(o.defaultsFile)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	c.Logger.Info("watching for changes", "input", opts.Input)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.Logger.Debug("change detected", "file", event.Name, "op", event.Op)
			rebuild := opts
			rebuild.Refresh = true
			if err := c.runBuild(cmd, runner, rebuild, o); err != nil {
				printError("%s", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		}
	}
}
