package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/ritzau/lockgraph/pkg/check"
	"github.com/ritzau/lockgraph/pkg/config"
	"github.com/ritzau/lockgraph/pkg/cycles"
	"github.com/ritzau/lockgraph/pkg/inventory"
	"github.com/ritzau/lockgraph/pkg/lock"
	"github.com/ritzau/lockgraph/pkg/logging"
	"github.com/ritzau/lockgraph/pkg/manifest"
	"github.com/ritzau/lockgraph/pkg/model"
	"github.com/ritzau/lockgraph/pkg/output"
	"github.com/ritzau/lockgraph/pkg/tree"
	"github.com/ritzau/lockgraph/pkg/watcher"
	"github.com/ritzau/lockgraph/pkg/web"
	"github.com/spf13/pflag"
)

// command is one CLI operation. Operations are looked up in an explicit
// registry rather than dispatched dynamically.
type command struct {
	usage string
	run   func(cfg *config.Config) int
}

var commands = map[string]command{
	"tree":   {"print the locked dependency tree", cmdTree},
	"list":   {"print a flat listing of locked distributions", cmdList},
	"check":  {"reconcile declared dependencies against lock and installed modules", cmdCheck},
	"cycles": {"report circular requires chains in the lock", cmdCycles},
}

func main() {
	flags := pflag.NewFlagSet("lockgraph", pflag.ExitOnError)
	flags.String("lockfile", "modules.lock", "Path to the lock file")
	flags.String("manifest", "Depsfile", "Path to the dependency manifest")
	flags.String("libdir", "local/lib", "Installation directory to scan for installed modules")
	flags.String("indent", "  ", "Indent unit for tree output")
	flags.Bool("nocolor", false, "Disable colorized output")
	flags.Bool("web", false, "Serve the JSON API instead of printing to console")
	flags.Int("port", 8080, "Port for the web API (only used with --web)")
	flags.Bool("watch", false, "Re-check when the lock or manifest change (only used with --web)")
	flags.CountP("verbose", "v", "Increase log verbosity (repeatable)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lockgraph [flags] <command>\n\nCommands:\n")
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", name, commands[name].usage)
		}
		fmt.Fprintf(os.Stderr, "\nFlags:\n%s", flags.FlagUsages())
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logging.SetLevel(logging.LevelFromVerbosity(cfg.VerboseCnt))
	if cfg.NoColor {
		color.NoColor = true
	}

	if cfg.WebMode {
		os.Exit(runWeb(cfg))
	}

	name := "tree"
	if args := flags.Args(); len(args) > 0 {
		name = args[0]
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", name)
		flags.Usage()
		os.Exit(2)
	}

	os.Exit(cmd.run(cfg))
}

// loadGraph loads the lock file, degrading to an empty graph when no lock
// exists yet. Malformed lock data is fatal and surfaced verbatim.
func loadGraph(cfg *config.Config) (*model.LockGraph, bool) {
	graph, err := lock.Load(cfg.LockFile)
	if err == nil {
		return graph, true
	}
	if errors.Is(err, lock.ErrNotFound) {
		logging.Warn("no lock file yet; treating lock as empty", "path", cfg.LockFile)
		return model.NewLockGraph(), true
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return nil, false
}

func cmdTree(cfg *config.Config) int {
	graph, ok := loadGraph(cfg)
	if !ok {
		return 1
	}
	output.PrintTree(tree.Build(graph, nil), cfg.Indent)
	return 0
}

func cmdList(cfg *config.Config) int {
	graph, ok := loadGraph(cfg)
	if !ok {
		return 1
	}
	output.PrintList(graph)
	return 0
}

func cmdCheck(cfg *config.Config) int {
	graph, ok := loadGraph(cfg)
	if !ok {
		return 1
	}

	declared, installed, err := loadCollaborators(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	result := check.Check(graph, declared, installed)
	output.PrintCheckReport(result, cfg.Indent)
	if !result.OK() {
		return 1
	}
	return 0
}

func cmdCycles(cfg *config.Config) int {
	graph, ok := loadGraph(cfg)
	if !ok {
		return 1
	}

	found := cycles.FindModuleCycles(graph)
	output.PrintCycles(found)
	if len(found) > 0 {
		return 1
	}
	return 0
}

// loadCollaborators reads the declared dependencies and the installed set.
func loadCollaborators(cfg *config.Config) ([]model.Requirement, map[string]bool, error) {
	declared, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return nil, nil, err
	}
	installed, err := inventory.Scan(cfg.LibDir)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", cfg.LibDir, err)
	}
	return declared, installed, nil
}

func runWeb(cfg *config.Config) int {
	server := web.NewServer()

	reload := func() {
		graph, err := lock.Load(cfg.LockFile)
		if err != nil {
			if errors.Is(err, lock.ErrNotFound) {
				graph = model.NewLockGraph()
			} else {
				logging.Error("reloading lock", "error", err)
				server.PublishLockError(err)
				return
			}
		}
		declared, installed, err := loadCollaborators(cfg)
		if err != nil {
			logging.Error("reloading collaborators", "error", err)
			return
		}
		server.SetState(graph, declared, installed)
	}
	reload()

	if cfg.Watch {
		ctx := context.Background()

		fw, err := watcher.NewFileWatcher(cfg.LockFile, cfg.Manifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := fw.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		debouncer := watcher.NewDebouncer(fw.Events(), 200*time.Millisecond, 2*time.Second)
		debouncer.Start(ctx)

		go func() {
			for range debouncer.Output() {
				logging.Info("inputs changed, reconciling")
				reload()
			}
		}()
	}

	fmt.Printf("Serving lock reconciliation API on http://localhost:%d\n", cfg.Port)
	if err := server.Start(cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
