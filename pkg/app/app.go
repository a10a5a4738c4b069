// Package app wires the command line, script compilation and the scene
// host into the runnable ferris application.
package app

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/cli"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/engine"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/fileutil"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/logger"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/vm"
)

// embeddedScriptsDir is where the bundled examples live inside the
// binary's embed.FS.
const embeddedScriptsDir = "examples"

// Script pairs a script name with its compiled form.
type Script struct {
	Name   string
	Output *compiler.Output
}

// Application is the ferris program: it loads scripts, compiles them, and
// runs the scene either in a window or headless.
type Application struct {
	config  *cli.Config
	log     *slog.Logger
	embedFS embed.FS
}

// New creates an Application. embedFS carries the bundled example
// scripts used when no script path is given.
func New(embedFS embed.FS) *Application {
	return &Application{embedFS: embedFS}
}

// Run executes the application with the given command line arguments.
func (app *Application) Run(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.config = config

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()

	sources, err := app.loadSources()
	if err != nil {
		return fmt.Errorf("failed to load scripts: %w", err)
	}
	app.log.Info("scripts loaded", "count", len(sources))

	scripts, failed := compileAll(sources)
	if failed {
		return fmt.Errorf("compilation failed")
	}
	if app.config.Check {
		app.log.Info("all scripts compiled cleanly", "count", len(scripts))
		return nil
	}

	scene := engine.NewScene(
		engine.WithLogger(app.log),
		engine.WithScriptOutput(os.Stdout),
		engine.WithSignalHandler(func(node *engine.Node, signal string, args []vm.Value) {
			app.log.Info("signal", "node", node.Name(), "signal", signal, "args", len(args))
		}),
	)
	for _, s := range scripts {
		if _, err := scene.Attach(s.Name, s.Output); err != nil {
			return fmt.Errorf("attaching %q: %w", s.Name, err)
		}
	}

	if app.config.Headless {
		return app.runHeadless(scene)
	}
	return app.runWindowed(scene)
}

// source is one loaded script file.
type source struct {
	name string
	text string
}

// loadSources reads the scripts named by the config: a single .ferris
// file, every .ferris file in a directory, or the embedded examples when
// no path was given.
func (app *Application) loadSources() ([]source, error) {
	path := app.config.ScriptPath

	if path == "" {
		fsys := fileutil.NewEmbedFS(app.embedFS, embeddedScriptsDir)
		return readScriptsDir(fsys, ".")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return readScriptsDir(fileutil.NewRealFS(path), ".")
	}

	fsys := fileutil.NewRealFS(filepath.Dir(path))
	text, err := fileutil.ReadSource(fsys, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return []source{{name: scriptName(path), text: text}}, nil
}

func readScriptsDir(fsys fileutil.FileSystem, dir string) ([]source, error) {
	names, err := fileutil.ListByExt(fsys, dir, ".ferris")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .ferris scripts found")
	}

	sources := make([]source, 0, len(names))
	for _, name := range names {
		text, err := fileutil.ReadSource(fsys, name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{name: scriptName(name), text: text})
	}
	return sources, nil
}

func scriptName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// compileAll compiles every source, printing rendered diagnostics for
// each failing script. All scripts are compiled even after the first
// failure so one run reports every problem.
func compileAll(sources []source) ([]Script, bool) {
	var scripts []Script
	failed := false

	for _, src := range sources {
		out, diags := compiler.Compile(src.text)
		if len(diags) > 0 {
			fmt.Fprintf(os.Stderr, "%s:\n%s\n", src.name, compiler.FormatDiagnostics(src.text, diags))
		}
		if out == nil {
			failed = true
			continue
		}
		scripts = append(scripts, Script{Name: src.name, Output: out})
	}

	return scripts, failed
}

// runHeadless drives the scene at a fixed 60 Hz without a window until
// the timeout (or forever when none is set).
func (app *Application) runHeadless(scene *engine.Scene) error {
	ctx := context.Background()
	if app.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.Timeout)
		defer cancel()
	}

	app.log.Info("running headless", "nodes", scene.Len(), "timeout", app.config.Timeout)

	const delta = float32(1.0 / 60.0)
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			app.log.Info("headless run finished")
			return nil
		case <-ticker.C:
			if err := scene.Update(delta); err != nil {
				return err
			}
			if err := scene.PhysicsUpdate(delta); err != nil {
				return err
			}
		}
	}
}
