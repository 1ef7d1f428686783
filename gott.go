//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/timburks/gottlint/commander"
	"github.com/timburks/gottlint/config"
	"github.com/timburks/gottlint/editor"
	"github.com/timburks/gottlint/events"
	"github.com/timburks/gottlint/jslint"
	"github.com/timburks/gottlint/lint"
	"github.com/timburks/gottlint/logging"
	"github.com/timburks/gottlint/prefs"
	"github.com/timburks/gottlint/screen"
)

type flags struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	LogFile    string
	Eval       string
}

func main() {
	var (
		f         = &flags{}
		cfg       *config.Config
		logCloser func()
	)

	app := &cli.Command{
		Name:      "gott",
		Usage:     "a small vi-style text editor that checks JavaScript as you work",
		UsageText: "gott [options] [FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("GOTT_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &f.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "directory for preferences and logs",
				Sources:     cli.EnvVars("GOTT_DATA_DIR"),
				Value:       config.DefaultDataDir(),
				Destination: &f.DataDir,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error); overrides the config file",
				Sources:     cli.EnvVars("GOTT_LOG_LEVEL"),
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/gott.log)",
				Sources:     cli.EnvVars("GOTT_LOG_FILE"),
				Destination: &f.LogFile,
			},
			&cli.StringFlag{
				Name:        "eval",
				Usage:       "evaluate a lisp expression against the files and exit",
				Destination: &f.Eval,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			cfg, err = config.Load(f.ConfigPath, f.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			level := f.LogLevel
			if level == "" {
				level = cfg.LogLevel
			}
			logFile := f.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}
			logger, closer, err := logging.New(level, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(cfg, c.Args().Slice(), f.Eval)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newChecker(cfg config.JSLintConfig) (lint.Checker, error) {
	if cfg.Script == "" {
		return lint.NewParserChecker(), nil
	}
	return lint.LoadScriptChecker(cfg.Script, cfg.Function, cfg.Timeout)
}

func run(cfg *config.Config, filenames []string, script string) error {
	logger := logging.Component("main")

	bus := events.New()
	events.RegisterDebugLogger(bus, logging.Component("events"))

	store, err := prefs.Open(cfg.PreferencesFile)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	checker, err := newChecker(cfg.JSLint)
	if err != nil {
		return fmt.Errorf("load checker: %w", err)
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor(bus)

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e)

	for _, filename := range filenames {
		if err := e.ReadFile(filename); err != nil {
			logger.Error().Err(err).Str("file", filename).Msg("read failed")
			c.SetMessage(err.Error())
		}
	}

	lintController, err := jslint.New(jslint.Options{
		Docs:       e,
		Editor:     e,
		Commands:   c,
		Bus:        bus,
		Prefs:      store,
		Checker:    checker,
		Extensions: cfg.JSLint.Extensions,
		Report:     func(err error) { c.SetMessage(err.Error()) },
	})
	if err != nil {
		return err
	}

	if script != "" {
		// Run a lisp expression and exit.
		fmt.Println(c.ParseEval(script))
		return nil
	}

	// Create a screen to manage display.
	s, err := screen.NewScreen(e, c, lintController.Panel())
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info().Strs("files", filenames).Msg("editor started")

	// Run the main event loop.
	for c.IsRunning() {
		lintController.Frame()
		s.Render()
		if err := c.ProcessEvent(s.GetNextEvent()); err != nil {
			logger.Error().Err(err).Msg("event failed")
		}
	}
	return nil
}
