// Copyright ©2026 The redex Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command redex parses and reduces lambda calculus terms.
package main

import (
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/redex/redex/reduce"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp(os.Stdin, os.Stdout).Run(args)
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	var log *zap.SugaredLogger

	app := &cli.App{
		Name:    "redex",
		Usage:   "lambda calculus reduction tool",
		Version: versioninfo.Short(),
		Reader:  stdin,
		Writer:  stdout,
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug traces every substitution)",
			Value:   "warn",
			EnvVars: []string{"REDEX_LOG_LEVEL"},
		},
		&cli.IntFlag{
			Name:    "max-steps",
			Usage:   "maximum beta steps per term, 0 for no limit",
			Value:   reduce.DefaultMaxSteps,
			EnvVars: []string{"REDEX_MAX_STEPS"},
		},
	}
	app.Before = func(cctx *cli.Context) error {
		var err error
		log, err = newLogger(cctx.String("log-level"))
		if err != nil {
			return err
		}
		log = log.With("source", "redex")
		return nil
	}
	app.After = func(cctx *cli.Context) error {
		if log != nil {
			_ = log.Sync()
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:      "reduce",
			Usage:     "reduce terms to weak head normal form",
			ArgsUsage: "[term ...]",
			Action: func(cctx *cli.Context) error {
				r := reduce.New(
					reduce.WithLogger(log),
					reduce.WithMaxSteps(cctx.Int("max-steps")),
				)
				return eachTerm(cctx, func(e reduce.Expr) error {
					res, err := r.Reduce(e)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cctx.App.Writer, res)
					return err
				})
			},
		},
		{
			Name:      "parse",
			Usage:     "print terms in normalized syntax",
			ArgsUsage: "[term ...]",
			Action: func(cctx *cli.Context) error {
				return eachTerm(cctx, func(e reduce.Expr) error {
					_, err := fmt.Fprintln(cctx.App.Writer, e)
					return err
				})
			},
		},
	}
	return app
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log-level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	rawlog, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return rawlog.Sugar(), nil
}
