package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	cfgPkg "github.com/xhad/nobel/pkg/config"
	"github.com/xhad/nobel/pkg/launcher"
	"github.com/xhad/nobel/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	code, err := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		os.Exit(1)
	}
	os.Exit(code)
}

type stdio struct {
	in       io.Reader
	out, err io.Writer
}

func execute(args []string, in io.Reader, out, errOut io.Writer) (int, error) {
	var code int
	cmd := newRootCmd(stdio{in: in, out: out, err: errOut}, &code)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if err := cmd.Execute(); err != nil {
		return 1, err
	}
	return code, nil
}

func newRootCmd(std stdio, code *int) *cobra.Command {
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:          "nobel-launcher",
		Short:        "Install nobel-fetcher if needed, then run it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := cfgPkg.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				config.Log.Level = logLevel
			}
			if errs := config.Validate(); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(std.err, color.RedString("config: %v", e))
				}
				return fmt.Errorf("invalid configuration")
			}

			log, err := logger.New(logger.Config{
				Level:       config.Log.Level,
				Development: config.Log.Development,
			})
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			*code = newApp(config, std, log).Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

func newApp(config *cfgPkg.Config, std stdio, log *zap.Logger) *launcher.App {
	runner := launcher.ExecRunner{}
	dirs := launcher.GoBinDirs()

	var probe launcher.Probe = launcher.ExecutableProbe{Name: config.Launcher.Program, Dirs: dirs}
	if len(config.Launcher.Probe) > 0 {
		probe = launcher.CommandProbe{Argv: config.Launcher.Probe, Runner: runner}
	}

	installer := launcher.CommandInstaller{
		Argv:   config.Launcher.Install,
		Runner: runner,
		Stdout: std.out,
		Stderr: std.err,
	}

	return &launcher.App{
		Guard: launcher.NewGuard(probe, installer, config.Launcher.Package, log),
		Launcher: launcher.NewLauncher(launcher.LauncherConfig{
			Program: config.Launcher.Program,
			Args:    config.Launcher.Args,
			Dirs:    dirs,
			Runner:  runner,
			Stdin:   std.in,
			Stdout:  std.out,
			Stderr:  std.err,
			Logger:  log,
		}),
		Pause: launcher.PauseGate{
			Enabled: config.PauseEnabled(),
			In:      std.in,
			Out:     std.out,
		},
		Logger: log,
	}
}
