package launcher

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
)

type LauncherConfig struct {
	Program string
	Args    []string
	// Dirs are searched when Program is not on PATH.
	Dirs   []string
	Runner Runner
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Launcher runs the fetcher as a child process attached to the console.
type Launcher struct {
	config LauncherConfig
	logger *zap.Logger
}

func NewLauncher(config LauncherConfig) *Launcher {
	if config.Runner == nil {
		config.Runner = ExecRunner{}
	}
	if config.Stdin == nil {
		config.Stdin = os.Stdin
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Launcher{config: config, logger: config.Logger}
}

// Launch returns the child's exit code without interpreting it.
func (l *Launcher) Launch(ctx context.Context) (int, error) {
	path := l.config.Program
	if resolved, err := Locate(path, l.config.Dirs); err == nil {
		path = resolved
	}

	l.logger.Debug("launching", zap.String("program", path), zap.Strings("args", l.config.Args))

	code, err := l.config.Runner.Run(ctx, Command{
		Path:   path,
		Args:   l.config.Args,
		Stdin:  l.config.Stdin,
		Stdout: l.config.Stdout,
		Stderr: l.config.Stderr,
	})
	if err != nil {
		l.logger.Error("failed to launch", zap.String("program", path), zap.Error(err))
		return code, err
	}

	l.logger.Debug("program exited", zap.String("program", path), zap.Int("exit_code", code))
	return code, nil
}
