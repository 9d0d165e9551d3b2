// Package launcher checks for the fetcher's dependency, installs it when
// missing, runs the fetcher and optionally holds the console open afterwards.
package launcher

import (
	"context"

	"go.uber.org/zap"
)

// exitNotRunnable mirrors the shell status for a command that could not be run.
const exitNotRunnable = 127

type App struct {
	Guard    *Guard
	Launcher *Launcher
	Pause    PauseGate
	Logger   *zap.Logger
}

// Run executes guard, launcher and pause gate in order and returns the exit
// code of the last step.
func (a *App) Run(ctx context.Context) int {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	res := a.Guard.Ensure(ctx)
	if res.Err != nil {
		logger.Warn("continuing without dependency", zap.Error(res.Err))
	}

	code, err := a.Launcher.Launch(ctx)
	if err != nil {
		code = exitNotRunnable
	}

	if a.Pause.Enabled {
		a.Pause.Wait()
		return 0
	}
	return code
}
