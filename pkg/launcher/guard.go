package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Probe reports whether a dependency is available.
type Probe interface {
	Available(ctx context.Context) bool
}

// Installer installs a dependency by package name.
type Installer interface {
	Install(ctx context.Context, pkg string) error
}

// ExecutableProbe checks that an executable can be located.
type ExecutableProbe struct {
	Name string
	Dirs []string
}

func (p ExecutableProbe) Available(context.Context) bool {
	_, err := Locate(p.Name, p.Dirs)
	return err == nil
}

// CommandProbe runs a command and treats exit status 0 as available,
// e.g. `python -c "import requests"`.
type CommandProbe struct {
	Argv   []string
	Runner Runner
}

func (p CommandProbe) Available(ctx context.Context) bool {
	if len(p.Argv) == 0 {
		return false
	}
	code, err := p.Runner.Run(ctx, Command{
		Path:   p.Argv[0],
		Args:   p.Argv[1:],
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	return err == nil && code == 0
}

// CommandInstaller runs Argv followed by the package name, with the
// installer's output going to the console.
type CommandInstaller struct {
	Argv   []string
	Runner Runner
	Stdout io.Writer
	Stderr io.Writer
}

var ErrInstallFailed = errors.New("install failed")

func (i CommandInstaller) Install(ctx context.Context, pkg string) error {
	if len(i.Argv) == 0 {
		return fmt.Errorf("%w: no installer command", ErrInstallFailed)
	}

	stdout, stderr := i.Stdout, i.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	args := append(append([]string{}, i.Argv[1:]...), pkg)
	code, err := i.Runner.Run(ctx, Command{
		Path:   i.Argv[0],
		Args:   args,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}
	if code != 0 {
		return fmt.Errorf("%w: %s exited with status %d", ErrInstallFailed, i.Argv[0], code)
	}
	return nil
}

type Result struct {
	Present   bool
	Installed bool
	Err       error
}

// Guard makes sure a dependency is present before the fetcher runs.
type Guard struct {
	probe     Probe
	installer Installer
	pkg       string
	logger    *zap.Logger
}

func NewGuard(probe Probe, installer Installer, pkg string, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{probe: probe, installer: installer, pkg: pkg, logger: logger}
}

// Ensure installs the package when the probe fails. Install failures are
// returned in the result and never retried.
func (g *Guard) Ensure(ctx context.Context) Result {
	if g.probe.Available(ctx) {
		g.logger.Debug("dependency present", zap.String("package", g.pkg))
		return Result{Present: true}
	}

	g.logger.Info("dependency missing, installing", zap.String("package", g.pkg))
	if err := g.installer.Install(ctx, g.pkg); err != nil {
		g.logger.Error("dependency install failed", zap.String("package", g.pkg), zap.Error(err))
		return Result{Err: err}
	}

	g.logger.Info("dependency installed", zap.String("package", g.pkg))
	return Result{Installed: true}
}
