package launcher

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PauseGate holds the console open until a key is pressed.
type PauseGate struct {
	Enabled bool
	In      io.Reader
	Out     io.Writer
}

func (p PauseGate) Wait() {
	if !p.Enabled || p.In == nil {
		return
	}
	if p.Out != nil {
		fmt.Fprint(p.Out, "Press any key to continue . . . ")
	}

	restore := rawMode(p.In)
	var b [1]byte
	_, _ = p.In.Read(b[:])
	restore()

	if p.Out != nil {
		fmt.Fprintln(p.Out)
	}
}

// rawMode switches a terminal input to raw mode so a single key press is
// delivered without Enter. Non-terminal input is left untouched.
func rawMode(in io.Reader) (restore func()) {
	noop := func() {}

	f, ok := in.(*os.File)
	if !ok {
		return noop
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return noop
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return noop
	}
	return func() { _ = term.Restore(fd, state) }
}
