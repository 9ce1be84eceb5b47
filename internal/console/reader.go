package console

import (
	"bufio"
	"context"
	"io"

	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/logging"
)

// Executor runs a console command
type Executor func(ctx context.Context, cmd command.Command) effectors.Result

// Reader feeds lines typed by the operator to the console command catalogue.
// Lines are handled one at a time in the order they were typed.
type Reader struct {
	in      io.Reader
	display *Display
	exec    Executor
}

// NewReader creates a console reader
func NewReader(in io.Reader, display *Display, exec Executor) *Reader {
	return &Reader{in: in, display: display, exec: exec}
}

// Run reads until input ends or ctx is done
func (r *Reader) Run(ctx context.Context) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-lines:
			r.handle(ctx, line)
		case err := <-errc:
			if err != nil {
				logging.Warn("console", "Input closed: %v", err)
			} else {
				logging.Debug("console", "Input closed")
			}
			return nil
		}
	}
}

func (r *Reader) handle(ctx context.Context, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn("console", "Command panicked: %v", rec)
		}
	}()

	cmd, ok := command.Parse(line, "")
	if !ok {
		return
	}
	res := r.exec(ctx, cmd)
	if res.Failed() {
		logging.Debug("console", "Command %q failed (%s): %v", cmd.Name, res.Kind(), res.Err)
	}
	r.display.Result(res)
}
