package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kcaldas/axterm/pkg/input"
	"github.com/kcaldas/axterm/pkg/terminal"
)

// runPlain feeds one command per input line to the controller and prints each
// prompt followed by its output. It returns when input ends, the exit
// built-in runs or ctx is cancelled. Reaching the end of input does not
// persist history; only exit does.
func runPlain(ctx context.Context, controller *terminal.Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := scanner.Text()
		label := terminal.CwdLabel(controller.Cwd())
		before := len(controller.Sessions())

		err := controller.Update(ctx, input.Frame{Events: input.Line(line)})
		if errors.Is(err, terminal.ErrExit) {
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s> %s\n", label, line)

		sessions := controller.Sessions()
		if len(sessions) <= before {
			// clear
			continue
		}
		output, _ := sessions[len(sessions)-2].Output()
		if output == "" {
			continue
		}
		fmt.Fprint(out, output)
		if !strings.HasSuffix(output, "\n") {
			fmt.Fprintln(out)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
