package cmd

import (
	"context"
	"errors"
	"fmt"

	oerrors "github.com/wpmake/cli/internal/errors"
	"github.com/wpmake/cli/internal/output"
)

// exitWithCode reports err and wraps it in an ExitError carrying the exit
// code derived from it.
func exitWithCode(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if errors.Is(err, context.Canceled) && !errors.Is(err, oerrors.ErrAborted) {
		err = fmt.Errorf("%w: %w", oerrors.ErrAborted, err)
	}

	var detail *oerrors.DetailError
	switch {
	case errors.As(err, &detail):
		output.Error(detail.Message, "location", detail.Location)
		if detail.Hint != "" {
			output.Println(output.StyleDim.Render(detail.Hint))
		}
	case errors.Is(err, oerrors.ErrAborted):
		output.Warn("generation aborted")
	default:
		output.Error(err.Error())
	}
	return &oerrors.ExitError{Err: err, Code: oerrors.ExitCodeFromError(err), Printed: true}
}
