package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers such as `head` close early; that is not a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// quiet maps broken-pipe errors to nil.
func quiet(err error) error {
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
