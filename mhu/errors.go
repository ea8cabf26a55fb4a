package mhu

import "errors"

// ErrInvalidArgument reports a nil descriptor or a buffer larger than the
// per-direction payload capacity.
var ErrInvalidArgument = errors.New("mhu: invalid argument")

// ErrResourceUnavailable reports a failed IRQ claim or a register window
// that cannot serve the controller.
var ErrResourceUnavailable = errors.New("mhu: resource unavailable")

// ErrBusy reports a send issued while a previous transfer is still
// outstanding. Only strict-mode channels return it; see Builder.
var ErrBusy = errors.New("mhu: channel busy")
