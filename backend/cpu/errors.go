package cpu

import (
	"errors"
)

var (
	// ErrWrongSlotType indicates a kernel.Slot from another backend was
	// passed to this backend's Malloc-adjacent operations.
	ErrWrongSlotType = errors.New("cpu: slot was not created by this backend")

	// ErrDataLengthMismatch indicates Malloc's initialData didn't match
	// sizeBytes.
	ErrDataLengthMismatch = errors.New("cpu: initial data length does not match requested size")
)
