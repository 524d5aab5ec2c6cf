package array

import (
	"sync"

	"github.com/luisdiaz1997/gojax/backend"
	"github.com/luisdiaz1997/gojax/backend/cpu"
)

var (
	deviceMu      sync.Mutex
	defaultDevice backend.Backend = cpu.New()
)

// DefaultDevice returns the process-wide default backend. The constructors
// in this package take their backend as a required argument and do not
// consult it.
func DefaultDevice() backend.Backend {
	deviceMu.Lock()
	defer deviceMu.Unlock()
	return defaultDevice
}

// SetDefaultDevice replaces the default backend. Arrays already
// constructed keep referencing whichever backend produced them.
func SetDefaultDevice(be backend.Backend) {
	deviceMu.Lock()
	defer deviceMu.Unlock()
	defaultDevice = be
}
