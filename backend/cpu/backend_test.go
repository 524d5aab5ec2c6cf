package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/backend/cpu"
)

func TestMallocReadRoundTrip(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	slot, err := be.Malloc(4, []byte{1, 2, 3, 4})
	r.NoError(err)

	data, err := be.ReadSync(slot, 0, -1)
	r.NoError(err)
	r.Equal([]byte{1, 2, 3, 4}, data)
}

func TestDecRefBelowZeroPanics(t *testing.T) {
	be := cpu.New()
	slot, err := be.Malloc(4, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	be.DecRef(slot)
	require.Panics(t, func() { be.DecRef(slot) })
}

func TestReadAfterFreeErrors(t *testing.T) {
	r := require.New(t)
	be := cpu.New()
	slot, err := be.Malloc(4, []byte{1, 2, 3, 4})
	r.NoError(err)

	be.DecRef(slot)
	_, err = be.ReadSync(slot, 0, -1)
	r.Error(err)
}
