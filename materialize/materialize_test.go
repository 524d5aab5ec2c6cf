package materialize_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/backend/cpu"
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/materialize"
	"github.com/luisdiaz1997/gojax/scalar"
	"github.com/luisdiaz1997/gojax/view"
)

func TestRunDoublesEachElement(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	buf := make([]byte, 4*4)
	for i, v := range []float32{1, 2, 3, 4} {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	slot, err := be.Malloc(int64(len(buf)), buf)
	r.NoError(err)

	tr, err := view.New([]int64{4})
	r.NoError(err)

	gidx, err := materialize.Gidx(4)
	r.NoError(err)
	read, err := materialize.BuildRead(0, dtype.Float32, tr, gidx)
	r.NoError(err)
	doubled, err := scalar.Add(read, read)
	r.NoError(err)

	k, err := kernel.New(dtype.Float32, 4, doubled, nil)
	r.NoError(err)

	out, err := materialize.Run(be, k, []kernel.Slot{slot})
	r.NoError(err)

	data, err := be.ReadSync(out, 0, -1)
	r.NoError(err)
	got := make([]float32, 4)
	for i := range got {
		got[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	r.Equal([]float32{2, 4, 6, 8}, got)
}
