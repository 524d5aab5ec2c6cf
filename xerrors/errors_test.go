package xerrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/xerrors"
)

func TestShapeErrorIsSentinel(t *testing.T) {
	r := require.New(t)
	err := xerrors.Shape("bad shape %v", []int64{1, 2})
	r.True(errors.Is(err, xerrors.ErrShape))
	r.False(errors.Is(err, xerrors.ErrDtype))
}

func TestReferenceErrorIsSentinel(t *testing.T) {
	r := require.New(t)
	err := xerrors.Reference("use after dispose")
	r.True(errors.Is(err, xerrors.ErrReference))
}

func TestTreeMismatchCarriesPaths(t *testing.T) {
	r := require.New(t)
	err := xerrors.TreeMismatch("jvp", []string{"x.0"}, []string{"x.0", "x.1"})
	r.True(errors.Is(err, xerrors.ErrTreeMismatch))

	var tm *xerrors.TreeMismatchError
	r.True(errors.As(err, &tm))
	r.Equal([]string{"x.0"}, tm.LeftPaths)
	r.Equal([]string{"x.0", "x.1"}, tm.RightPaths)
}

func TestBackendErrorIncludesDiagnostics(t *testing.T) {
	r := require.New(t)
	err := xerrors.Backend("dispatch", "division by zero at pc=12")
	r.True(errors.Is(err, xerrors.ErrBackend))
	r.Contains(err.Error(), "division by zero at pc=12")
}
