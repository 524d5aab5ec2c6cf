package cpu

import (
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
)

// executable is this backend's compiled form of a kernel.Kernel. Since the
// CPU backend interprets the kernel's scalar.Expr directly, "compiling" is
// just precomputing the per-gid input dtype table once instead of per
// dispatch.
type executable struct {
	k          *kernel.Kernel
	inputTypes map[int]dtype.DType
}

func (e *executable) executableTag() {}

func compile(k *kernel.Kernel) *executable {
	return &executable{k: k, inputTypes: k.InputDTypes()}
}
