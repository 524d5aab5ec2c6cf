package trace

import "errors"

// ErrEmptyStack is returned by Stack.At when the requested level is not
// currently pushed. (Stack.Top reports an empty stack by returning nil.)
var ErrEmptyStack = errors.New("trace: interpreter stack is empty")

// ErrUnknownPrimitive is returned by Bind when an interpreter's
// ProcessPrimitive does not recognize the primitive it was asked to handle.
var ErrUnknownPrimitive = errors.New("trace: unknown primitive")

// errLeafCountMismatch is returned by Unflatten when the supplied leaf
// slice doesn't have exactly as many elements as the TreeDef expects.
var errLeafCountMismatch = errors.New("trace: leaf count does not match tree definition")
