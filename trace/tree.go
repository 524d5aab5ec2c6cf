package trace

import (
	"sort"
	"strconv"
)

// TreeKind tags the shape of a TreeDef node.
type TreeKind uint8

const (
	// KindLeaf marks a node holding a single array-like value.
	KindLeaf TreeKind = iota
	// KindSlice marks a node whose children are positional.
	KindSlice
	// KindMap marks a node whose children are keyed, in sorted key order.
	KindMap
)

// TreeDef records the shape of a nested structure of leaves (arrays,
// Python-pytree style) so Flatten's leaf list can later be reassembled by
// Unflatten, or compared against another TreeDef by CompareStructure.
//
// Only []interface{} and map[string]interface{} are recognized as
// containers; anything else (including nil) is a leaf. This mirrors the
// structures spec.md §6's tree-aware APIs (jacfwd, grad over pytrees)
// actually need: argument lists and keyword dicts of arrays.
type TreeDef struct {
	Kind     TreeKind
	Keys     []string // populated for KindMap, sorted
	Children []TreeDef
}

// IsLeafFunc decides whether x should be treated as an opaque leaf rather
// than a container to recurse into.
type IsLeafFunc func(x interface{}) bool

// Flatten decomposes x into its ordered list of leaves and a TreeDef
// describing how to reassemble them.
func Flatten(x interface{}, isLeaf IsLeafFunc) ([]interface{}, TreeDef) {
	if isLeaf(x) {
		return []interface{}{x}, TreeDef{Kind: KindLeaf}
	}
	switch v := x.(type) {
	case []interface{}:
		var leaves []interface{}
		def := TreeDef{Kind: KindSlice, Children: make([]TreeDef, len(v))}
		for i, child := range v {
			cl, cd := Flatten(child, isLeaf)
			leaves = append(leaves, cl...)
			def.Children[i] = cd
		}
		return leaves, def
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var leaves []interface{}
		def := TreeDef{Kind: KindMap, Keys: keys, Children: make([]TreeDef, len(keys))}
		for i, k := range keys {
			cl, cd := Flatten(v[k], isLeaf)
			leaves = append(leaves, cl...)
			def.Children[i] = cd
		}
		return leaves, def
	default:
		return []interface{}{x}, TreeDef{Kind: KindLeaf}
	}
}

// Unflatten rebuilds a value matching def from leaves, consuming them in
// the same order Flatten produced them in.
func Unflatten(def TreeDef, leaves []interface{}) (interface{}, error) {
	v, rest, err := unflatten(def, leaves)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errLeafCountMismatch
	}
	return v, nil
}

func unflatten(def TreeDef, leaves []interface{}) (interface{}, []interface{}, error) {
	switch def.Kind {
	case KindLeaf:
		if len(leaves) == 0 {
			return nil, nil, errLeafCountMismatch
		}
		return leaves[0], leaves[1:], nil
	case KindSlice:
		out := make([]interface{}, len(def.Children))
		rest := leaves
		for i, cd := range def.Children {
			var v interface{}
			var err error
			v, rest, err = unflatten(cd, rest)
			if err != nil {
				return nil, nil, err
			}
			out[i] = v
		}
		return out, rest, nil
	case KindMap:
		out := make(map[string]interface{}, len(def.Keys))
		rest := leaves
		for i, cd := range def.Children {
			var v interface{}
			var err error
			v, rest, err = unflatten(cd, rest)
			if err != nil {
				return nil, nil, err
			}
			out[def.Keys[i]] = v
		}
		return out, rest, nil
	default:
		return nil, nil, errLeafCountMismatch
	}
}

// CompareStructure reports whether a and b describe the same tree shape.
// On mismatch it returns the dotted paths, relative to the tree root,
// where each side's structure diverges — used by transforms that require
// two pytrees to line up (e.g. primals vs. tangents in JVP) to build a
// xerrors.TreeMismatchError.
func CompareStructure(a, b TreeDef) (ok bool, leftPaths, rightPaths []string) {
	la, ra := compareAt("", a, b)
	return len(la) == 0 && len(ra) == 0, la, ra
}

func compareAt(path string, a, b TreeDef) (leftPaths, rightPaths []string) {
	if a.Kind != b.Kind || len(a.Children) != len(b.Children) {
		return []string{path}, []string{path}
	}
	if a.Kind == KindMap {
		if len(a.Keys) != len(b.Keys) {
			return []string{path}, []string{path}
		}
		for i := range a.Keys {
			if a.Keys[i] != b.Keys[i] {
				return []string{path}, []string{path}
			}
		}
	}
	for i := range a.Children {
		childPath := childPathOf(path, a, i)
		l, r := compareAt(childPath, a.Children[i], b.Children[i])
		leftPaths = append(leftPaths, l...)
		rightPaths = append(rightPaths, r...)
	}
	return leftPaths, rightPaths
}

func childPathOf(path string, def TreeDef, i int) string {
	var seg string
	if def.Kind == KindMap {
		seg = def.Keys[i]
	} else {
		seg = strconv.Itoa(i)
	}
	if path == "" {
		return seg
	}
	return path + "." + seg
}
