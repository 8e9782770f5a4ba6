package element

// NodeView is the read-only access kernels require from nodal data: the
// value of component comp at local node n. Adapters below cover flat
// per-element arrays and gathered subsets of a shared mesh array; a
// gonum *mat.Dense with one row per node satisfies it directly.
type NodeView interface {
	At(n, comp int) float64
}

// NodeArray adapts a flat node-major slice (node*stride+comp) to NodeView.
type NodeArray struct {
	Data   []float64
	Stride int
}

// NewNodeArray wraps a flat per-element coordinate slice with stride
// components per node.
func NewNodeArray(data []float64, stride int) NodeArray {
	return NodeArray{Data: data, Stride: stride}
}

func (a NodeArray) At(n, comp int) float64 {
	return a.Data[n*a.Stride+comp]
}

// Gathered restricts a shared node-major array to one element's nodes
// through an index list, so per-element kernels can run concurrently over
// a mesh without copying coordinates out.
type Gathered struct {
	Data   []float64 // mesh-wide node-major array
	Nodes  []int     // global node ids in local connectivity order
	Stride int
}

// NewGathered wraps a mesh-wide array restricted to the given element
// connectivity.
func NewGathered(data []float64, nodes []int, stride int) Gathered {
	return Gathered{Data: data, Nodes: nodes, Stride: stride}
}

func (g Gathered) At(n, comp int) float64 {
	return g.Data[g.Nodes[n]*g.Stride+comp]
}

// Displaced presents reference coordinates plus displacements as current
// coordinates without materializing the sum.
type Displaced[R, D NodeView] struct {
	Ref  R
	Disp D
}

// Displace composes a reference view and a displacement view into a
// current-configuration view.
func Displace[R, D NodeView](ref R, disp D) Displaced[R, D] {
	return Displaced[R, D]{Ref: ref, Disp: disp}
}

func (v Displaced[R, D]) At(n, comp int) float64 {
	return v.Ref.At(n, comp) + v.Disp.At(n, comp)
}
