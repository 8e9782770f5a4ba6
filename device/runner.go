package device

import (
	"fmt"
	"unsafe"

	"github.com/codeinred/NimbleSM/element"
	"github.com/notargets/gocca"
)

const floatSize = 8

// ForceRunner batches per-element kernels for one topology on an OCCA
// device. Device buffers are sized for a fixed element count at
// construction; the Compute methods copy host slices in, run, and copy
// results back.
type ForceRunner struct {
	device      *gocca.OCCADevice
	elem        element.Element
	numElements int

	forceKernel *gocca.OCCAKernel
	massKernel  *gocca.OCCAKernel

	coords   *gocca.OCCAMemory
	stresses *gocca.OCCAMemory
	forces   *gocca.OCCAMemory
	masses   *gocca.OCCAMemory

	coordLen  int
	stressLen int
	massLen   int
}

// NewForceRunner compiles the kernels for elem and allocates device
// buffers for numElements elements.
func NewForceRunner(dev *gocca.OCCADevice, elem element.Element, numElements int) (*ForceRunner, error) {
	if numElements < 1 {
		return nil, fmt.Errorf("device: need at least one element, got %d", numElements)
	}

	src := kernelSource(elem, numElements)
	forceKernel, err := dev.BuildKernelFromString(src, forceKernelName, nil)
	if err != nil {
		return nil, fmt.Errorf("device: building %s: %w", forceKernelName, err)
	}
	massKernel, err := dev.BuildKernelFromString(src, massKernelName, nil)
	if err != nil {
		forceKernel.Free()
		return nil, fmt.Errorf("device: building %s: %w", massKernelName, err)
	}

	r := &ForceRunner{
		device:      dev,
		elem:        elem,
		numElements: numElements,
		forceKernel: forceKernel,
		massKernel:  massKernel,
		coordLen:    numElements * elem.NumNodesPerElement() * elem.Dim(),
		stressLen:   numElements * elem.NumIntegrationPointsPerElement() * element.SymComponents,
		massLen:     numElements * elem.NumNodesPerElement(),
	}
	r.coords = dev.Malloc(int64(r.coordLen*floatSize), nil, nil)
	r.stresses = dev.Malloc(int64(r.stressLen*floatSize), nil, nil)
	r.forces = dev.Malloc(int64(r.coordLen*floatSize), nil, nil)
	r.masses = dev.Malloc(int64(r.massLen*floatSize), nil, nil)
	return r, nil
}

// NumElements returns the batch capacity.
func (r *ForceRunner) NumElements() int { return r.numElements }

// ComputeNodalForces runs the internal-force kernel across the batch.
// coords and forces are element-major then node-major
// (elem*nnode*dim values); stresses holds one symmetric tensor per
// integration point (elem*nint*6 values).
func (r *ForceRunner) ComputeNodalForces(coords, stresses, forces []float64) error {
	if len(coords) != r.coordLen || len(stresses) != r.stressLen || len(forces) != r.coordLen {
		return fmt.Errorf("device: buffer lengths %d/%d/%d, want %d/%d/%d",
			len(coords), len(stresses), len(forces), r.coordLen, r.stressLen, r.coordLen)
	}

	r.coords.CopyFrom(unsafe.Pointer(&coords[0]), int64(r.coordLen*floatSize))
	r.stresses.CopyFrom(unsafe.Pointer(&stresses[0]), int64(r.stressLen*floatSize))

	if err := r.forceKernel.RunWithArgs(r.coords, r.stresses, r.forces); err != nil {
		return fmt.Errorf("device: running %s: %w", forceKernelName, err)
	}
	r.device.Finish()

	r.forces.CopyTo(unsafe.Pointer(&forces[0]), int64(r.coordLen*floatSize))
	return nil
}

// ComputeLumpedMass runs the lumped-mass kernel across the batch. coords
// is element-major then node-major; masses receives one value per node
// (elem*nnode values).
func (r *ForceRunner) ComputeLumpedMass(density float64, coords, masses []float64) error {
	if len(coords) != r.coordLen || len(masses) != r.massLen {
		return fmt.Errorf("device: buffer lengths %d/%d, want %d/%d",
			len(coords), len(masses), r.coordLen, r.massLen)
	}

	r.coords.CopyFrom(unsafe.Pointer(&coords[0]), int64(r.coordLen*floatSize))

	if err := r.massKernel.RunWithArgs(density, r.coords, r.masses); err != nil {
		return fmt.Errorf("device: running %s: %w", massKernelName, err)
	}
	r.device.Finish()

	r.masses.CopyTo(unsafe.Pointer(&masses[0]), int64(r.massLen*floatSize))
	return nil
}

// Free releases the kernels and device buffers. The runner must not be
// used afterwards.
func (r *ForceRunner) Free() {
	for _, k := range []*gocca.OCCAKernel{r.forceKernel, r.massKernel} {
		if k != nil {
			k.Free()
		}
	}
	for _, m := range []*gocca.OCCAMemory{r.coords, r.stresses, r.forces, r.masses} {
		if m != nil {
			m.Free()
		}
	}
}
