// Package contact defines the contract between a time integrator and a
// contact-force implementation. The integrator sums the contact
// contribution with the element-internal forces each step; enforcement
// strategy, search structures, and parallel decomposition all live behind
// the interface.
package contact

// Manager computes contact forces for one time step. contactForce is a
// node-major (node*dim+component) buffer covering every node the manager
// was built over; implementations overwrite it. debugOutput requests
// per-step diagnostic state dumps from implementations that keep them.
type Manager interface {
	ComputeContactForce(step int, debugOutput bool, contactForce []float64) error
}
