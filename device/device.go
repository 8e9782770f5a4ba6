// Package device offloads batched element kernels to an OCCA backend
// (Serial, OpenMP, CUDA) through gocca. OKL source is generated per
// topology with the integration tables baked in as constants, so a runner
// compiles its kernels once and then only moves data.
//
// The device path mirrors the host kernels arithmetically but cannot
// surface per-point errors; degenerate-element detection stays with the
// host kernels in the element package.
package device

import (
	"fmt"

	"github.com/notargets/gocca"
)

// NewTestDevice creates a device for tests and examples, preferring
// parallel backends and falling back to Serial.
func NewTestDevice() *gocca.OCCADevice {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			fmt.Printf("Created %s device\n", device.Mode())
			return device
		}
	}

	// Serial is built into every OCCA install
	panic("failed to create any device")
}
