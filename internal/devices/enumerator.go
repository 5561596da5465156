// Package devices provides block device discovery and enumeration for drive
// group management. This module defines the Enumerator contract and the
// test-mode fixture implementation.
package devices

import "os"

// TestModeEnv is the environment toggle that redirects device probing away
// from the live system. When set to a non-empty value, NewEnumerator returns
// an empty fixture enumerator instead of the platform implementation, and
// callers are expected to redirect file writes to an isolated location as
// well. Used exclusively by automated tests and CI, never in production.
const TestModeEnv = "DRIVEKEEPER_TEST_MODE"

// Enumerator lists the storage devices currently attached to the system.
//
// Implementations are read-only queries with no side effects. "No devices" is
// not an error: an empty slice is returned. A platform without a usable query
// facility degrades to an empty list so the rest of the system keeps working
// in test and CI environments. Individual devices that fail to enumerate are
// logged and skipped — one bad partition never aborts the whole scan.
type Enumerator interface {
	ListDevices() ([]DeviceDescriptor, error)
}

// TestMode reports whether live device probing is suppressed via the
// environment toggle.
func TestMode() bool {
	return os.Getenv(TestModeEnv) != ""
}

// NewEnumerator returns the enumerator for the current platform, or an empty
// fixture enumerator when test mode is enabled.
func NewEnumerator() Enumerator {
	if TestMode() {
		return &FixtureEnumerator{}
	}
	return newPlatformEnumerator()
}

// FixtureEnumerator serves a fixed descriptor list, standing in for live
// hardware in tests. The zero value enumerates no devices.
type FixtureEnumerator struct {
	Devices []DeviceDescriptor
	Err     error
}

// ListDevices returns the configured fixture devices.
func (f *FixtureEnumerator) ListDevices() ([]DeviceDescriptor, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]DeviceDescriptor, len(f.Devices))
	copy(out, f.Devices)
	return out, nil
}
