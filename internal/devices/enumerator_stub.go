//go:build !linux && !windows

// Package devices provides block device discovery and enumeration for drive
// group management. Platforms without a supported query facility degrade to
// an empty device list so the rest of the system keeps working.
package devices

type stubEnumerator struct{}

func newPlatformEnumerator() Enumerator {
	return stubEnumerator{}
}

// ListDevices reports no devices on unsupported platforms.
func (stubEnumerator) ListDevices() ([]DeviceDescriptor, error) {
	return []DeviceDescriptor{}, nil
}
