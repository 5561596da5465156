// Package devices provides block device discovery and enumeration for drive
// group management. This module defines the core types used throughout the
// devices package.
package devices

import "fmt"

// DeviceDescriptor contains metadata about an attached storage device as
// observed during a single enumeration pass. Descriptors are ephemeral: they
// are rebuilt on every scan and are never persisted. The serial number is the
// only stable identity — mount points and drive letters change across reboots
// and reattachment.
type DeviceDescriptor struct {
	SerialNumber string // Hardware-assigned serial, treated as an opaque identifier
	Label        string // Volume label or model name fallback
	MountPoint   string // Current mount point, empty if the device is not mounted
	TotalBytes   uint64 // Total capacity in bytes
	FreeBytes    uint64 // Free capacity in bytes (0 when not mounted)
	Removable    bool   // true for hotplug/USB/external devices
	Healthy      bool   // false when the OS reports the device in a degraded state
}

// FilterRemovable returns only the removable devices from a descriptor list.
// Drive selection for new groups is constrained to removable devices so that
// the operator cannot accidentally enroll a system disk.
func FilterRemovable(devs []DeviceDescriptor) []DeviceDescriptor {
	filtered := make([]DeviceDescriptor, 0, len(devs))
	for _, d := range devs {
		if d.Removable {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FindBySerial looks up a descriptor by serial number in an enumeration
// result. Returns the first match; duplicate serials in a single enumeration
// indicate a platform quirk and the first observation wins.
func FindBySerial(devs []DeviceDescriptor, serial string) (DeviceDescriptor, bool) {
	for _, d := range devs {
		if d.SerialNumber == serial {
			return d, true
		}
	}
	return DeviceDescriptor{}, false
}

// FormatBytes converts a byte count to a human-readable size string.
func FormatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
		PB = TB * 1024
	)

	switch {
	case bytes < KB:
		return fmt.Sprintf("%d B", bytes)
	case bytes < MB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	case bytes < GB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes < TB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes < PB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	default:
		return fmt.Sprintf("%.1f PB", float64(bytes)/PB)
	}
}
