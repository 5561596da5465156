//go:build linux

// Package devices provides block device discovery and enumeration for drive
// group management. This module handles device discovery on Linux using lsblk.
package devices

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// lsblkDevice represents a block device from lsblk JSON output.
type lsblkDevice struct {
	Name       string        `json:"name"`
	Size       string        `json:"size"`
	Label      string        `json:"label"`
	Serial     string        `json:"serial"`
	Model      string        `json:"model"`
	Fstype     string        `json:"fstype"`
	Mountpoint string        `json:"mountpoint"`
	Type       string        `json:"type"`
	Hotplug    bool          `json:"hotplug"`
	State      string        `json:"state"`
	Children   []lsblkDevice `json:"children"`
}

// lsblkOutput represents the root JSON structure from the lsblk command.
type lsblkOutput struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

type linuxEnumerator struct {
	log *slog.Logger
}

func newPlatformEnumerator() Enumerator {
	return &linuxEnumerator{log: slog.Default()}
}

// ListDevices scans attached block devices via lsblk and returns one
// descriptor per whole disk that carries a serial number. If lsblk is
// unavailable or produces unparseable output the scan degrades to an empty
// list rather than failing, so callers keep working on minimal systems.
func (e *linuxEnumerator) ListDevices() ([]DeviceDescriptor, error) {
	cmd := exec.Command("lsblk", "-J", "-o",
		"NAME,SIZE,LABEL,SERIAL,MODEL,FSTYPE,MOUNTPOINT,TYPE,HOTPLUG,STATE")
	out, err := cmd.Output()
	if err != nil {
		e.log.Warn("lsblk unavailable, reporting no devices", "error", err)
		return []DeviceDescriptor{}, nil
	}

	var parsed lsblkOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		e.log.Warn("lsblk output unparseable, reporting no devices", "error", err)
		return []DeviceDescriptor{}, nil
	}

	return e.describeDevices(parsed.BlockDevices), nil
}

// describeDevices converts the lsblk device tree into descriptors. Devices
// without a serial number cannot participate in serial-based matching and are
// skipped with a diagnostic entry.
func (e *linuxEnumerator) describeDevices(devs []lsblkDevice) []DeviceDescriptor {
	descriptors := make([]DeviceDescriptor, 0, 8)

	for _, device := range devs {
		if device.Type != "disk" {
			continue
		}
		if device.Serial == "" {
			e.log.Warn("skipping device without serial number", "device", device.Name)
			continue
		}

		desc := DeviceDescriptor{
			SerialNumber: strings.TrimSpace(device.Serial),
			Label:        deviceLabel(&device),
			Removable:    device.Hotplug,
			Healthy:      device.State != "suspended" && device.State != "offline",
		}

		// The first mounted filesystem in the partition hierarchy supplies
		// mount point and capacity. An unmounted disk still gets a total
		// size from the lsblk size column.
		if mp := firstMountPoint(&device); mp != "" {
			desc.MountPoint = mp
			usage, err := disk.Usage(mp)
			if err != nil {
				e.log.Warn("failed to query disk usage", "device", device.Name, "mount", mp, "error", err)
			} else {
				desc.TotalBytes = usage.Total
				desc.FreeBytes = usage.Free
			}
		} else if total, err := parseDriveSize(device.Size); err == nil {
			desc.TotalBytes = total
		}

		descriptors = append(descriptors, desc)
	}

	return descriptors
}

// deviceLabel picks the friendliest available name: first a filesystem label
// anywhere in the hierarchy, then the device model, then the kernel name.
func deviceLabel(device *lsblkDevice) string {
	if label := firstLabel(device); label != "" {
		return label
	}
	if model := strings.TrimSpace(device.Model); model != "" {
		return model
	}
	return device.Name
}

// firstLabel returns the first non-empty filesystem label in the hierarchy.
func firstLabel(device *lsblkDevice) string {
	if device.Label != "" {
		return device.Label
	}
	for i := range device.Children {
		if label := firstLabel(&device.Children[i]); label != "" {
			return label
		}
	}
	return ""
}

// firstMountPoint returns the first mount point in the device hierarchy.
func firstMountPoint(device *lsblkDevice) string {
	if device.Mountpoint != "" {
		return device.Mountpoint
	}
	for i := range device.Children {
		if mp := firstMountPoint(&device.Children[i]); mp != "" {
			return mp
		}
	}
	return ""
}

// parseDriveSize converts human-readable lsblk size strings to bytes.
// Supports standard units: B, K, M, G, T, P (case-insensitive).
func parseDriveSize(sizeStr string) (uint64, error) {
	sizeStr = strings.TrimSpace(sizeStr)
	if len(sizeStr) < 2 {
		return 0, fmt.Errorf("invalid size string: %s", sizeStr)
	}

	unit := strings.ToUpper(sizeStr[len(sizeStr)-1:])
	numberStr := sizeStr[:len(sizeStr)-1]

	var number float64
	if _, err := fmt.Sscanf(numberStr, "%f", &number); err != nil {
		return 0, fmt.Errorf("invalid number in size: %s", numberStr)
	}

	var multiplier uint64
	switch unit {
	case "B":
		multiplier = 1
	case "K":
		multiplier = 1024
	case "M":
		multiplier = 1024 * 1024
	case "G":
		multiplier = 1024 * 1024 * 1024
	case "T":
		multiplier = 1024 * 1024 * 1024 * 1024
	case "P":
		multiplier = 1024 * 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size unit: %s", unit)
	}

	return uint64(number * float64(multiplier)), nil
}
