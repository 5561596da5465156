//go:build windows

// Package devices provides block device discovery and enumeration for drive
// group management. This module handles device discovery on Windows using WMI.
package devices

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

// Win32_DiskDrive mirrors the WMI physical drive class fields we query.
type Win32_DiskDrive struct {
	DeviceID      string
	Model         string
	SerialNumber  string
	InterfaceType string
	MediaType     string
	Status        string
	Size          uint64
}

// Win32_DiskPartition mirrors the WMI partition class fields we query.
type Win32_DiskPartition struct {
	DeviceID string
}

// Win32_LogicalDisk mirrors the WMI volume class fields we query.
type Win32_LogicalDisk struct {
	DeviceID   string
	VolumeName string
	Size       uint64
	FreeSpace  uint64
}

type windowsEnumerator struct {
	log *slog.Logger
}

func newPlatformEnumerator() Enumerator {
	return &windowsEnumerator{log: slog.Default()}
}

// ListDevices enumerates physical drives via WMI and associates each with its
// mounted volume, if any. A drive whose partition or volume queries fail is
// reported without mount information rather than dropped; a drive without a
// serial number is skipped since it can never be matched.
func (e *windowsEnumerator) ListDevices() ([]DeviceDescriptor, error) {
	var drives []Win32_DiskDrive
	query := "SELECT DeviceID, Model, SerialNumber, InterfaceType, MediaType, Status, Size FROM Win32_DiskDrive"
	if err := wmi.Query(query, &drives); err != nil {
		e.log.Warn("WMI drive query failed, reporting no devices", "error", err)
		return []DeviceDescriptor{}, nil
	}

	descriptors := make([]DeviceDescriptor, 0, len(drives))

	for _, d := range drives {
		serial := strings.TrimSpace(d.SerialNumber)
		if serial == "" {
			e.log.Warn("skipping drive without serial number", "device", d.DeviceID)
			continue
		}

		desc := DeviceDescriptor{
			SerialNumber: serial,
			Label:        strings.TrimSpace(d.Model),
			TotalBytes:   d.Size,
			Removable:    isRemovableDrive(&d),
			Healthy:      d.Status == "" || d.Status == "OK",
		}

		vol, err := e.primaryVolume(d.DeviceID)
		if err != nil {
			e.log.Warn("failed to resolve volume for drive", "device", d.DeviceID, "error", err)
		} else if vol != nil {
			desc.MountPoint = vol.DeviceID + `\`
			desc.FreeBytes = vol.FreeSpace
			if vol.Size > 0 {
				desc.TotalBytes = vol.Size
			}
			if vol.VolumeName != "" {
				desc.Label = vol.VolumeName
			}
		}

		descriptors = append(descriptors, desc)
	}

	return descriptors, nil
}

// primaryVolume walks drive -> partition -> logical disk associations and
// returns the first mounted volume, or nil when the drive has none.
func (e *windowsEnumerator) primaryVolume(driveID string) (*Win32_LogicalDisk, error) {
	var partitions []Win32_DiskPartition
	partQuery := fmt.Sprintf(
		"ASSOCIATORS OF {Win32_DiskDrive.DeviceID='%s'} WHERE AssocClass = Win32_DiskDriveToDiskPartition",
		driveID)
	if err := wmi.Query(partQuery, &partitions); err != nil {
		return nil, fmt.Errorf("partition query failed: %w", err)
	}

	for _, p := range partitions {
		var volumes []Win32_LogicalDisk
		volQuery := fmt.Sprintf(
			"ASSOCIATORS OF {Win32_DiskPartition.DeviceID='%s'} WHERE AssocClass = Win32_LogicalDiskToPartition",
			p.DeviceID)
		if err := wmi.Query(volQuery, &volumes); err != nil {
			return nil, fmt.Errorf("volume query failed: %w", err)
		}
		if len(volumes) > 0 {
			return &volumes[0], nil
		}
	}

	return nil, nil
}

// isRemovableDrive classifies USB and external media as removable.
func isRemovableDrive(d *Win32_DiskDrive) bool {
	if strings.EqualFold(d.InterfaceType, "USB") {
		return true
	}
	media := strings.ToLower(d.MediaType)
	return strings.Contains(media, "removable") || strings.Contains(media, "external")
}
