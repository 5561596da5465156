// Package storage implements the drive group reconciliation core. This
// module matches configured drives against a fresh device enumeration and
// reports unmet requirements.
package storage

import (
	"fmt"

	"drivekeeper/internal/devices"
)

// RoleMaster names the primary drive of a group in validation issues.
const RoleMaster = "Master"

// ValidationIssue describes one configured drive that could not be matched to
// a live device. Issues are collected and returned, never thrown: a missing
// drive is an ordinary runtime condition, not an error.
type ValidationIssue struct {
	GroupID      string
	DisplayName  string
	Role         string // "Master" or "Backup-N"
	SerialNumber string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("group %s (%s): %s drive with serial %q is not connected",
		i.GroupID, i.DisplayName, i.Role, i.SerialNumber)
}

// Validate reconciles every configured drive against the supplied device
// list. For each group the Master is matched first, then Backups in
// ascending backup-id order — the order matters only for deterministic issue
// reporting, not for matching correctness.
//
// A matched drive gets available=true and its mount point and capacity copied
// into the runtime status block; an unmatched drive gets available=false, a
// cleared status block, and one issue naming the group, role, and serial.
// Missing Backups are non-fatal; missing Masters are reported but the group
// stays loaded. Validate returns an error only when the configuration itself
// is malformed — a group with no Master entry at all is data corruption, not
// a runtime condition.
func Validate(config *StorageConfiguration, devs []devices.DeviceDescriptor) ([]ValidationIssue, error) {
	bySerial := make(map[string]devices.DeviceDescriptor, len(devs))
	for _, d := range devs {
		if _, seen := bySerial[d.SerialNumber]; !seen {
			bySerial[d.SerialNumber] = d
		}
	}

	issues := []ValidationIssue{}

	for _, groupID := range config.Groups.SortedIDs() {
		group := config.Groups[groupID]
		if group == nil || group.Master == nil {
			return nil, fmt.Errorf("storage configuration is corrupt: group %s has no master drive", groupID)
		}

		if issue := matchDrive(group.Master, RoleMaster, groupID, group.DisplayName, bySerial); issue != nil {
			issues = append(issues, *issue)
		}

		for _, backupID := range group.Backups.SortedIDs() {
			role := fmt.Sprintf("Backup-%s", backupID)
			if issue := matchDrive(group.Backups[backupID], role, groupID, group.DisplayName, bySerial); issue != nil {
				issues = append(issues, *issue)
			}
		}
	}

	return issues, nil
}

// matchDrive updates one drive's runtime status from the enumeration map and
// returns an issue when no live device carries its serial number.
func matchDrive(drive *StorageDrive, role, groupID, displayName string, bySerial map[string]devices.DeviceDescriptor) *ValidationIssue {
	device, found := bySerial[drive.SerialNumber]
	if !found {
		drive.Status = DriveStatus{}
		return &ValidationIssue{
			GroupID:      groupID,
			DisplayName:  displayName,
			Role:         role,
			SerialNumber: drive.SerialNumber,
		}
	}

	drive.Status = DriveStatus{
		Available:  true,
		MountPoint: device.MountPoint,
		FreeBytes:  device.FreeBytes,
		TotalBytes: device.TotalBytes,
	}
	return nil
}
