// Package ui provides the interactive collaborator surface for drive group
// management. This module renders validation results, group status, and
// device listings for the terminal.
package ui

import (
	"fmt"
	"strings"

	"drivekeeper/internal/devices"
	"drivekeeper/internal/storage"
)

// RenderIssues formats validation issues for display. Issues are always
// shown even when non-fatal; an empty list renders a success line.
func RenderIssues(issues []storage.ValidationIssue) string {
	if len(issues) == 0 {
		return successTextStyle.Render("✅ All configured drives are connected")
	}

	var s strings.Builder
	s.WriteString(errorTextStyle.Render(fmt.Sprintf("⚠️  %d drive(s) not connected", len(issues))) + "\n")
	for _, issue := range issues {
		s.WriteString("  • " + issue.String() + "\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// RenderGroups formats the configured groups with their runtime status.
func RenderGroups(config *storage.StorageConfiguration) string {
	if config.Empty() {
		return dimTextStyle.Render("No storage groups configured yet — run first-time setup to add one.")
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("💾 Storage Groups") + "\n")

	for _, groupID := range config.Groups.SortedIDs() {
		group := config.Groups[groupID]
		s.WriteString(fmt.Sprintf("[%s] %s\n", groupID, group.DisplayName))
		s.WriteString("  Master: " + renderDrive(group.Master) + "\n")
		for _, backupID := range group.Backups.SortedIDs() {
			s.WriteString(fmt.Sprintf("  Backup-%s: %s\n", backupID, renderDrive(group.Backups[backupID])))
		}
	}
	return strings.TrimRight(s.String(), "\n")
}

func renderDrive(drive *storage.StorageDrive) string {
	base := fmt.Sprintf("%s (serial %s)", drive.Label, drive.SerialNumber)
	if !drive.Status.Available {
		return base + " " + errorTextStyle.Render("[disconnected]")
	}

	detail := "[connected"
	if drive.Status.MountPoint != "" {
		detail += " at " + drive.Status.MountPoint
	}
	if drive.Status.TotalBytes > 0 {
		detail += fmt.Sprintf(", %s free of %s",
			devices.FormatBytes(drive.Status.FreeBytes),
			devices.FormatBytes(drive.Status.TotalBytes))
	}
	detail += "]"
	return base + " " + successTextStyle.Render(detail)
}

// RenderDevices formats an enumeration result as a device listing.
func RenderDevices(devs []devices.DeviceDescriptor) string {
	if len(devs) == 0 {
		return dimTextStyle.Render("No storage devices detected.")
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("🔍 Attached Devices") + "\n")

	for _, d := range devs {
		line := fmt.Sprintf("%s  serial=%s", d.Label, d.SerialNumber)
		if d.MountPoint != "" {
			line += "  mount=" + d.MountPoint
		} else {
			line += "  (not mounted)"
		}
		if d.TotalBytes > 0 {
			line += "  size=" + devices.FormatBytes(d.TotalBytes)
		}
		if d.Removable {
			line += "  removable"
		}
		if !d.Healthy {
			line += "  " + errorTextStyle.Render("DEGRADED")
		}
		s.WriteString("  " + line + "\n")
	}
	return strings.TrimRight(s.String(), "\n")
}
