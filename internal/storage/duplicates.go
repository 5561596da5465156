// Package storage implements the drive group reconciliation core. This
// module enforces the cross-group serial-uniqueness policy.
package storage

// FindConflict scans every group except excludeGroupID — used during Edit so
// a group is never flagged as conflicting with itself — across both Master
// and all Backups, for a drive already carrying the given serial number.
// Groups are scanned in ascending numeric order so the reported conflict is
// deterministic when a serial is shared by several groups.
//
// Cross-group sharing is permitted by design (intentional drive sharing):
// the caller decides whether a hit is fatal (non-interactive mode) or
// presented to the operator for confirmation (interactive mode). Within-group
// duplicate checking is a separate, always-enforced check performed by the
// lifecycle manager before this function runs.
func FindConflict(config *StorageConfiguration, serial string, excludeGroupID string) (string, bool) {
	for _, groupID := range config.Groups.SortedIDs() {
		if groupID == excludeGroupID {
			continue
		}
		group := config.Groups[groupID]
		if group.Master != nil && group.Master.SerialNumber == serial {
			return groupID, true
		}
		for _, backup := range group.Backups {
			if backup.SerialNumber == serial {
				return groupID, true
			}
		}
	}
	return "", false
}
