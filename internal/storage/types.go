// Package storage implements the drive group reconciliation core: typed
// configuration structures, serial-based matching and validation, duplicate
// serial policy, group lifecycle operations with deterministic renumbering,
// and the persistence cycle that keeps in-memory state consistent with the
// on-disk file after every mutation.
//
// Drives are identified by their immutable hardware serial number, never by
// mount point — mount points change across reboots and reattachment, serials
// do not. Only the user-assigned label and the serial number of each drive
// are durable; everything else is runtime state recomputed on every
// reconciliation pass.
package storage

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// DriveStatus is the runtime-only state of a configured drive, derived on
// every validation pass and never persisted as authoritative.
type DriveStatus struct {
	Available  bool   // true when a live device matched the serial number
	MountPoint string // current mount point, empty when unavailable or unmounted
	FreeBytes  uint64
	TotalBytes uint64
}

// StorageDrive is a persisted drive entry in a group. Label is user-assigned
// and mutable; SerialNumber identifies the physical device and changes only
// through an explicit edit operation, never silently.
type StorageDrive struct {
	Label        string `json:"Label"`
	SerialNumber string `json:"SerialNumber"`

	// Status is rebuilt each reconciliation pass and excluded from the
	// on-disk document.
	Status DriveStatus `json:"-"`
}

// BackupMap maps per-group backup identifiers (contiguous integer strings,
// independent of group identifiers) to backup drives.
type BackupMap map[string]*StorageDrive

// GroupMap maps group identifiers (positive integer strings, contiguous 1..N
// after any write-triggering operation) to groups.
type GroupMap map[string]*StorageGroup

// StorageGroup pairs exactly one Master drive with zero or more Backup
// drives. A group whose Master is unavailable is invalid for consumption but
// stays in the configuration — drives are never auto-deleted for being
// disconnected.
type StorageGroup struct {
	DisplayName string        `json:"DisplayName"`
	Master      *StorageDrive `json:"Master"`
	Backups     BackupMap     `json:"Backup"`
}

// StorageConfiguration is the persisted mapping from group identifier to
// group. An empty Storage map is valid and signals "unconfigured", which is
// the designed trigger for first-run setup.
type StorageConfiguration struct {
	Groups GroupMap `json:"Storage"`
}

// NewStorageConfiguration returns an empty configuration.
func NewStorageConfiguration() *StorageConfiguration {
	return &StorageConfiguration{Groups: make(GroupMap)}
}

// Empty reports whether the configuration holds no groups.
func (c *StorageConfiguration) Empty() bool {
	return len(c.Groups) == 0
}

// Clone returns a deep copy of the configuration. Mutations are applied to a
// clone first so a failed operation leaves the caller's configuration
// untouched.
func (c *StorageConfiguration) Clone() *StorageConfiguration {
	clone := NewStorageConfiguration()
	for id, group := range c.Groups {
		clone.Groups[id] = group.clone()
	}
	return clone
}

func (g *StorageGroup) clone() *StorageGroup {
	out := &StorageGroup{
		DisplayName: g.DisplayName,
		Backups:     make(BackupMap, len(g.Backups)),
	}
	if g.Master != nil {
		master := *g.Master
		out.Master = &master
	}
	for id, backup := range g.Backups {
		b := *backup
		out.Backups[id] = &b
	}
	return out
}

// SortedIDs returns the map keys in ascending numeric order. Non-numeric keys
// (possible only in a hand-corrupted file) sort after numeric ones, lexically.
func (m GroupMap) SortedIDs() []string {
	keys := make([]string, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	return sortNumericKeys(keys)
}

// SortedIDs returns the backup identifiers in ascending numeric order.
func (m BackupMap) SortedIDs() []string {
	keys := make([]string, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	return sortNumericKeys(keys)
}

// MarshalJSON serializes groups in ascending numeric key order so the on-disk
// document stays sequential and human-readable.
func (m GroupMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.SortedIDs(), func(id string) any { return m[id] })
}

// MarshalJSON serializes backups in ascending numeric key order.
func (m BackupMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.SortedIDs(), func(id string) any { return m[id] })
}

func marshalOrdered(ids []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(value(id))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func sortNumericKeys(keys []string) []string {
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr != nil || berr != nil {
			if (aerr == nil) != (berr == nil) {
				return aerr == nil
			}
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}
