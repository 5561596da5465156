// Package storage implements the drive group reconciliation core. This
// module maintains the diagnostic registry: a cache of the most recent device
// enumeration, nested by Master/Backup relationship. The registry is rebuilt
// from configuration plus device list on every reconciliation and is exported
// for inspection and debugging — it is never consulted for correctness
// decisions, which always use fresh enumeration results.
package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"drivekeeper/internal/devices"
)

// RegistryDrive is one observed drive inside a registry entry.
type RegistryDrive struct {
	Label        string `json:"Label"`
	SerialNumber string `json:"SerialNumber"`
	Available    bool   `json:"Available"`
	MountPoint   string `json:"MountPoint,omitempty"`
	FreeBytes    uint64 `json:"FreeBytes,omitempty"`
	TotalBytes   uint64 `json:"TotalBytes,omitempty"`
	Capacity     string `json:"Capacity,omitempty"` // human-readable total
}

// RegistryEntry roots a group's drives under its Master serial number.
type RegistryEntry struct {
	GroupID     string                    `json:"GroupID"`
	DisplayName string                    `json:"DisplayName"`
	Master      RegistryDrive             `json:"Master"`
	Backups     map[string]*RegistryDrive `json:"Backups"`
}

// Registry is the diagnostic cache, keyed by Master serial number, with the
// timestamp of the enumeration it was built from.
type Registry struct {
	LastScanned time.Time                 `json:"LastScanned"`
	Entries     map[string]*RegistryEntry `json:"Entries"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Entries: make(map[string]*RegistryEntry)}
}

// Rebuild replaces the registry contents from the current configuration and
// a fresh device list, stamping the scan time.
func (r *Registry) Rebuild(config *StorageConfiguration, devs []devices.DeviceDescriptor) {
	entries := make(map[string]*RegistryEntry, len(config.Groups))

	for _, groupID := range config.Groups.SortedIDs() {
		group := config.Groups[groupID]
		if group.Master == nil {
			continue
		}

		entry := &RegistryEntry{
			GroupID:     groupID,
			DisplayName: group.DisplayName,
			Master:      observeDrive(group.Master, devs),
			Backups:     make(map[string]*RegistryDrive, len(group.Backups)),
		}
		for backupID, backup := range group.Backups {
			observed := observeDrive(backup, devs)
			entry.Backups[backupID] = &observed
		}
		entries[group.Master.SerialNumber] = entry
	}

	r.Entries = entries
	r.LastScanned = time.Now()
}

func observeDrive(drive *StorageDrive, devs []devices.DeviceDescriptor) RegistryDrive {
	observed := RegistryDrive{
		Label:        drive.Label,
		SerialNumber: drive.SerialNumber,
	}
	device, found := devices.FindBySerial(devs, drive.SerialNumber)
	if !found {
		return observed
	}
	observed.Available = true
	observed.MountPoint = device.MountPoint
	observed.FreeBytes = device.FreeBytes
	observed.TotalBytes = device.TotalBytes
	observed.Capacity = devices.FormatBytes(device.TotalBytes)
	return observed
}

// Export renders the registry as indented JSON via a cycle-safe traversal.
// The registry itself is acyclic, but the export walker guards against
// revisited pointers anyway so embedding registry state in a larger
// configuration dump can never recurse forever.
func (r *Registry) Export() ([]byte, error) {
	return json.MarshalIndent(exportValue(reflect.ValueOf(r), map[uintptr]bool{}), "", "  ")
}

// circularSentinel replaces a revisited node during export.
const circularSentinel = "(circular reference)"

// exportValue converts an arbitrary value graph into plain maps and slices,
// tracking visited pointers by identity and substituting a sentinel for any
// node seen before on the current walk.
func exportValue(v reflect.Value, visited map[uintptr]bool) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if v.Kind() == reflect.Pointer {
			addr := v.Pointer()
			if visited[addr] {
				return circularSentinel
			}
			visited[addr] = true
			defer delete(visited, addr)
		}
		return exportValue(v.Elem(), visited)
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = exportValue(iter.Value(), visited)
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = exportValue(v.Index(i), visited)
		}
		return out
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return t
		}
		out := make(map[string]any, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			out[field.Name] = exportValue(v.Field(i), visited)
		}
		return out
	default:
		return v.Interface()
	}
}
