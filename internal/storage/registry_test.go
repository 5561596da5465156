package storage

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivekeeper/internal/devices"
)

func TestRegistryRebuildNestsBackupsUnderMaster(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = group("Media", drive("Primary", "S-100"), drive("Mirror", "S-200"))

	devs := []devices.DeviceDescriptor{
		{SerialNumber: "S-100", MountPoint: "/mnt/primary", FreeBytes: 100, TotalBytes: 1024},
	}

	registry := NewRegistry()
	registry.Rebuild(config, devs)

	require.Contains(t, registry.Entries, "S-100")
	entry := registry.Entries["S-100"]
	assert.Equal(t, "1", entry.GroupID)
	assert.Equal(t, "Media", entry.DisplayName)
	assert.True(t, entry.Master.Available)
	assert.Equal(t, "/mnt/primary", entry.Master.MountPoint)
	assert.Equal(t, "1.0 KB", entry.Master.Capacity)

	require.Contains(t, entry.Backups, "1")
	assert.Equal(t, "S-200", entry.Backups["1"].SerialNumber)
	assert.False(t, entry.Backups["1"].Available)
	assert.False(t, registry.LastScanned.IsZero())
}

func TestRegistryRebuildReplacesPreviousEntries(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = group("Media", drive("Primary", "S-100"))

	registry := NewRegistry()
	registry.Rebuild(config, nil)
	require.Contains(t, registry.Entries, "S-100")

	registry.Rebuild(NewStorageConfiguration(), nil)
	assert.Empty(t, registry.Entries)
}

func TestRegistryExportProducesValidJSON(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = group("Media", drive("Primary", "S-100"), drive("Mirror", "S-200"))

	registry := NewRegistry()
	registry.Rebuild(config, []devices.DeviceDescriptor{{SerialNumber: "S-100"}})

	data, err := registry.Export()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	entries, ok := decoded["Entries"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, entries, "S-100")
}

func TestExportValueGuardsAgainstCycles(t *testing.T) {
	type node struct {
		Name string
		Next *node
	}
	a := &node{Name: "a"}
	b := &node{Name: "b", Next: a}
	a.Next = b

	out := exportValue(reflect.ValueOf(a), map[uintptr]bool{})

	root, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a", root["Name"])
	next, ok := root["Next"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b", next["Name"])
	assert.Equal(t, circularSentinel, next["Next"])
}
