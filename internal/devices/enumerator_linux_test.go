//go:build linux

package devices

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lsblkSample = `{
  "blockdevices": [
    {
      "name": "nvme0n1", "size": "931.5G", "serial": "NVME-INTERNAL", "model": "Samsung SSD",
      "type": "disk", "hotplug": false,
      "children": [
        {"name": "nvme0n1p2", "size": "930G", "fstype": "ext4", "mountpoint": "/", "type": "part"}
      ]
    },
    {
      "name": "sdb", "size": "1.8T", "serial": "WD-EXT-001", "model": "WD Elements",
      "type": "disk", "hotplug": true,
      "children": [
        {"name": "sdb1", "size": "1.8T", "label": "Tank", "fstype": "ext4",
         "mountpoint": "/run/media/user/Tank", "type": "part"}
      ]
    },
    {
      "name": "sdc", "size": "500G", "serial": "", "model": "NoSerial Disk",
      "type": "disk", "hotplug": true
    },
    {
      "name": "sdd", "size": "256G", "serial": "USB-UNMOUNTED", "model": "SanDisk Ultra",
      "type": "disk", "hotplug": true,
      "children": [
        {"name": "sdd1", "size": "256G", "fstype": "exfat", "mountpoint": null, "type": "part"}
      ]
    },
    {"name": "loop0", "size": "4K", "type": "loop"}
  ]
}`

func TestDescribeDevicesFromLsblkOutput(t *testing.T) {
	var parsed lsblkOutput
	require.NoError(t, json.Unmarshal([]byte(lsblkSample), &parsed))

	e := &linuxEnumerator{log: slog.Default()}
	devs := e.describeDevices(parsed.BlockDevices)

	// The serial-less disk and the loop device are skipped.
	require.Len(t, devs, 3)

	internal, found := FindBySerial(devs, "NVME-INTERNAL")
	require.True(t, found)
	assert.False(t, internal.Removable)
	assert.Equal(t, "/", internal.MountPoint)

	external, found := FindBySerial(devs, "WD-EXT-001")
	require.True(t, found)
	assert.True(t, external.Removable)
	assert.Equal(t, "Tank", external.Label)
	assert.Equal(t, "/run/media/user/Tank", external.MountPoint)

	unmounted, found := FindBySerial(devs, "USB-UNMOUNTED")
	require.True(t, found)
	assert.Empty(t, unmounted.MountPoint)
	assert.Equal(t, "SanDisk Ultra", unmounted.Label)
	// Capacity for an unmounted disk comes from the lsblk size column.
	assert.Equal(t, uint64(256*1024*1024*1024), unmounted.TotalBytes)
	assert.Zero(t, unmounted.FreeBytes)
}

func TestParseDriveSize(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"500G", 500 * 1024 * 1024 * 1024, false},
		{"1.5K", 1536, false},
		{"42B", 42, false},
		{"2T", 2 * 1024 * 1024 * 1024 * 1024, false},
		{"", 0, true},
		{"G", 0, true},
		{"12X", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDriveSize(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
