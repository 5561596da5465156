package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivekeeper/internal/devices"
)

func TestValidateMarksConnectedDrivesAvailable(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = group("Media", drive("Primary", "S-100"), drive("Mirror", "S-200"))

	devs := []devices.DeviceDescriptor{
		{SerialNumber: "S-100", MountPoint: "/mnt/primary", FreeBytes: 100, TotalBytes: 500},
		{SerialNumber: "S-200", MountPoint: "/mnt/mirror", FreeBytes: 50, TotalBytes: 500},
	}

	issues, err := Validate(config, devs)
	require.NoError(t, err)
	assert.Empty(t, issues)

	master := config.Groups["1"].Master
	assert.True(t, master.Status.Available)
	assert.Equal(t, "/mnt/primary", master.Status.MountPoint)
	assert.Equal(t, uint64(100), master.Status.FreeBytes)
	assert.Equal(t, uint64(500), master.Status.TotalBytes)

	backup := config.Groups["1"].Backups["1"]
	assert.True(t, backup.Status.Available)
	assert.Equal(t, "/mnt/mirror", backup.Status.MountPoint)
}

func TestValidateMissingMasterReportsOneIssue(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = group("Media", drive("Primary", "S-100"))

	issues, err := Validate(config, []devices.DeviceDescriptor{{SerialNumber: "S-999"}})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "1", issues[0].GroupID)
	assert.Equal(t, "Media", issues[0].DisplayName)
	assert.Equal(t, RoleMaster, issues[0].Role)
	assert.Equal(t, "S-100", issues[0].SerialNumber)
	assert.False(t, config.Groups["1"].Master.Status.Available)
}

func TestValidateEmptyDeviceListReportsEveryDrive(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = group("Media", drive("Primary", "S-100"),
		drive("Mirror", "S-200"), drive("Offsite", "S-300"))

	issues, err := Validate(config, nil)
	require.NoError(t, err)
	require.Len(t, issues, 3)

	// Master first, then backups in ascending backup-id order.
	assert.Equal(t, RoleMaster, issues[0].Role)
	assert.Equal(t, "Backup-1", issues[1].Role)
	assert.Equal(t, "Backup-2", issues[2].Role)

	for _, g := range config.Groups {
		assert.False(t, g.Master.Status.Available)
		for _, b := range g.Backups {
			assert.False(t, b.Status.Available)
		}
	}
}

func TestValidateClearsStaleRuntimeState(t *testing.T) {
	config := NewStorageConfiguration()
	master := drive("Primary", "S-100")
	master.Status = DriveStatus{Available: true, MountPoint: "/mnt/old", FreeBytes: 1, TotalBytes: 2}
	config.Groups["1"] = group("Media", master)

	issues, err := Validate(config, nil)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, DriveStatus{}, master.Status)
}

func TestValidateGroupWithoutMasterIsCorruption(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = &StorageGroup{DisplayName: "Broken", Backups: make(BackupMap)}

	_, err := Validate(config, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no master drive")
}

func TestValidateIssueOrderIsDeterministicAcrossGroups(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["2"] = group("Second", drive("b", "S-2"))
	config.Groups["10"] = group("Tenth", drive("c", "S-10"))
	config.Groups["1"] = group("First", drive("a", "S-1"))

	issues, err := Validate(config, nil)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, []string{"1", "2", "10"},
		[]string{issues[0].GroupID, issues[1].GroupID, issues[2].GroupID})
}
