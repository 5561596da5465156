package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.0 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes))
	}
}

func TestFilterRemovable(t *testing.T) {
	devs := []DeviceDescriptor{
		{SerialNumber: "S-1", Removable: true},
		{SerialNumber: "S-2", Removable: false},
		{SerialNumber: "S-3", Removable: true},
	}

	filtered := FilterRemovable(devs)
	require.Len(t, filtered, 2)
	assert.Equal(t, "S-1", filtered[0].SerialNumber)
	assert.Equal(t, "S-3", filtered[1].SerialNumber)
}

func TestFindBySerial(t *testing.T) {
	devs := []DeviceDescriptor{
		{SerialNumber: "S-1", Label: "first"},
		{SerialNumber: "S-1", Label: "shadowed"},
		{SerialNumber: "S-2", Label: "second"},
	}

	d, found := FindBySerial(devs, "S-1")
	require.True(t, found)
	assert.Equal(t, "first", d.Label, "first observation wins on duplicate serials")

	_, found = FindBySerial(devs, "S-404")
	assert.False(t, found)
}

func TestFixtureEnumeratorReturnsCopy(t *testing.T) {
	fixture := &FixtureEnumerator{Devices: []DeviceDescriptor{{SerialNumber: "S-1"}}}

	devs, err := fixture.ListDevices()
	require.NoError(t, err)
	devs[0].SerialNumber = "mutated"

	again, err := fixture.ListDevices()
	require.NoError(t, err)
	assert.Equal(t, "S-1", again[0].SerialNumber)
}
