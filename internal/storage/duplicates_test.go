package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindConflictMatchesMasterAndBackups(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["1"] = group("Media", drive("Primary", "S-100"), drive("Mirror", "S-200"))
	config.Groups["2"] = group("Archive", drive("Vault", "S-300"))

	tests := []struct {
		name      string
		serial    string
		exclude   string
		wantGroup string
		wantFound bool
	}{
		{"master hit", "S-100", "", "1", true},
		{"backup hit", "S-200", "", "1", true},
		{"other group master", "S-300", "", "2", true},
		{"no hit", "S-999", "", "", false},
		{"edited group excluded", "S-100", "1", "", false},
		{"exclusion leaves other groups visible", "S-300", "1", "2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groupID, found := FindConflict(config, tt.serial, tt.exclude)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantGroup, groupID)
		})
	}
}

func TestFindConflictReportsLowestNumberedGroup(t *testing.T) {
	config := NewStorageConfiguration()
	config.Groups["2"] = group("Second", drive("b", "S-SHARED"))
	config.Groups["10"] = group("Tenth", drive("c", "S-SHARED"))

	groupID, found := FindConflict(config, "S-SHARED", "")
	assert.True(t, found)
	assert.Equal(t, "2", groupID)
}
