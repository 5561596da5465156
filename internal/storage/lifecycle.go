// Package storage implements the drive group reconciliation core. This
// module implements the group lifecycle operations: Add, Edit, and Remove,
// with deterministic renumbering and the save→reload→revalidate discipline
// that keeps the in-memory view consistent with what was actually persisted.
package storage

import (
	"fmt"
	"log/slog"
	"strconv"

	"drivekeeper/internal/devices"
)

// ConflictPrompter is the interactive collaborator consulted when a serial
// number entered for one group is already used by another. Cross-group
// sharing is permitted by design, but only as an explicit operator choice.
// A nil prompter means non-interactive mode: every cross-group conflict is
// rejected outright and no prompt is ever attempted.
type ConflictPrompter interface {
	// ConfirmSharedSerial reports whether the operator accepts using the
	// serial even though conflictGroupID already contains it.
	ConfirmSharedSerial(serial string, conflictGroupID string) (bool, error)
}

// GroupEdit describes the mutable parts of a group for EditGroup. Nil fields
// are left unchanged; a non-nil empty Backups slice removes all backups. The
// group identifier itself is immutable during an edit.
type GroupEdit struct {
	DisplayName *string
	Master      *StorageDrive
	Backups     []StorageDrive
}

// Manager owns the group lifecycle over one storage configuration. Every
// mutation is atomic from the caller's perspective: it is applied to a clone,
// persisted, reloaded, and revalidated — only then does the manager adopt the
// new state. Any failure along the way leaves the in-memory configuration
// exactly as it was before the call.
type Manager struct {
	store    *Store
	enum     devices.Enumerator
	prompter ConflictPrompter
	log      *slog.Logger

	config   *StorageConfiguration
	registry *Registry
	issues   []ValidationIssue
}

// NewManager returns a lifecycle manager over the given store and enumerator.
// A nil prompter selects non-interactive duplicate-serial policy; a nil
// logger falls back to slog.Default().
func NewManager(store *Store, enum devices.Enumerator, prompter ConflictPrompter, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:    store,
		enum:     enum,
		prompter: prompter,
		log:      logger,
		config:   NewStorageConfiguration(),
		registry: NewRegistry(),
	}
}

// Config returns the current in-memory configuration. Collaborators treat it
// as read-only; all mutation goes through the lifecycle operations.
func (m *Manager) Config() *StorageConfiguration {
	return m.config
}

// Registry returns the diagnostic cache of the last enumeration.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Issues returns the validation issues from the most recent reconciliation.
func (m *Manager) Issues() []ValidationIssue {
	return m.issues
}

// Startup loads the persisted configuration and reconciles it against a
// fresh device enumeration. Gaps in group identifiers from a hand-edited
// file are preserved — a plain load never renumbers and never writes.
func (m *Manager) Startup() ([]ValidationIssue, error) {
	config, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	m.config = config

	if config.Empty() {
		m.log.Info("storage configuration is empty, first-run setup required", "path", m.store.Path())
	}

	return m.Reconcile()
}

// Reconcile re-enumerates live devices, revalidates the in-memory
// configuration, and rebuilds the diagnostic registry. Nothing is written to
// disk: a mere validate pass never touches the file.
func (m *Manager) Reconcile() ([]ValidationIssue, error) {
	devs, err := m.enum.ListDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	issues, err := Validate(m.config, devs)
	if err != nil {
		return nil, err
	}

	m.registry.Rebuild(m.config, devs)
	m.issues = issues

	for _, issue := range issues {
		m.log.Warn("configured drive not connected",
			"group", issue.GroupID, "name", issue.DisplayName,
			"role", issue.Role, "serial", issue.SerialNumber)
	}

	return issues, nil
}

// FindGroupForSerial returns the identifier of the first group (in ascending
// numeric order) containing a drive with the given serial number.
func (m *Manager) FindGroupForSerial(serial string) (string, bool) {
	return FindConflict(m.config, serial, "")
}

// AddGroup creates a new group from a display name, one Master, and zero or
// more Backups, and persists it. Backups are keyed "1".."N" in the order
// given. The new group receives identifier max(existing)+1 before the
// renumbering pass runs; the identifier actually persisted is returned.
func (m *Manager) AddGroup(displayName string, master StorageDrive, backups []StorageDrive) (string, error) {
	if err := checkWithinGroup(master, backups); err != nil {
		return "", err
	}
	if err := m.checkCrossGroup(master, backups, "", nil); err != nil {
		return "", err
	}

	group := &StorageGroup{
		DisplayName: displayName,
		Master:      &master,
		Backups:     make(BackupMap, len(backups)),
	}
	for i := range backups {
		backup := backups[i]
		group.Backups[strconv.Itoa(i+1)] = &backup
	}

	clone := m.config.Clone()
	clone.Groups[nextGroupID(clone)] = group
	renumber(clone)

	// Renumbering may have collapsed earlier gaps, so locate the group's
	// final identifier before persisting.
	newID := ""
	for id, g := range clone.Groups {
		if g == group {
			newID = id
			break
		}
	}

	if err := m.persistAndRefresh(clone); err != nil {
		return "", err
	}

	m.log.Info("storage group added", "group", newID, "name", displayName,
		"master", master.SerialNumber, "backups", len(backups))
	return newID, nil
}

// EditGroup mutates the display name, Master, and/or Backups of an existing
// group and persists the result. Duplicate checks exclude the group being
// edited from cross-group conflict detection; serials already present in the
// group before the edit are not re-confirmed.
func (m *Manager) EditGroup(groupID string, edit GroupEdit) error {
	existing, ok := m.config.Groups[groupID]
	if !ok {
		return &GroupNotFoundError{GroupID: groupID}
	}
	if existing.Master == nil {
		return fmt.Errorf("storage configuration is corrupt: group %s has no master drive", groupID)
	}

	master := *existing.Master
	if edit.Master != nil {
		master = *edit.Master
	}

	var backups []StorageDrive
	if edit.Backups != nil {
		backups = edit.Backups
	} else {
		for _, backupID := range existing.Backups.SortedIDs() {
			backups = append(backups, *existing.Backups[backupID])
		}
	}

	if err := checkWithinGroup(master, backups); err != nil {
		return err
	}
	if err := m.checkCrossGroup(master, backups, groupID, existing); err != nil {
		return err
	}

	clone := m.config.Clone()
	target := clone.Groups[groupID]
	if edit.DisplayName != nil {
		target.DisplayName = *edit.DisplayName
	}
	target.Master = &master
	target.Backups = make(BackupMap, len(backups))
	for i := range backups {
		backup := backups[i]
		target.Backups[strconv.Itoa(i+1)] = &backup
	}
	renumber(clone)

	if err := m.persistAndRefresh(clone); err != nil {
		return err
	}

	m.log.Info("storage group edited", "group", groupID, "name", target.DisplayName)
	return nil
}

// RemoveGroups deletes the given groups and renumbers the survivors to
// contiguous "1".."N" preserving their prior relative order. Every requested
// identifier must exist — partial removal is never performed. An empty
// resulting configuration is a valid terminal state, not an error.
func (m *Manager) RemoveGroups(groupIDs []string) error {
	for _, groupID := range groupIDs {
		if _, ok := m.config.Groups[groupID]; !ok {
			return &GroupNotFoundError{GroupID: groupID}
		}
	}

	clone := m.config.Clone()
	for _, groupID := range groupIDs {
		delete(clone.Groups, groupID)
	}
	renumber(clone)

	if err := m.persistAndRefresh(clone); err != nil {
		return err
	}

	m.log.Info("storage groups removed", "groups", groupIDs, "remaining", len(m.config.Groups))
	return nil
}

// persistAndRefresh writes the mutated clone, reloads it from disk, and
// revalidates against a fresh enumeration. The manager adopts the reloaded
// configuration only when every step succeeds, so a failed save or reload
// leaves the previous in-memory state as the last known good.
func (m *Manager) persistAndRefresh(clone *StorageConfiguration) error {
	if err := m.store.Save(clone); err != nil {
		return err
	}

	reloaded, err := m.store.Load()
	if err != nil {
		return err
	}

	devs, err := m.enum.ListDevices()
	if err != nil {
		return fmt.Errorf("failed to enumerate devices: %w", err)
	}
	issues, err := Validate(reloaded, devs)
	if err != nil {
		return err
	}

	m.config = reloaded
	m.issues = issues
	m.registry.Rebuild(reloaded, devs)
	return nil
}

// checkWithinGroup rejects a serial number appearing twice inside one group
// (Master vs a Backup, or Backup vs Backup). This check is always enforced
// and never overridable by any mode or flag.
func checkWithinGroup(master StorageDrive, backups []StorageDrive) error {
	seen := map[string]struct{}{master.SerialNumber: {}}
	for _, backup := range backups {
		if _, dup := seen[backup.SerialNumber]; dup {
			return &DuplicateSerialError{SerialNumber: backup.SerialNumber, WithinGroup: true}
		}
		seen[backup.SerialNumber] = struct{}{}
	}
	return nil
}

// checkCrossGroup applies the cross-group duplicate policy to every incoming
// drive. Serials the group already held before the edit are skipped — they
// were accepted when first configured.
func (m *Manager) checkCrossGroup(master StorageDrive, backups []StorageDrive, excludeGroupID string, prior *StorageGroup) error {
	priorSerials := make(map[string]struct{})
	if prior != nil {
		priorSerials[prior.Master.SerialNumber] = struct{}{}
		for _, backup := range prior.Backups {
			priorSerials[backup.SerialNumber] = struct{}{}
		}
	}

	serials := []string{master.SerialNumber}
	for _, backup := range backups {
		serials = append(serials, backup.SerialNumber)
	}

	for _, serial := range serials {
		if _, held := priorSerials[serial]; held {
			continue
		}
		conflictID, found := FindConflict(m.config, serial, excludeGroupID)
		if !found {
			continue
		}
		if m.prompter == nil {
			return &DuplicateSerialError{SerialNumber: serial, GroupID: conflictID}
		}
		accepted, err := m.prompter.ConfirmSharedSerial(serial, conflictID)
		if err != nil {
			return fmt.Errorf("failed to confirm shared serial: %w", err)
		}
		if !accepted {
			return &DuplicateSerialError{SerialNumber: serial, GroupID: conflictID, Declined: true}
		}
		m.log.Info("operator accepted shared serial", "serial", serial, "conflict_group", conflictID)
	}

	return nil
}

// nextGroupID computes max(existing numeric IDs)+1. Identifiers of removed
// groups are not reused until the renumbering pass collapses everything back
// to 1..N.
func nextGroupID(config *StorageConfiguration) string {
	max := 0
	for id := range config.Groups {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// renumber re-keys all groups to contiguous "1".."N" preserving their
// relative numeric order. Called only from the mutation persistence path,
// never from a plain load.
func renumber(config *StorageConfiguration) {
	ids := config.Groups.SortedIDs()
	renumbered := make(GroupMap, len(ids))
	for i, id := range ids {
		renumbered[strconv.Itoa(i+1)] = config.Groups[id]
	}
	config.Groups = renumbered
}
