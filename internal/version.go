// Package internal provides version information and build metadata for the
// drivekeeper application.
//
// This module centralizes all version-related constants and provides
// formatted strings for consistent display across the application. To update
// the version, change the AppVersion constant - all other version strings
// will be automatically updated.
package internal

// Application metadata constants.
const (
	// AppName is the official name of the application
	AppName = "drivekeeper"

	// AppVersion follows semantic versioning (major.minor.patch)
	AppVersion = "0.3.1"

	// AppDesc is the tagline used in UI and documentation
	AppDesc = "Serial-Number Anchored Storage Group Manager"
)

// GetVersionString returns just the version number for programmatic use.
func GetVersionString() string {
	return AppVersion
}

// GetFullVersionString returns the application name with version for display.
// Example: "drivekeeper v0.3.1"
func GetFullVersionString() string {
	return AppName + " v" + AppVersion
}

// GetAppTitle returns the complete application title including description.
func GetAppTitle() string {
	return AppName + " v" + AppVersion + " - " + AppDesc
}
