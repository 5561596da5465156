// Package main implements the entry point for drivekeeper.
//
// This package handles:
//   - Configuration loading and first-run detection
//   - Live device enumeration and serial-based reconciliation
//   - Status, device, and registry reporting on the terminal
//   - Interactive vs non-interactive duplicate-serial policy wiring
//
// The heavy lifting lives in internal/storage (group lifecycle, validation,
// persistence) and internal/devices (platform enumerators). This entry point
// wires them together and renders the results; richer interactive menus are
// expected to be built on the same library surface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"drivekeeper/internal"
	"drivekeeper/internal/devices"
	"drivekeeper/internal/storage"
	"drivekeeper/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to the storage configuration file (default: ~/.config/drivekeeper/storage.json)")
	nonInteractive := flag.Bool("non-interactive", false, "reject cross-group duplicate serials instead of prompting")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(internal.GetFullVersionString())
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	path := *configPath
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			fmt.Printf("❌ Failed to resolve configuration path: %v\n", err)
			os.Exit(1)
		}
	}

	var prompter storage.ConflictPrompter
	if !*nonInteractive {
		prompter = ui.ConfirmPrompter{}
	}

	enum := devices.NewEnumerator()
	manager := storage.NewManager(storage.NewStore(path), enum, prompter, logger)

	command := flag.Arg(0)
	if command == "" {
		command = "status"
	}

	switch command {
	case "status":
		runStatus(manager)
	case "devices":
		runDevices(enum)
	case "registry":
		runRegistry(manager)
	default:
		fmt.Printf("❌ Unknown command: %s\n", command)
		fmt.Println("💡 Available commands: status, devices, registry")
		os.Exit(1)
	}
}

// runStatus loads the configuration, reconciles it against live devices, and
// prints the group overview with any validation issues.
func runStatus(manager *storage.Manager) {
	issues, err := manager.Startup()
	if err != nil {
		fmt.Printf("❌ Startup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(ui.RenderGroups(manager.Config()))
	fmt.Println()
	fmt.Println(ui.RenderIssues(issues))
}

// runDevices prints the current enumeration result.
func runDevices(enum devices.Enumerator) {
	devs, err := enum.ListDevices()
	if err != nil {
		fmt.Printf("❌ Device enumeration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(ui.RenderDevices(devs))
}

// runRegistry reconciles and dumps the diagnostic registry as JSON.
func runRegistry(manager *storage.Manager) {
	if _, err := manager.Startup(); err != nil {
		fmt.Printf("❌ Startup failed: %v\n", err)
		os.Exit(1)
	}

	data, err := manager.Registry().Export()
	if err != nil {
		fmt.Printf("❌ Registry export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
