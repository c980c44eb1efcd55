// Package adb implements the platform backends over the Android Debug
// Bridge. The privileged channel is `adb shell`; the hierarchy source wraps
// `uiautomator dump`; screenshots come from `screencap`. Gesture injection
// and global actions are in-process accessibility primitives with no adb
// equivalent, so this backend leaves them nil.
package adb

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// commandTimeout bounds every adb invocation so a wedged device cannot hang
// a request handler.
const commandTimeout = 10 * time.Second

// Shell runs device commands through `adb shell`.
type Shell struct {
	ADB    string
	Serial string
}

// NewShell returns a Shell using the given adb binary and device serial.
// An empty path falls back to "adb" on PATH.
func NewShell(adbPath, serial string) *Shell {
	if adbPath == "" {
		adbPath = "adb"
	}
	return &Shell{ADB: adbPath, Serial: serial}
}

// Run executes `adb shell args...` and returns nil on zero exit status.
func (s *Shell) Run(ctx context.Context, args ...string) error {
	_, err := s.exec(ctx, append([]string{"shell"}, args...)...)
	return err
}

// exec runs an arbitrary adb subcommand and returns its stdout.
func (s *Shell) exec(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	argv := []string{}
	if s.Serial != "" {
		argv = append(argv, "-s", s.Serial)
	}
	argv = append(argv, args...)

	cmd := exec.CommandContext(ctx, s.ADB, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("adb %s: %w (%s)", args[0], err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
