package assets

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// CommandRunner runs an external command and returns its combined output
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - name is fixed by SudoEscalator, args are a directory path and uid:gid
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// SudoEscalator creates the install directory through non-interactive sudo
// and hands it to the current user. It never prompts: without cached
// credentials or a NOPASSWD rule it fails.
type SudoEscalator struct {
	run CommandRunner
	uid int
	gid int
}

// NewSudoEscalator creates an escalator acting for the current user
func NewSudoEscalator() *SudoEscalator {
	return &SudoEscalator{run: execRunner, uid: os.Getuid(), gid: os.Getgid()}
}

// Escalate makes dir exist and be owned by the current user
func (e *SudoEscalator) Escalate(ctx context.Context, dir string) error {
	if e.uid < 0 {
		return fmt.Errorf("privilege escalation is not supported on this platform")
	}

	steps := [][]string{
		{"-n", "mkdir", "-p", dir},
		{"-n", "chown", "-R", fmt.Sprintf("%d:%d", e.uid, e.gid), dir},
	}
	for _, args := range steps {
		out, err := e.run(ctx, "sudo", args...)
		if err != nil {
			return fmt.Errorf("sudo %s: %w: %s", args[1], err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}

// Ensure SudoEscalator implements ports.Escalator
var _ ports.Escalator = (*SudoEscalator)(nil)
