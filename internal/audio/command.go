package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/minicodemonkey/birthday/internal/melody"
)

// playerCommand is a system audio player that takes a WAV path.
type playerCommand struct {
	name string
	args func(path string) []string
}

// playerCommands returns the command-line players to probe for goos, in order.
func playerCommands(goos string) []playerCommand {
	switch goos {
	case "darwin":
		return []playerCommand{
			{"afplay", func(p string) []string { return []string{p} }},
		}
	case "windows":
		return []playerCommand{
			{"powershell", func(p string) []string {
				script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(p, "'", "''"))
				return []string{"-NoProfile", "-NonInteractive", "-Command", script}
			}},
		}
	default:
		return []playerCommand{
			{"aplay", func(p string) []string { return []string{"-q", p} }},
			{"paplay", func(p string) []string { return []string{p} }},
			{"ffplay", func(p string) []string { return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", p} }},
		}
	}
}

// lookPath is exec.LookPath, replaceable in tests.
var lookPath = exec.LookPath

// CommandPlayer writes the waveform to a temporary WAV file and plays it with
// a system player.
type CommandPlayer struct {
	path string
	cmd  playerCommand
}

// NewCommandPlayer returns a player for the first system player found on PATH.
func NewCommandPlayer() (*CommandPlayer, error) {
	return newCommandPlayer(runtime.GOOS)
}

func newCommandPlayer(goos string) (*CommandPlayer, error) {
	var tried []string
	for _, c := range playerCommands(goos) {
		path, err := lookPath(c.name)
		if err != nil {
			tried = append(tried, c.name)
			continue
		}
		return &CommandPlayer{path: path, cmd: c}, nil
	}
	return nil, fmt.Errorf("no command-line player found (tried %s)", strings.Join(tried, ", "))
}

// Name implements Player.
func (p *CommandPlayer) Name() string { return BackendCommand + ":" + p.cmd.name }

// Play implements Player.
func (p *CommandPlayer) Play(ctx context.Context, w melody.Waveform) error {
	f, err := os.CreateTemp("", "birthday-*.wav")
	if err != nil {
		return fmt.Errorf("failed to create temp WAV: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := EncodeWAV(f, w); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write temp WAV: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.path, p.cmd.args(tmp)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", p.cmd.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
