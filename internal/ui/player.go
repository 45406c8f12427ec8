package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"remotetv/internal/config"
	"remotetv/internal/domain"
)

// ErrNoPlayer is returned when no external player is configured or found
var ErrNoPlayer = errors.New("no player configured")

// ErrNoStream is returned for items without a playable URL
var ErrNoStream = errors.New("item has no stream url")

// Player runs the configured external media player on an item's stream
type Player struct {
	log     *zap.Logger
	program *tea.Program // reference to Bubble Tea program for terminal management
	command string
	args    []string
}

// NewPlayer creates a player from config. REMOTETV_PLAYER_BIN overrides
// the configured command.
func NewPlayer(log *zap.Logger, cfg config.PlayerSettings) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	command := cfg.Command
	if bin := os.Getenv("REMOTETV_PLAYER_BIN"); bin != "" {
		command = bin
	}
	return &Player{log: log, command: command, args: cfg.Args}
}

// SetProgram sets the program reference for terminal management
func (p *Player) SetProgram(program *tea.Program) {
	p.program = program
}

// Available reports whether the player binary can be run
func (p *Player) Available() bool {
	if p.command == "" {
		return false
	}
	if _, err := exec.LookPath(p.command); err == nil {
		return true
	}
	// An absolute path outside PATH may still be executable
	_, err := os.Stat(p.command)
	return err == nil
}

// Play hands the terminal to the player and returns how long it ran
func (p *Player) Play(item domain.MediaItem) (int, error) {
	if !p.Available() {
		return 0, ErrNoPlayer
	}
	src := item.StreamURL
	if src == "" {
		src = item.TrailerURL
	}
	if src == "" {
		return 0, ErrNoStream
	}
	if p.program == nil {
		return 0, fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return 0, err
	}
	defer func() {
		// Clear screen to reduce visual artifacts when returning
		fmt.Print("\x1b[2J\x1b[H")
		time.Sleep(150 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	args := append(append([]string{}, p.args...), src)
	cmd := exec.Command(p.command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr

	started := time.Now()
	p.log.Info("starting player", zap.String("command", p.command), zap.String("title", item.Title))
	err := cmd.Run()
	return int(time.Since(started).Seconds()), err
}
