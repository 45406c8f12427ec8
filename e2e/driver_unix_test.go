//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// scrollback is how much PTY output a test keeps
const scrollback = 1 << 20

// binPath is replaced with an absolute path by TestMain
var binPath = "remotetv_e2e"

// Keys as the terminal sends them
const (
	KeyEnter    = "\r"
	KeyCtrlC    = "\x03"
	KeyEsc      = "\x1b"
	KeyRight    = "\x1b[C"
	KeyQuit     = "q"
	KeyHelp     = "?"
	KeyNextPage = "]"
	KeyPrevPage = "["
)

// escapes matches the control sequences stripped before plain-text matching
var escapes = regexp.MustCompile(
	`\x1b\[[0-9;?]*[ -/]*[@-~]` +
		`|\x1b\][^\x07]*\x07` +
		`|\x1b[()][A-Za-z]` +
		`|\x1b[=>]` +
		`|\r`,
)

// TUITestFramework drives one remotetv process through a PTY
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string
	tmdb      *fakeTMDB

	mu  sync.Mutex
	out []byte
}

// NewTUITest returns a driver bound to t
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t}
}

// StartApp runs the app in a 120x40 PTY with $HOME and the XDG dirs inside
// the test workspace
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"XDG_CACHE_HOME="+filepath.Join(tf.workspace, ".cache"),
		"REMOTETV_E2E_TEST=1",
		"REMOTETV_PLAYER_BIN=",
	)

	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("open pty: %w", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("size pty: %w", err)
	}
	tf.pty, tf.tty = ptmx, tty
	tf.cmd.Stdin, tf.cmd.Stdout, tf.cmd.Stderr = tty, tty, tty

	if err := tf.cmd.Start(); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("start %s: %w", binPath, err)
	}
	go tf.capture(ptmx)
	return nil
}

func (tf *TUITestFramework) capture(r *os.File) {
	buf := make([]byte, 8192)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			tf.mu.Lock()
			tf.out = append(tf.out, buf[:n]...)
			if over := len(tf.out) - scrollback; over > 0 {
				tf.out = tf.out[over:]
			}
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw input to the app
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }
func (tf *TUITestFramework) Quit() error      { return tf.SendKeys(KeyQuit) }
func (tf *TUITestFramework) NextPage() error  { return tf.SendKeys(KeyNextPage) }
func (tf *TUITestFramework) PrevPage() error  { return tf.SendKeys(KeyPrevPage) }
func (tf *TUITestFramework) OpenHelp() error  { return tf.SendKeys(KeyHelp) }
func (tf *TUITestFramework) Back() error      { return tf.SendKeys(KeyEsc) }
func (tf *TUITestFramework) Enter() error     { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) Right() error     { return tf.SendKeys(KeyRight) }

// Ready waits for the footer marker the app prints under REMOTETV_E2E_TEST
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.waitFor(func(s string) bool { return strings.Contains(s, "__READY__") }, 5*time.Second)
}

// SeePlain waits up to three seconds for text in the escape-stripped output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.waitFor(func(s string) bool {
		return strings.Contains(escapes.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

func (tf *TUITestFramework) waitFor(pred func(string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for !pred(tf.snapshot()) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
	return true
}

func (tf *TUITestFramework) snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return string(tf.out)
}

// DumpTailOnFail writes the last n bytes of plain output under t's temp dir
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	t.Helper()
	s := escapes.ReplaceAllString(tf.snapshot(), "")
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), strings.ReplaceAll(name, " ", "-")+".txt")
	if err := os.WriteFile(p, []byte(s), 0o644); err != nil {
		t.Logf("dump output: %v", err)
		return
	}
	t.Logf("output tail saved to %s", p)
}

// Cleanup closes the PTY (delivering SIGHUP), kills the app if it is
// still running and removes the workspace
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.tmdb != nil {
		tf.tmdb.Close()
		tf.tmdb = nil
	}
	if tf.workspace != "" {
		_ = os.RemoveAll(tf.workspace)
		tf.workspace = ""
	}
}
