// Package sshclient shells out to the system ssh binary. It does NOT
// implement the SSH protocol; by handing ssh the host alias we inherit the
// user's full configuration (keys, agents, ProxyJump chains) for free.
//
// Two operations matter here:
//
//   - ResolveConfig runs `ssh -G <alias>`, the non-interactive config dump,
//     and filters it down to the directives worth showing in a preview pane.
//
//   - RunInteractive attaches a PTY to `ssh <alias>` for the connect command.
//
// All arguments go through exec.Command argv, never a shell, so aliases with
// metacharacters cannot inject anything.
package sshclient

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
)

// Client launches ssh processes. It is stateless and safe for concurrent use.
type Client struct {
	// Binary overrides the ssh executable name; empty means "ssh".
	Binary string
}

// New creates a client using the system ssh binary.
func New() *Client { return &Client{} }

func (c *Client) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	return "ssh"
}

// EnsureSSHBinary checks that ssh is reachable on PATH, so callers can fail
// with a clear message up front instead of a confusing exec error later.
func EnsureSSHBinary() error {
	if _, err := exec.LookPath("ssh"); err != nil {
		return fmt.Errorf("ssh binary not found in PATH")
	}
	return nil
}

// previewDirectives is the allow-list of `ssh -G` output keys shown in the
// selector's preview pane: identity, endpoint and forwarding directives.
// Everything else in the dump (ciphers, kex lists, dozens of defaults) is
// noise at selection time.
var previewDirectives = map[string]string{
	"user":           "User",
	"hostname":       "HostName",
	"port":           "Port",
	"identityfile":   "IdentityFile",
	"proxyjump":      "ProxyJump",
	"proxycommand":   "ProxyCommand",
	"localforward":   "LocalForward",
	"remoteforward":  "RemoteForward",
	"dynamicforward": "DynamicForward",
	"forwardagent":   "ForwardAgent",
}

// ResolveConfig dumps the effective configuration for alias via `ssh -G` and
// returns the filtered, recapitalized directive lines. Any failure yields an
// empty slice: a broken preview must never take the selector down with it.
func (c *Client) ResolveConfig(alias string) []string {
	out, err := exec.Command(c.binary(), "-G", alias).Output()
	if err != nil {
		return nil
	}
	return FilterDirectives(string(out))
}

// FilterDirectives keeps the allow-listed lines of an `ssh -G` dump and
// rewrites each with its canonical capitalized directive name.
func FilterDirectives(dump string) []string {
	var kept []string
	for _, line := range strings.Split(dump, "\n") {
		name, rest, ok := strings.Cut(strings.TrimSpace(line), " ")
		if !ok {
			continue
		}
		canonical, listed := previewDirectives[strings.ToLower(name)]
		if !listed {
			continue
		}
		kept = append(kept, canonical+" "+rest)
	}
	return kept
}

// ConnectCommand builds the exec.Cmd for an interactive session. Using the
// alias as the destination lets OpenSSH resolve HostName, User, Port and the
// rest from the user's own config.
func (c *Client) ConnectCommand(alias string) *exec.Cmd {
	return exec.Command(c.binary(), alias)
}

// RunInteractive starts `ssh <alias>` inside a PTY and wires it to the user's
// terminal. Blocks until the session ends; cancelling ctx kills the process.
func (c *Client) RunInteractive(ctx context.Context, alias string) error {
	cmd := c.ConnectCommand(alias)

	f, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer f.Close()

	// Keystrokes flow into the PTY master until it closes with the session.
	go func() {
		_, _ = io.Copy(f, os.Stdin)
	}()

	_, _ = io.Copy(os.Stdout, f)

	if ctx.Err() != nil {
		_ = cmd.Process.Kill()
	}
	return cmd.Wait()
}
