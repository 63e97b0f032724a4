// Package selector drives the interactive fuzzy host picker. The external
// process (fzf) is hidden behind a narrow Runner interface so the selection
// flow is testable without a terminal.
package selector

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"sshsel/internal/model"
)

// ErrSelectorUnavailable is returned when the selector binary is missing or
// cannot be started. This is an environment failure and is deliberately
// distinct from user cancellation, which yields no result and no error.
var ErrSelectorUnavailable = errors.New("selector unavailable")

// Runner launches the interactive picker with the rendered table on its input
// and returns the raw captured output. Empty output means the user cancelled.
type Runner interface {
	Run(table string, query string) (string, error)
}

// Options configures one selection pass.
type Options struct {
	// Query preloads the picker's filter field (typically the partial word
	// under the shell cursor).
	Query string
	// PrimaryAcceptKey maps to ModeConfirm; any other accepted key maps to
	// ModeStage.
	PrimaryAcceptKey string
	// AcceptKeys are all keys that terminate the picker with a selection.
	AcceptKeys []string
}

// DefaultOptions returns the stock enter/alt-enter binding set.
func DefaultOptions() Options {
	return Options{
		PrimaryAcceptKey: "enter",
		AcceptKeys:       []string{"enter", "alt-enter"},
	}
}

// Select renders the host table, hands it to the runner and decodes the
// output. A nil return with nil error means no selection was made (empty
// table, cancellation, or unusable output).
func Select(r Runner, hosts []model.HostRecord, opts Options) (*model.Selection, error) {
	if len(hosts) == 0 {
		return nil, nil
	}
	raw, err := r.Run(RenderTable(hosts), opts.Query)
	if err != nil {
		return nil, err
	}
	return Decode(raw, opts.PrimaryAcceptKey), nil
}

// RenderTable formats the records as a column-aligned table with a two-row
// header. The alias is always the first field of a row, which is what the
// decoder relies on.
func RenderTable(hosts []model.HostRecord) string {
	aliasW, hostW, userW := len("Alias"), len("Hostname"), len("User")
	for _, h := range hosts {
		aliasW = max(aliasW, len(h.Alias))
		hostW = max(hostW, len(h.HostName))
		userW = max(userW, len(h.User))
	}

	var b strings.Builder
	row := func(alias, host, user, desc string) {
		fmt.Fprintf(&b, "%-*s  %-*s  %-*s  %s\n", aliasW, alias, hostW, host, userW, user, desc)
	}
	row("Alias", "Hostname", "User", "Description")
	row(strings.Repeat("-", aliasW), strings.Repeat("-", hostW), strings.Repeat("-", userW), strings.Repeat("-", len("Description")))
	for _, h := range hosts {
		row(h.Alias, h.HostName, h.User, h.Description)
	}
	return b.String()
}

// FzfRunner launches fzf with the table on stdin. The preview pane resolves
// the highlighted host's effective directives by re-invoking this binary's
// hidden preview subcommand, which shells out to `ssh -G`.
type FzfRunner struct {
	// Binary is the selector executable name, "fzf" by default.
	Binary string
	// PreviewCommand is the preview template, e.g. "sshsel preview {1}".
	// Empty disables the preview pane.
	PreviewCommand string
	// ExtraArgs are appended verbatim after the composed flags.
	ExtraArgs []string
	// Options carries the accept-key bindings for --expect.
	Options Options
}

// NewFzfRunner builds the production runner, pointing the preview template at
// the current executable so the picker works regardless of install location.
func NewFzfRunner(opts Options) *FzfRunner {
	preview := ""
	if exe, err := os.Executable(); err == nil {
		preview = fmt.Sprintf("%s preview {1}", exe)
	}
	return &FzfRunner{Binary: "fzf", PreviewCommand: preview, Options: opts}
}

// Args composes the fzf argument list. Split out from Run so flag composition
// is unit-testable without executing anything.
func (f *FzfRunner) Args(query string) []string {
	args := []string{
		"--header-lines=2",
		"--query=" + query,
		"--expect=" + strings.Join(f.Options.AcceptKeys, ","),
		"--bind=alt-j:down,alt-k:up",
		"--bind=bspace:backward-delete-char/eof",
	}
	if f.PreviewCommand != "" {
		args = append(args, "--preview="+f.PreviewCommand)
	}
	return append(args, f.ExtraArgs...)
}

// Run executes fzf interactively. The picker owns the terminal via stderr;
// stdout carries the two-line result (accepted key, selected row).
func (f *FzfRunner) Run(table, query string) (string, error) {
	bin := f.Binary
	if bin == "" {
		bin = "fzf"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %q not found in PATH", ErrSelectorUnavailable, bin)
	}

	cmd := exec.Command(path, f.Args(query)...)
	cmd.Stdin = strings.NewReader(table)
	cmd.Stderr = os.Stderr
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// fzf exits non-zero on abort; empty output is a cancellation,
			// anything else is still decodable.
			if strings.TrimSpace(out.String()) == "" {
				return "", nil
			}
			return out.String(), nil
		}
		return "", fmt.Errorf("%w: %v", ErrSelectorUnavailable, err)
	}
	return out.String(), nil
}
