// Package doctor runs local environment diagnostics: is ssh installed, is the
// fuzzy selector installed, does the SSH config actually yield hosts.
package doctor

import (
	"fmt"
	"os/exec"

	"sshsel/internal/appconfig"
	"sshsel/internal/config"
	"sshsel/internal/sshclient"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Issue struct {
	Severity       Severity `json:"severity"`
	Check          string   `json:"check"`
	Target         string   `json:"target"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// Run executes local diagnostics for sshsel operations.
func Run(cfg appconfig.Config) (Report, error) {
	var issues []Issue

	if err := sshclient.EnsureSSHBinary(); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "ssh-binary",
			Target:         "PATH",
			Message:        err.Error(),
			Recommendation: "install OpenSSH client and ensure `ssh` is on PATH",
		})
	}

	if _, err := exec.LookPath(cfg.Selector.Command); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "selector-binary",
			Target:         cfg.Selector.Command,
			Message:        fmt.Sprintf("selector %q not found in PATH", cfg.Selector.Command),
			Recommendation: "install fzf (or set selector.command) — `browse` works without it",
		})
	}

	path := cfg.SSHConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return Report{Issues: issues}, err
		}
	}

	hosts, warnings := config.LoadHosts(path)
	for _, w := range warnings {
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "config-warning",
			Target:         path,
			Message:        w,
			Recommendation: "fix the Include directive or remove the stale pattern",
		})
	}
	if len(hosts) == 0 {
		issues = append(issues, Issue{
			Severity:       SeverityLow,
			Check:          "host-table",
			Target:         path,
			Message:        "no selectable hosts found",
			Recommendation: "add Host blocks with a concrete alias and a HostName",
		})
	}

	return Report{Issues: issues}, nil
}
