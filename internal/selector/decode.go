package selector

import (
	"strings"

	"sshsel/internal/model"
)

// Decode interprets the picker's raw captured output: line 1 names the accept
// key that terminated it, the last line is the selected table row. The alias
// is the row's first whitespace-delimited field, which the renderer
// guarantees. Anything missing or unparsable decodes to nil, the same shape
// as a cancellation.
func Decode(raw, primaryAcceptKey string) *model.Selection {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) < 2 {
		return nil
	}
	key := strings.TrimSpace(lines[0])
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) == 0 {
		return nil
	}

	mode := model.ModeStage
	// fzf emits an empty first line when plain enter is not listed in
	// --expect; treat that the same as the primary key.
	if key == "" || key == primaryAcceptKey {
		mode = model.ModeConfirm
	}
	return &model.Selection{Mode: mode, Alias: fields[0]}
}
