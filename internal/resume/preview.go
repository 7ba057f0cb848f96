package resume

import "strings"

const previewLines = 2

// Preview joins the first two non-blank lines of text with a space and
// appends "..." when more non-blank lines follow.
func Preview(text string) string {
	var kept []string
	more := false
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(kept) == previewLines {
			more = true
			break
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, " ")
	if more {
		out += "..."
	}
	return out
}

// CanGenerate gates the generate button: name, role, years and experience
// must all be non-empty. Company is deliberately not part of the gate.
func CanGenerate(f GenerateForm) bool {
	return f.Name != "" && f.Role != "" && f.Years != "" && f.Experience != ""
}
