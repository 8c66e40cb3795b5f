package installer

import (
	"fmt"
	"strings"
)

// Style decorates a command for display.
type Style func(string) string

func plain(s string) string { return s }

// FormatList renders "<name> install" for each name joined in natural
// language: "a", "a and b", "a, b, and c".
func FormatList(names []string, style Style) string {
	if style == nil {
		style = plain
	}
	items := make([]string, len(names))
	for i, name := range names {
		items[i] = style(name + " install")
	}

	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// InstallMessage announces the commands about to run. It is empty when n is 0.
func InstallMessage(list string, n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("Running %s to install the required dependencies. If this fails, try running the command%s yourself.", list, plural(n))
}

// SkipMessage lists the disabled commands. It is empty when n is 0.
func SkipMessage(list string, n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("Skipping %s. When you are ready  to install these dependencies, run the command%s yourself.", list, plural(n))
}

// Summary combines the install and skip messages, separated and surrounded
// by blank lines. It is empty when both lists are.
func Summary(run, skipped []string, runStyle, skipStyle Style) string {
	if len(run) == 0 && len(skipped) == 0 {
		return ""
	}
	var parts []string
	if msg := InstallMessage(FormatList(run, runStyle), len(run)); msg != "" {
		parts = append(parts, msg)
	}
	if msg := SkipMessage(FormatList(skipped, skipStyle), len(skipped)); msg != "" {
		parts = append(parts, msg)
	}
	return "\n\n" + strings.Join(parts, "\n\n") + "\n\n"
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
