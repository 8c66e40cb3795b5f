package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// FileChange describes how a dry run would change one file.
type FileChange struct {
	Path   string
	Status string
	Diff   string
}

// RenderChanges renders the report printed by a dry run.
func RenderChanges(changes []FileChange) string {
	styles := GetStyles()

	var added, modified []FileChange
	for _, c := range changes {
		switch c.Status {
		case StatusCreated:
			added = append(added, c)
		case StatusModified:
			modified = append(modified, c)
		}
	}
	if len(added) == 0 && len(modified) == 0 {
		return "No changes detected.\n"
	}

	var sb strings.Builder
	if len(added) > 0 {
		sb.WriteString(styles.Success.Render("Added:"))
		sb.WriteString("\n")
		for _, c := range added {
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(c.Path))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	if len(modified) > 0 {
		sb.WriteString(styles.Warning.Render("Modified:"))
		sb.WriteString("\n")
		for _, c := range modified {
			sb.WriteString("  ~ ")
			sb.WriteString(styles.Warning.Render(c.Path))
			sb.WriteString("\n")
			sb.WriteString(IndentDiff(c.Diff, "    "))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Summary: %d added, %d modified\n", len(added), len(modified))
	return sb.String()
}

// IndentDiff indents every non-empty line of diff.
func IndentDiff(diff, indent string) string {
	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// StructuredDiff compares two JSON or YAML documents and returns a human
// readable report of the differences, or "" when they are equal.
func StructuredDiff(name string, before, after []byte) (string, error) {
	from, err := loadInput(name+" (current)", before)
	if err != nil {
		return "", fmt.Errorf("parsing current %s: %w", name, err)
	}
	to, err := loadInput(name+" (generated)", after)
	if err != nil {
		return "", fmt.Errorf("parsing generated %s: %w", name, err)
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		return "", fmt.Errorf("comparing %s: %w", name, err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      true,
		OmitHeader:        true,
	}
	if err := writer.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func loadInput(location string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: location}, nil
	}
	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: location, Documents: docs}, nil
}
