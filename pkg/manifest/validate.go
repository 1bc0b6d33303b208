package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Validate inspects the document at path without normalising it away:
// structural problems and duplicate destinations are errors. Missing
// sources and unknown platform tags are warnings.
func Validate(filesystem types.FS, path, repoRoot string) []types.Issue {
	doc := filepath.Base(path)
	var issues []types.Issue

	data, err := filesystem.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Issue{{Document: doc, Severity: types.SeverityWarning, Message: "manifest not found, nothing is tracked"}}
		}
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Message: err.Error()}}
	}

	raw, err := decode(data)
	if err != nil {
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Message: err.Error()}}
	}

	seen := make(map[string]int)
	for _, r := range raw {
		entry, err := toEntry(r)
		if err != nil {
			issues = append(issues, types.Issue{Document: doc, Severity: types.SeverityError, Line: r.line, Message: err.Error()})
			continue
		}

		if first, dup := seen[entry.Dest]; dup {
			issues = append(issues, types.Issue{
				Document: doc,
				Severity: types.SeverityError,
				Line:     r.line,
				Message:  fmt.Sprintf("duplicate dest %s (first defined at line %d)", entry.DisplayDest(), first),
			})
		} else {
			seen[entry.Dest] = r.line
		}

		if !entry.Platform.Known() {
			issues = append(issues, types.Issue{
				Document: doc,
				Severity: types.SeverityWarning,
				Line:     r.line,
				Message:  fmt.Sprintf("unknown platform %q, entry never applies here", string(entry.Platform)),
			})
		}

		if _, err := filesystem.Lstat(filepath.Join(repoRoot, filepath.FromSlash(entry.Source))); err != nil {
			issues = append(issues, types.Issue{
				Document: doc,
				Severity: types.SeverityWarning,
				Line:     r.line,
				Message:  fmt.Sprintf("source not found: %s", entry.Source),
			})
		}
	}
	return issues
}
