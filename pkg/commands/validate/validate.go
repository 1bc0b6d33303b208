// Package validate checks every repository document the tool reads.
package validate

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/publish"
	"github.com/dotfiles-cli/dotfiles/pkg/config"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/manifest"
	"github.com/dotfiles-cli/dotfiles/pkg/packages"
	"github.com/dotfiles-cli/dotfiles/pkg/templates"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Document is the validation outcome for one file.
type Document struct {
	Name    string
	Path    string
	Present bool

	// Optional documents may be absent without a finding
	Optional bool
	Issues   []types.Issue
}

// Valid reports whether the document has no error findings
func (d Document) Valid() bool {
	return types.CountErrors(d.Issues) == 0
}

// Report collects the outcome for every document.
type Report struct {
	Documents []Document
}

// Errors counts error findings across all documents
func (r *Report) Errors() int {
	n := 0
	for _, d := range r.Documents {
		n += types.CountErrors(d.Issues)
	}
	return n
}

// Warnings counts warning findings across all documents
func (r *Report) Warnings() int {
	n := 0
	for _, d := range r.Documents {
		n += len(d.Issues) - types.CountErrors(d.Issues)
	}
	return n
}

// OK reports whether no document has an error finding
func (r *Report) OK() bool {
	return r.Errors() == 0
}

// ValidateOptions holds options for the validate operation
type ValidateOptions struct {
	Env *commands.Env
}

// Validate checks files.yaml, publish.yaml, packages.yaml, vars.yaml and
// dotfiles.toml. Findings are reported, never returned as errors.
func Validate(ctx context.Context, opts ValidateOptions) (*Report, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.validate")
	done := logging.LogOperationStart(logger, "validate")
	defer done()

	p := env.Paths
	report := &Report{}
	check := func(path string, optional bool, fn func(string) []types.Issue) {
		d := Document{Name: filepath.Base(path), Path: path, Optional: optional, Present: env.Exists(path)}
		if d.Present || !optional {
			d.Issues = fn(path)
		}
		report.Documents = append(report.Documents, d)
	}

	check(p.ManifestPath(), false, func(path string) []types.Issue {
		return manifest.Validate(env.FS, path, p.DotfilesRoot())
	})
	check(p.PublishPath(), true, func(path string) []types.Issue {
		return validatePublish(env, path)
	})
	check(p.PackagesPath(), true, func(path string) []types.Issue {
		return packages.Validate(env.FS, path)
	})
	check(p.VarsPath(), true, func(path string) []types.Issue {
		return templates.Validate(env.FS, path)
	})
	check(p.SettingsPath(), true, func(path string) []types.Issue {
		if _, err := config.LoadFile(path); err != nil {
			return []types.Issue{{Document: filepath.Base(path), Severity: types.SeverityError, Message: err.Error()}}
		}
		return nil
	})

	logger.Info().Int("errors", report.Errors()).Int("warnings", report.Warnings()).Msg("validation finished")
	return report, nil
}

func validatePublish(env *commands.Env, path string) []types.Issue {
	name := filepath.Base(path)
	doc, err := publish.LoadDocument(env.FS, path)
	if err != nil {
		return []types.Issue{{Document: name, Severity: types.SeverityError, Message: err.Error()}}
	}
	var issues []types.Issue
	if repo := doc.PublicRepo; repo != "" && !strings.HasPrefix(repo, "http") && !strings.HasPrefix(repo, "git@") {
		issues = append(issues, types.Issue{Document: name, Severity: types.SeverityWarning, Message: "public_repo looks invalid: " + repo})
	}
	for _, p := range doc.Exclude {
		if strings.TrimSpace(p) == "" {
			issues = append(issues, types.Issue{Document: name, Severity: types.SeverityWarning, Message: "empty exclude pattern"})
		}
	}
	return issues
}
