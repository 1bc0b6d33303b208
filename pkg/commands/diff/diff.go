package diff

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/reconcile"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/pmezard/go-difflib/difflib"
)

// Item is the comparison of one entry.
type Item struct {
	Entry         types.FileEntry
	Status        types.Status
	SourceMissing bool

	// Content is filled in full mode: a unified diff for files or a list
	// of differences for directories
	Content string
}

// InSync reports whether nothing needs to change for this entry
func (i Item) InSync() bool {
	return !i.SourceMissing && i.Status == types.StatusOK
}

// Report is the result of a diff run.
type Report struct {
	Items   []Item
	Drifted int

	// GitChanges holds the repository's uncommitted changes, one porcelain
	// line each. It is nil when the repository is not under git.
	GitChanges []string
	GitTracked bool
}

// DiffOptions holds options for the diff command
type DiffOptions struct {
	Env *commands.Env

	// Full computes content differences
	Full bool

	// File limits the run to the entry whose dest or source matches
	File string
}

// Diff checks every applicable entry without touching anything. Uncommitted
// repository changes are included when git is available.
func Diff(ctx context.Context, opts DiffOptions) (*Report, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.diff")
	done := logging.LogOperationStart(logger, "diff")
	defer done()

	m, err := env.LoadManifest()
	if err != nil {
		return nil, err
	}

	entries := env.Applicable(m)
	if opts.File != "" {
		entries = filter(env, entries, opts.File)
		if len(entries) == 0 {
			return nil, errors.Newf(errors.ErrNotTracked, "not tracked: %s", opts.File).WithDetail("file", opts.File)
		}
	}

	set := env.Reconcilers()
	report := &Report{}
	for _, entry := range entries {
		item, err := check(env, set, entry, opts.Full)
		if err != nil {
			return nil, err
		}
		if !item.InSync() {
			report.Drifted++
		}
		report.Items = append(report.Items, item)
	}

	if opts.File == "" {
		report.GitChanges, report.GitTracked = gitChanges(ctx, env)
	}

	logger.Debug().Int("entries", len(report.Items)).Int("drifted", report.Drifted).Msg("diff computed")
	return report, nil
}

func gitChanges(ctx context.Context, env *commands.Env) ([]string, bool) {
	repo := env.Git()
	if !repo.IsRepo(ctx) {
		return nil, false
	}
	status, err := repo.Status(ctx)
	if err != nil {
		logger := logging.GetLogger("commands.diff")
		logger.Warn().Err(err).Msg("cannot read git status")
		return nil, false
	}
	if status == "" {
		return []string{}, true
	}
	return strings.Split(status, "\n"), true
}

func filter(env *commands.Env, entries []types.FileEntry, file string) []types.FileEntry {
	key, err := env.DestKey(file)
	if err != nil {
		key = types.NormalizeRelPath(file)
	}
	source := types.NormalizeRelPath(file)

	var out []types.FileEntry
	for _, e := range entries {
		if e.Dest == key || e.Source == source {
			out = append(out, e)
		}
	}
	return out
}

func check(env *commands.Env, set *reconcile.Set, entry types.FileEntry, full bool) (Item, error) {
	item := Item{Entry: entry}
	source, dest := env.SourcePath(entry), env.DestPath(entry)

	if _, err := env.FS.Stat(source); err != nil {
		item.SourceMissing = true
	}

	r, err := set.For(entry.Kind)
	if err != nil {
		return item, err
	}
	item.Status = r.Check(source, dest)

	if !full || item.SourceMissing || item.Status == types.StatusOK || item.Status == types.StatusMissing {
		return item, nil
	}
	// a link pointing elsewhere has no content of its own to compare
	if entry.Kind == types.KindSymlink && env.IsLink(dest) {
		return item, nil
	}

	item.Content, err = contentDiff(env.FS, dest, source, entry.DisplayDest(), entry.Source)
	return item, err
}

// contentDiff compares the home copy (a) against the repository copy (b).
func contentDiff(fs types.FS, a, b, aName, bName string) (string, error) {
	ia, err := fs.Stat(a)
	if err != nil {
		return "", nil
	}
	ib, err := fs.Stat(b)
	if err != nil {
		return "", nil
	}

	switch {
	case ia.Mode().IsRegular() && ib.Mode().IsRegular():
		return unified(fs, a, b, aName, bName)
	case ia.IsDir() && ib.IsDir():
		lines, err := treeDiff(fs, a, b, "")
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "type differs: " + kindName(ia.IsDir()) + " at home, " + kindName(ib.IsDir()) + " in repository", nil
	}
}

func kindName(dir bool) string {
	if dir {
		return "directory"
	}
	return "file"
}

func unified(fs types.FS, a, b, aName, bName string) (string, error) {
	da, err := fs.ReadFile(a)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", a)
	}
	db, err := fs.ReadFile(b)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", b)
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(da)),
		B:        difflib.SplitLines(string(db)),
		FromFile: aName,
		ToFile:   bName,
		Context:  3,
	})
}

// treeDiff lists names present on one side only and files whose content
// differs, recursively. rel is the path below both roots.
func treeDiff(fs types.FS, a, b, rel string) ([]string, error) {
	names := map[string][2]bool{}
	for i, dir := range []string{a, b} {
		entries, err := fs.ReadDir(filepath.Join(dir, rel))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", filepath.Join(dir, rel))
		}
		for _, e := range entries {
			seen := names[e.Name()]
			seen[i] = true
			names[e.Name()] = seen
		}
	}

	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, name := range keys {
		seen := names[name]
		path := filepath.ToSlash(filepath.Join(rel, name))
		switch {
		case !seen[1]:
			out = append(out, "only at home: "+path)
		case !seen[0]:
			out = append(out, "only in repository: "+path)
		default:
			ia, errA := fs.Lstat(filepath.Join(a, rel, name))
			ib, errB := fs.Lstat(filepath.Join(b, rel, name))
			if errA != nil || errB != nil {
				continue
			}
			if ia.IsDir() && ib.IsDir() {
				sub, err := treeDiff(fs, a, b, filepath.Join(rel, name))
				if err != nil {
					return nil, err
				}
				out = append(out, sub...)
				continue
			}
			same, err := reconcile.TreesEqual(fs, filepath.Join(a, rel, name), filepath.Join(b, rel, name))
			if err != nil {
				return nil, err
			}
			if !same {
				out = append(out, "differs: "+path)
			}
		}
	}
	return out, nil
}
