// Package importdots finds well-known dotfiles in the home directory that
// are not tracked yet and optionally adds them all.
package importdots

import (
	"io/fs"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/add"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Candidate is an untracked dotfile found in home.
type Candidate struct {
	Dest  string
	IsDir bool

	// Size is the total size of regular files, following no links
	Size int64
}

// Failure records a candidate that could not be added.
type Failure struct {
	Dest string
	Err  error
}

// Result lists what was found and, with All, what was added.
type Result struct {
	Candidates []Candidate
	Added      []types.FileEntry
	Failed     []Failure
}

// ImportOptions holds options for the import command
type ImportOptions struct {
	Env *commands.Env

	// All adds every candidate as a symlink entry
	All    bool
	DryRun bool
}

// Import scans the configured candidate paths.
func Import(opts ImportOptions) (*Result, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.import")
	done := logging.LogOperationStart(logger, "import")
	defer done()

	m, err := env.LoadManifest()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, rel := range env.Config.Import.Candidates {
		dest := types.NormalizeRelPath(rel)
		if dest == "" {
			continue
		}
		if _, tracked := m.FindByDest(dest); tracked {
			continue
		}

		abs := env.Paths.HomePath(dest)
		info, err := env.FS.Stat(abs)
		if err != nil {
			continue
		}
		if env.IsLink(abs) {
			if target, err := env.FS.EvalSymlinks(abs); err == nil && env.Paths.IsInRepo(target) {
				continue
			}
		}

		c := Candidate{Dest: dest, IsDir: info.IsDir(), Size: info.Size()}
		if c.IsDir {
			c.Size = treeSize(env.FS, abs)
		}
		result.Candidates = append(result.Candidates, c)
	}

	logger.Info().Int("found", len(result.Candidates)).Msg("scan finished")
	if !opts.All || opts.DryRun {
		return result, nil
	}

	for _, c := range result.Candidates {
		added, err := add.Add(add.AddOptions{Env: env, Path: env.Paths.HomePath(c.Dest), Kind: types.KindSymlink})
		if err != nil {
			logger.Warn().Err(err).Str("dest", c.Dest).Msg("import failed")
			result.Failed = append(result.Failed, Failure{Dest: c.Dest, Err: err})
			continue
		}
		result.Added = append(result.Added, added.Entry)
	}
	return result, nil
}

func treeSize(filesystem types.FS, dir string) int64 {
	var total int64
	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		return 0
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.Type()&fs.ModeSymlink != 0:
			continue
		case e.IsDir():
			total += treeSize(filesystem, path)
		default:
			if info, err := e.Info(); err == nil && info.Mode().IsRegular() {
				total += info.Size()
			}
		}
	}
	return total
}
