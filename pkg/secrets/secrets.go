// Package secrets wraps git-crypt, which transparently encrypts the files
// matched by .gitattributes filter=git-crypt patterns.
package secrets

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

const (
	tool           = "git-crypt"
	attributesFile = ".gitattributes"
	filterSuffix   = "filter=git-crypt diff=git-crypt"
)

// Crypt manages git-crypt for one repository.
type Crypt struct {
	runner  runner.Runner
	fs      types.FS
	repo    string
	keyFile string
}

// New creates a Crypt for repo. keyFile is the default symmetric key
// location used by Init, Unlock and ExportKey.
func New(r runner.Runner, fs types.FS, repo, keyFile string) *Crypt {
	return &Crypt{runner: r, fs: fs, repo: repo, keyFile: keyFile}
}

// KeyFile returns the default key location
func (c *Crypt) KeyFile() string {
	return c.keyFile
}

// Initialized reports whether git-crypt has been set up in the repository
func (c *Crypt) Initialized() bool {
	info, err := c.fs.Stat(filepath.Join(c.repo, ".git", "git-crypt"))
	return err == nil && info.IsDir()
}

func (c *Crypt) run(ctx context.Context, args ...string) (*runner.Result, error) {
	return c.runner.Run(ctx, runner.Command(tool, args...).InDir(c.repo))
}

// Init sets up git-crypt and exports the new key to the default location.
func (c *Crypt) Init(ctx context.Context) (string, error) {
	logger := logging.GetLogger("secrets")
	if c.Initialized() {
		return "", errors.New(errors.ErrAlreadyExists, "git-crypt is already initialized").
			WithDetail("hint", "use 'dotfiles secrets export-key' to back up the key")
	}
	if _, err := c.run(ctx, "init"); err != nil {
		return "", errors.Wrap(err, errors.GetErrorCode(err), "git-crypt init failed")
	}
	logger.Info().Str("repo", c.repo).Msg("git-crypt initialized")
	return c.ExportKey(ctx, "")
}

// ExportKey writes the repository key to out, or the default location when
// out is empty. The key file is made owner-only.
func (c *Crypt) ExportKey(ctx context.Context, out string) (string, error) {
	if out == "" {
		out = c.keyFile
	}
	if err := c.fs.MkdirAll(filepath.Dir(out), 0700); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(out))
	}
	if _, err := c.run(ctx, "export-key", out); err != nil {
		return "", errors.Wrap(err, errors.GetErrorCode(err), "git-crypt export-key failed")
	}
	if err := c.fs.Chmod(out, 0600); err != nil && !os.IsNotExist(err) {
		return "", errors.Wrapf(err, errors.ErrPermission, "cannot restrict permissions on %s", out)
	}
	return out, nil
}

// Unlock decrypts the working tree with key, or the default key file.
func (c *Crypt) Unlock(ctx context.Context, key string) error {
	if key == "" {
		key = c.keyFile
	}
	if _, err := c.fs.Stat(key); err != nil {
		return errors.Newf(errors.ErrFileNotFound, "key not found at %s", key).
			WithDetail("path", key).
			WithDetail("hint", "copy your key there or pass --key /path/to/key")
	}
	if _, err := c.run(ctx, "unlock", key); err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), "git-crypt unlock failed")
	}
	return nil
}

// Lock re-encrypts the working tree
func (c *Crypt) Lock(ctx context.Context) error {
	if _, err := c.run(ctx, "lock"); err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), "git-crypt lock failed")
	}
	return nil
}

// Status returns git-crypt's own status report
func (c *Crypt) Status(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "status")
	if err != nil {
		return "", err
	}
	return res.Output(), nil
}

// List returns the repository-relative paths git-crypt encrypts.
func (c *Crypt) List(ctx context.Context) ([]string, error) {
	res, err := c.run(ctx, "status", "-e")
	if err != nil {
		return nil, err
	}
	var files []string
	scanner := bufio.NewScanner(strings.NewReader(res.Stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if name, ok := strings.CutPrefix(line, "encrypted:"); ok {
			files = append(files, strings.TrimSpace(name))
		}
	}
	return files, nil
}

// AddPattern appends an encryption rule to .gitattributes. It reports false
// when the pattern is already present.
func (c *Crypt) AddPattern(pattern string) (bool, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || strings.ContainsAny(pattern, " \t") {
		return false, errors.Newf(errors.ErrInvalidInput, "invalid pattern %q", pattern)
	}

	path := filepath.Join(c.repo, attributesFile)
	data, err := c.fs.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	content := string(data)
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == pattern {
			return false, nil
		}
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += pattern + " " + filterSuffix + "\n"
	if err := c.fs.WriteFile(path, []byte(content), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return true, nil
}
