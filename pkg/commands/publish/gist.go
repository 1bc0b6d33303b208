package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/tidwall/gjson"
)

const (
	// DefaultGistFile is the file name inside the gist
	DefaultGistFile = "bootstrap.sh"

	// BootstrapTemplate is the script rendered into the gist, relative to scripts/
	BootstrapTemplate = "bootstrap.sh"

	placeholderRepo = "git@github.com:USERNAME/dotfiles.git"
	placeholderUser = "USERNAME"
)

// GistOptions holds options for publishing the bootstrap gist
type GistOptions struct {
	Env *commands.Env

	// GistID updates an existing gist instead of creating one
	GistID string

	// Repo is substituted for {repo}; defaults to the origin remote
	Repo     string
	Filename string
}

// GistResult describes the published gist.
type GistResult struct {
	ID       string
	URL      string
	Created  bool
	OneLiner string
}

// RenderBootstrap fills scripts/bootstrap.sh. {repo} is replaced by the
// repository URL and doubled braces collapse to single ones.
func RenderBootstrap(ctx context.Context, env *commands.Env, repo string) (string, error) {
	if repo == "" {
		url, ok, err := env.Git().RemoteURL(ctx, "origin")
		if err == nil && ok && url != "" {
			repo = url
		} else {
			repo = placeholderRepo
		}
	}

	tmpl := filepath.Join(env.Paths.ScriptsDir(), BootstrapTemplate)
	data, err := env.FS.ReadFile(tmpl)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileNotFound, "bootstrap template not found: %s", tmpl).
			WithDetail("path", tmpl)
	}
	r := strings.NewReplacer("{repo}", repo, "{{", "{", "}}", "}")
	return r.Replace(string(data)), nil
}

// Gist publishes the rendered bootstrap script through the GitHub CLI.
func Gist(ctx context.Context, opts GistOptions) (*GistResult, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.gist")
	done := logging.LogOperationStart(logger, "gist")
	defer done()

	filename := opts.Filename
	if filename == "" {
		filename = DefaultGistFile
	}

	if _, err := env.Runner.LookPath("gh"); err != nil {
		return nil, err
	}
	if res, err := env.Runner.Run(ctx, runner.Command("gh", "auth", "status").Unchecked()); err != nil || !res.OK() {
		return nil, errors.New(errors.ErrToolFailed, "not authenticated with GitHub").
			WithDetail("hint", "run: gh auth login")
	}

	content, err := RenderBootstrap(ctx, env, opts.Repo)
	if err != nil {
		return nil, err
	}

	result := &GistResult{ID: opts.GistID}
	if opts.GistID != "" {
		err = updateGist(ctx, env, opts.GistID, filename, content)
		result.URL = "https://gist.github.com/" + opts.GistID
	} else {
		result.URL, err = createGist(ctx, env, filename, content)
		result.ID = path.Base(result.URL)
		result.Created = true
	}
	if err != nil {
		return nil, err
	}

	user := placeholderUser
	if res, err := env.Runner.Run(ctx, runner.Command("gh", "api", "user").Unchecked()); err == nil && res.OK() {
		if login := gjson.Get(res.Stdout, "login").String(); login != "" {
			user = login
		}
	}
	result.OneLiner = fmt.Sprintf("curl -fsSL https://gist.githubusercontent.com/%s/%s/raw/%s | bash", user, result.ID, filename)

	logger.Info().Str("gist", result.ID).Bool("created", result.Created).Msg("gist published")
	return result, nil
}

func createGist(ctx context.Context, env *commands.Env, filename, content string) (string, error) {
	dir, err := os.MkdirTemp("", "dotfiles-gist-")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "cannot create temporary directory")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	file := filepath.Join(dir, filename)
	if err := env.FS.WriteFile(file, []byte(content), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", file)
	}

	res, err := env.Runner.Run(ctx, runner.Command("gh", "gist", "create", "--public", file))
	if err != nil {
		return "", errors.Wrap(err, errors.GetErrorCode(err), "failed to create gist")
	}
	lines := strings.Split(res.Output(), "\n")
	url := strings.TrimSpace(lines[len(lines)-1])
	if url == "" {
		return "", errors.New(errors.ErrToolFailed, "gh gist create printed no URL")
	}
	return url, nil
}

// updateGist replaces the gist's files with the single bootstrap file.
func updateGist(ctx context.Context, env *commands.Env, id, filename, content string) error {
	files := map[string]any{filename: map[string]string{"content": content}}

	res, err := env.Runner.Run(ctx, runner.Command("gh", "api", "/gists/"+id).Unchecked())
	if err == nil && res.OK() {
		gjson.Get(res.Stdout, "files").ForEach(func(key, _ gjson.Result) bool {
			if name := key.String(); name != filename {
				files[name] = nil
			}
			return true
		})
	}

	payload, err := json.Marshal(map[string]any{"files": files})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode gist update")
	}
	cmd := runner.Command("gh", "api", "-X", "PATCH", "/gists/"+id, "--input", "-")
	cmd.Stdin = strings.NewReader(string(payload))
	if _, err := env.Runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), "failed to update gist")
	}
	return nil
}
