// Package remote copies the repository to and from other machines over
// ssh and rsync.
package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
)

// Options configures a transfer.
type Options struct {
	// Path is the repository location on the remote host
	Path string

	ConnectTimeout int
	Excludes       []string
}

// Client transfers one local repository.
type Client struct {
	runner runner.Runner
	local  string
	opts   Options
}

// New creates a Client for the local repository root
func New(r runner.Runner, local string, opts Options) *Client {
	if opts.Path == "" {
		opts.Path = "~/dotfiles"
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5
	}
	return &Client{runner: r, local: strings.TrimSuffix(local, "/"), opts: opts}
}

// Path returns the remote repository location
func (c *Client) Path() string {
	return c.opts.Path
}

func checkHost(host string) error {
	if host == "" || strings.HasPrefix(host, "-") || strings.ContainsAny(host, " \t\n") {
		return errors.Newf(errors.ErrInvalidInput, "invalid host %q", host)
	}
	return nil
}

// Probe checks that host accepts an ssh connection within the timeout.
func (c *Client) Probe(ctx context.Context, host string) error {
	if err := checkHost(host); err != nil {
		return err
	}
	cmd := runner.Command("ssh", "-o", fmt.Sprintf("ConnectTimeout=%d", c.opts.ConnectTimeout), host, "echo ok").Unchecked()
	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if !res.OK() || res.Output() != "ok" {
		return errors.Newf(errors.ErrToolFailed, "cannot connect to %s", host).
			WithDetail("host", host).
			WithDetail("hint", "check the host name and your ~/.ssh/config")
	}
	return nil
}

func (c *Client) rsync(ctx context.Context, del bool, from, to string) error {
	args := []string{"-avz"}
	if del {
		args = append(args, "--delete")
	}
	for _, p := range c.opts.Excludes {
		args = append(args, "--exclude", p)
	}
	args = append(args, from, to)
	if _, err := c.runner.Run(ctx, runner.Command("rsync", args...).Streaming()); err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), "rsync failed")
	}
	return nil
}

// Deploy mirrors the local repository to host. With bootstrap set the
// remote copy is applied afterwards.
func (c *Client) Deploy(ctx context.Context, host string, bootstrap bool) error {
	logger := logging.GetLogger("remote")
	if _, err := c.runner.LookPath("rsync"); err != nil {
		return err
	}
	if err := c.Probe(ctx, host); err != nil {
		return err
	}

	path := c.opts.Path
	if _, err := c.runner.Run(ctx, runner.Command("ssh", host, "mkdir -p "+path)); err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err), "cannot create %s on %s", path, host)
	}
	if err := c.rsync(ctx, true, c.local+"/", host+":"+path+"/"); err != nil {
		return err
	}
	logger.Info().Str("host", host).Str("path", path).Msg("repository deployed")

	if !bootstrap {
		return nil
	}
	script := fmt.Sprintf("cd %s && DOTFILES=%s dotfiles apply", path, path)
	if _, err := c.runner.Run(ctx, runner.Command("ssh", "-t", host, script).Streaming()); err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err), "remote apply failed on %s", host)
	}
	return nil
}

// Pull copies the remote repository over the local one. Local files that
// do not exist remotely are kept.
func (c *Client) Pull(ctx context.Context, host string) error {
	if _, err := c.runner.LookPath("rsync"); err != nil {
		return err
	}
	if err := c.Probe(ctx, host); err != nil {
		return err
	}
	return c.rsync(ctx, false, host+":"+c.opts.Path+"/", c.local+"/")
}
