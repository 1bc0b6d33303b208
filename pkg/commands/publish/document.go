package publish

import (
	"os"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"gopkg.in/yaml.v3"
)

// Document is config/publish.yaml. Its values extend the publish settings.
type Document struct {
	Exclude    []string `yaml:"exclude,omitempty"`
	PublicRepo string   `yaml:"public_repo,omitempty"`
}

// LoadDocument reads publish.yaml. An absent file yields an empty document.
func LoadDocument(fs types.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "%s is not valid", path).WithDetail("path", path)
	}
	return &doc, nil
}
