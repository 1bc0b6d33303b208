package config

import (
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# dotfiles settings
#
# Every value below is the built-in default. Uncomment a line to change it.
# Environment variables override this file, e.g. DOTFILES_HOOKS__ENABLED=false.

`

// GenerateConfigContent renders the defaults as TOML with every value commented out.
func GenerateConfigContent() (string, error) {
	data, err := toml.Marshal(Default())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render default settings")
	}
	return generatedHeader + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inArray := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines and existing comments as-is
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [backup], [remote]) as-is
		if !inArray && strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Multi-line arrays: comment every continuation line
		if strings.HasSuffix(trimmed, "[") {
			inArray = true
		} else if inArray && strings.HasPrefix(trimmed, "]") {
			inArray = false
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
