// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, categories and hints

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "file not found",
			wantStr: "[NOT_FOUND] file not found",
		},
		{
			name:    "config_parse_error",
			code:    errors.ErrConfigParse,
			message: "invalid manifest",
			wantStr: "[CONFIG_PARSE] invalid manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("permission denied")

	err := errors.Wrapf(base, errors.ErrFileWrite, "failed to write %s", "files.yaml")
	require.NotNil(t, err)

	assert.Equal(t, "[FILE_WRITE] failed to write files.yaml: permission denied", err.Error())
	assert.True(t, stderrors.Is(err, base), "wrapped error should be reachable")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.False(t, errors.IsErrorCode(err, errors.ErrFileAccess))

	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"), "wrapping nil yields nil")
}

func TestIs_ComparesCodes(t *testing.T) {
	err := errors.New(errors.ErrNotTracked, "not tracked: .vimrc")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrNotTracked, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrNotFound, "not tracked: .vimrc")))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrConfigParse, errors.GetErrorCode(errors.New(errors.ErrConfigParse, "bad")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want errors.Category
	}{
		{errors.ErrConfigParse, errors.CategoryConfig},
		{errors.ErrSymlinkCreate, errors.CategoryIO},
		{errors.ErrDirCreate, errors.CategoryIO},
		{errors.ErrToolFailed, errors.CategoryExternal},
		{errors.ErrOutsideHome, errors.CategoryInput},
		{errors.ErrInternal, errors.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, errors.CategoryOf(errors.New(tt.code, "x")))
		})
	}
}

func TestHint(t *testing.T) {
	withHint := errors.ToolMissing("git-crypt", "brew install git-crypt")
	assert.Equal(t, "brew install git-crypt", errors.Hint(withHint))

	withoutHint := errors.ToolMissing("rsync", "")
	assert.Contains(t, errors.Hint(withoutHint), "rsync")

	assert.Empty(t, errors.Hint(stderrors.New("plain")))

	detailed := errors.New(errors.ErrToolFailed, "git failed").WithDetails(map[string]interface{}{
		"exit_code": 1,
		"hint":      "check your remote",
	})
	assert.Equal(t, "check your remote", errors.Hint(detailed))
	assert.Equal(t, 1, errors.GetErrorDetails(detailed)["exit_code"])
}
