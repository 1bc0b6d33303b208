package errors

import "fmt"

// Category groups error codes into the families users and callers reason
// about: configuration problems, filesystem problems and external tools.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryIO       Category = "io"
	CategoryExternal Category = "external"
	CategoryInput    Category = "input"
	CategoryOther    Category = "other"
)

// CategoryOf returns the family an error belongs to.
func CategoryOf(err error) Category {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigInvalid:
		return CategoryConfig
	case ErrFileNotFound, ErrFileAccess, ErrFileWrite, ErrFileCopy, ErrSymlinkCreate, ErrDirCreate, ErrBackup, ErrPermission:
		return CategoryIO
	case ErrToolMissing, ErrToolFailed:
		return CategoryExternal
	case ErrInvalidInput, ErrNotFound, ErrNotTracked, ErrOutsideHome, ErrAlreadyExists:
		return CategoryInput
	default:
		return CategoryOther
	}
}

// ToolMissing builds the error returned when an external executable is not on PATH.
func ToolMissing(tool, hint string) *DotfilesError {
	err := Newf(ErrToolMissing, "required command not found: %s", tool).WithDetail("tool", tool)
	if hint != "" {
		err.WithDetail("hint", hint)
	}
	return err
}

// Hint returns the user-facing remediation attached to an error, if any.
func Hint(err error) string {
	details := GetErrorDetails(err)
	if details == nil {
		return ""
	}
	if hint, ok := details["hint"].(string); ok {
		return hint
	}
	if tool, ok := details["tool"].(string); ok && GetErrorCode(err) == ErrToolMissing {
		return fmt.Sprintf("install %s and make sure it is on your PATH", tool)
	}
	return ""
}
