package cli

import "fmt"

type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type unsupportedFileError struct {
	path string
}

func (e unsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (want .html, .htm or .md)", e.path)
}
