package fsys

import (
	stderrors "errors"
	"io/fs"

	"github.com/jmgilman/go/errors"
)

// Error codes for filesystem operations. NotFound, PermissionDenied,
// Collision and InvalidInput reuse the shared codes; IOFailure and
// InvalidPattern are specific to this tool.
const (
	CodeNotFound         = errors.CodeNotFound
	CodePermissionDenied = errors.CodeForbidden
	CodeCollision        = errors.CodeAlreadyExists
	CodeInvalidInput     = errors.CodeInvalidInput

	CodeInvalidPattern errors.ErrorCode = "INVALID_PATTERN"
	CodeIOFailure      errors.ErrorCode = "IO_FAILURE"
)

// Classify converts a raw filesystem error into a coded error carrying the
// operation and path as context. Errors that already carry a code are
// returned unchanged. Returns nil if err is nil.
func Classify(err error, op, path string) error {
	if err == nil {
		return nil
	}
	var pe errors.PlatformError
	if stderrors.As(err, &pe) {
		return err
	}

	code := CodeIOFailure
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		code = CodeNotFound
	case stderrors.Is(err, fs.ErrPermission):
		code = CodePermissionDenied
	case stderrors.Is(err, fs.ErrExist):
		code = CodeCollision
	}
	return errors.WithContextMap(
		errors.Wrapf(err, code, "%s %s", op, path),
		map[string]interface{}{"op": op, "path": path},
	)
}

// Collision returns the error reported when target is already taken.
func Collision(op, source, target string) error {
	return errors.WithContextMap(
		errors.Newf(CodeCollision, "%s %s: target %s already exists", op, source, target),
		map[string]interface{}{"op": op, "path": source, "target": target},
	)
}

// IsNotFound reports whether err carries the NotFound code.
func IsNotFound(err error) bool { return errors.GetCode(err) == CodeNotFound }

// IsPermissionDenied reports whether err carries the PermissionDenied code.
func IsPermissionDenied(err error) bool { return errors.GetCode(err) == CodePermissionDenied }

// IsCollision reports whether err carries the Collision code.
func IsCollision(err error) bool { return errors.GetCode(err) == CodeCollision }

// IsInvalidPattern reports whether err carries the InvalidPattern code.
func IsInvalidPattern(err error) bool { return errors.GetCode(err) == CodeInvalidPattern }

// IsIOFailure reports whether err carries the IOFailure code.
func IsIOFailure(err error) bool { return errors.GetCode(err) == CodeIOFailure }
