package normalize

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSourceMissing     = errors.New("source unavailable")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("decode failed")
	ErrEncode            = errors.New("encode failed")
	ErrDestination       = errors.New("destination not writable")
	ErrLocked            = errors.New("destination locked")
)

// Wrap builds an error message that includes the failing operation while
// tagging it with marker for later classification by Kind.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrDecode
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind maps err to a stable machine-readable name. It returns "" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrSourceMissing):
		return "source_missing"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEncode):
		return "encode"
	case errors.Is(err, ErrLocked):
		return "locked"
	case errors.Is(err, ErrDestination):
		return "destination"
	default:
		return "unknown"
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "normalize failure"
	}
	return strings.Join(parts, ": ")
}
