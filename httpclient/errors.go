package httpclient

import (
	"context"
	stderrors "errors"
	"net"

	"github.com/kbukum/sylph/errors"
)

// transportError classifies a failed exchange. Errors that already carry a
// code pass through unchanged.
func transportError(ctx context.Context, err error) error {
	if err == nil || errors.IsAppError(err) {
		return err
	}
	switch {
	case stderrors.Is(err, context.Canceled) || stderrors.Is(ctx.Err(), context.Canceled):
		return errors.Canceled(err)
	case stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) || isNetTimeout(err):
		return errors.Timeout(err)
	default:
		return errors.ConnectionFailed(err)
	}
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
