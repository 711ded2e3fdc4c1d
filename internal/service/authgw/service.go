// Package authgw verifies email/password pairs against the external
// credential service that gates profile creation.
package authgw

import (
	"context"
	"errors"
)

// Gateway errors. A nil error from Authenticate means the pair was verified.
var (
	ErrRejected    = errors.New("credentials rejected")
	ErrUnavailable = errors.New("auth service unavailable")
)

// Gateway checks credentials. Implementations must not retry and must not
// keep the password beyond the call.
type Gateway interface {
	Authenticate(ctx context.Context, email, password string) error
}
