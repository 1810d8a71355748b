package domain

import "errors"

// Token verification failures. The HTTP layer collapses all three into a
// uniform 401 so clients cannot tell a forged token from an expired one;
// the distinction exists for logs and tests only.
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")
