package zerocopy

import "errors"

var ErrNotSupported = errors.New("splice is not supported on this platform")
