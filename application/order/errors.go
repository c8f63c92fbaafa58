package order

import "errors"

var errRendererMissing = errors.New("no receipt renderer configured")
