package oracle

import "errors"

var ErrInvalidModel = errors.New("invalid oracle model")
