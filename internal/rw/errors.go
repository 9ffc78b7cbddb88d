package rw

import "errors"

// ErrClosed is fired to every writer (parked or synchronous) that targets
// a closed channel. chans.ErrChannelClosed is this exact value, re-exported
// so errors.Is works across both layers without a second sentinel.
var ErrClosed = errors.New("rwchan: channel closed")
