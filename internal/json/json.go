// Package json provides a small set of JSON byte-level helpers; the chans
// package uses Quote in its diagnostic AppendJSON envelope encoders
// (OptionsFromJSON calls jsonparser directly).
//
// Adapted from bgpfix's json package (github.com/bgpfix/bgpfix/json),
// which wraps github.com/buger/jsonparser for reading and hand-rolled
// append-don't-reflect helpers for writing. The wire-format-specific
// helpers (Hex/UnHex for byte strings, Prefix/Prefixes for netip.Prefix)
// have no counterpart in this module's domain and were dropped; Quote is
// new, needed because this module's values (error strings) are arbitrary
// text rather than the teacher's already-JSON-safe identifiers.
package json

import (
	"errors"
	"strconv"
	"unsafe"

	jsp "github.com/buger/jsonparser"
)

var ErrValue = errors.New("invalid value")

func Bool(dst []byte, val bool) []byte {
	if val {
		return append(dst, `true`...)
	}
	return append(dst, `false`...)
}

func UnBool(src []byte) (bool, error) {
	switch SQ(src) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, ErrValue
	}
}

func Int(dst []byte, val int) []byte {
	return strconv.AppendInt(dst, int64(val), 10)
}

func UnInt(src []byte) (int, error) {
	v, err := strconv.ParseInt(S(src), 0, 64)
	return int(v), err
}

// Quote appends s to dst as a properly escaped JSON string, including the
// surrounding double quotes.
func Quote(dst []byte, s string) []byte {
	return strconv.AppendQuote(dst, s)
}

// S returns a string from a byte slice, in an unsafe (no-copy) way —
// callers must not mutate buf afterwards.
func S(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// Q removes surrounding double quotes from buf, if present.
func Q(buf []byte) []byte {
	if l := len(buf); l > 1 && buf[0] == '"' && buf[l-1] == '"' {
		return buf[1 : l-1]
	}
	return buf
}

// SQ returns a string from buf, unquoting it first if necessary.
func SQ(buf []byte) string {
	if l := len(buf); l > 1 && buf[0] == '"' && buf[l-1] == '"' {
		buf = buf[1 : l-1]
	}
	return *(*string)(unsafe.Pointer(&buf))
}

// ObjectEach calls cb for each key/value pair in the src JSON object.
func ObjectEach(src []byte, cb func(key, val []byte) error) error {
	return jsp.ObjectEach(src, func(key, val []byte, _ jsp.ValueType, _ int) error {
		return cb(key, val)
	})
}
