package chans

import (
	"github.com/buger/jsonparser"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

// Options configures a new Channel, mirroring the teacher's plain-struct,
// documented-zero-value-defaults Options shape (pipe.Options).
type Options struct {
	// Capacity is the channel's buffer size. Negative values are treated
	// as 0 (unbuffered), per the spec's §6 constructor contract.
	Capacity int

	// Logger receives structured trace/debug events from the channel and
	// its engine. Defaults to a no-op logger if nil.
	Logger *zerolog.Logger

	// DefaultSilent sets the default for ReadOptions.Silent/WriteOptions.Silent
	// when a caller passes the zero value of those structs.
	DefaultSilent bool
}

// ReadOptions configures a single Read call. The spec's AbortSignalLike is
// rendered as the ctx argument of Read itself (idiomatic Go), not a field
// here — see SPEC_FULL.md's Open Questions.
type ReadOptions struct {
	// Silent converts what would be a returned cancellation error into a
	// ReadCancelled envelope instead.
	Silent bool
}

// WriteOptions configures a single Write call.
type WriteOptions struct {
	// Silent converts what would be a returned ChannelClosed/cancellation
	// error into a WriteErrClosed/WriteCancelled envelope instead.
	Silent bool
}

// OptionsFromMap builds Options from a loosely-typed map, the way a
// service built on this module might wire its channel pool straight from
// a parsed config document without round-tripping through a struct tag
// decoder. Recognizes "capacity" (coerced with cast.ToInt) and "silent"
// (coerced with cast.ToBool); unrecognized keys are ignored.
func OptionsFromMap(m map[string]any) Options {
	var o Options
	if v, ok := m["capacity"]; ok {
		o.Capacity = cast.ToInt(v)
	}
	if v, ok := m["silent"]; ok {
		o.DefaultSilent = cast.ToBool(v)
	}
	return o
}

// OptionsFromJSON builds Options directly from a JSON object's bytes,
// using jsonparser.Get to pull individual fields without a full
// encoding/json unmarshal — the same shape the teacher's msg package uses
// to read individual wire attributes out of a larger JSON document.
// Missing fields are left at their zero value; malformed field values are
// ignored rather than erroring, since a config loader this permissive is
// meant to degrade to defaults, not to fail hard on unrelated extra keys.
func OptionsFromJSON(data []byte) (Options, error) {
	var o Options

	if v, typ, _, err := jsonparser.Get(data, "capacity"); err == nil && typ == jsonparser.Number {
		if n, perr := jsonparser.ParseInt(v); perr == nil {
			o.Capacity = int(n)
		}
	}

	if v, typ, _, err := jsonparser.Get(data, "silent"); err == nil && typ == jsonparser.Boolean {
		if b, perr := jsonparser.ParseBoolean(v); perr == nil {
			o.DefaultSilent = b
		}
	}

	return o, nil
}
