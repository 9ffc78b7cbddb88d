package chans

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// channelIDs hands out the monotonic debug ids that correlate log lines
// and registry entries to one Channel, without printing its address.
var channelIDs atomic.Uint64

// introspectable is implemented by *Channel[T] for every T; it lets the
// (necessarily non-generic) package-level registry hold channels of every
// instantiation without reflection.
type introspectable interface {
	debugInfo() ChannelInfo
}

// registry tracks every live Channel for DebugRegistry, the way the
// teacher's Pipe.KV (built with xsync.NewMapOf) is a lock-free,
// always-thread-safe store reachable without a caller-held mutex. Unlike
// KV, which is arbitrary per-pipe user data, this map is module-global and
// exists purely for introspection: it is never read by the rendezvous
// protocol itself, so a slow or buggy debug tool can never affect
// correctness.
var registry = xsync.NewMapOf[uint64, introspectable]()

// ChannelInfo is a point-in-time snapshot of one channel's debug state, as
// returned by DebugRegistry.
type ChannelInfo struct {
	ID       uint64
	Capacity int
	Len      int
	Closed   bool
}

func registerChannel(id uint64, c introspectable) {
	registry.Store(id, c)
}

func unregisterChannel(id uint64) {
	registry.Delete(id)
}

// DebugRegistry returns a fresh snapshot of every currently-live Channel
// created via NewChannel in this process, for tooling that wants to
// inspect outstanding channels without the Channel type itself growing a
// public enumeration method. Channels are removed from the registry by
// Close, not by garbage collection, so a leaked, never-closed channel
// will show up here indefinitely — that's the point: it is leak-detection
// tooling.
func DebugRegistry() []ChannelInfo {
	out := make([]ChannelInfo, 0, registry.Size())
	registry.Range(func(_ uint64, c introspectable) bool {
		out = append(out, c.debugInfo())
		return true
	})
	return out
}
