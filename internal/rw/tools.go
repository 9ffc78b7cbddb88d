//go:build tools
// +build tools

package rw

// Pins the code generator used by the //go:generate directives in rw.go,
// the way the teacher pins its dev-tool dependencies in a build-tag-gated
// tools.go rather than letting `go mod tidy` drop them.
import (
	_ "github.com/dmarkham/enumer"
)
