package shmqueue

import (
	"os"
	"path/filepath"
)

// Scope is the visibility namespace a channel's primitives are created
// under: local to the current user's session, or global to the host.
type Scope int

const (
	// Local restricts a channel's named primitives to the current user's
	// session namespace (on this platform: an unprivileged /dev/shm or
	// temp-dir path).
	Local Scope = iota
	// Global creates a channel's named primitives in a host-wide
	// namespace, requiring elevated privilege to create (see
	// ElevationRequired in status.go).
	Global
)

func (s Scope) String() string {
	if s == Global {
		return "global"
	}
	return "local"
}

// Suffixes for the six named primitives plus the backing region.
const (
	suffixWriterRegistration = "_ws"
	suffixReaderRegistration = "_rs"
	suffixExclusiveAccess    = "_eas"
	suffixHasMessages        = "_hme"
	suffixNoMessages         = "_nme"
	suffixClientConnected    = "_cce"
	suffixRegion             = "_mmf"
)

// namePrefix is the filesystem namespace all of this module's backing
// files live under.
const namePrefix = "shmqueue_"

// primitivePath resolves the backing file path for one of a channel's
// named objects, preferring /dev/shm (a tmpfs, avoiding disk I/O for
// what is conceptually kernel-resident state) and falling back to the
// OS temp directory.
func primitivePath(scope Scope, name, suffix string) string {
	filename := namePrefix + scope.String() + "_" + name + suffix
	if isDevShmAvailable() {
		return filepath.Join("/dev/shm", filename)
	}
	return filepath.Join(os.TempDir(), filename)
}

func isDevShmAvailable() bool {
	info, err := os.Stat("/dev/shm")
	if err != nil {
		return false
	}
	return info.IsDir()
}

// allPrimitivePaths returns every backing file path for a channel name,
// region included.
func allPrimitivePaths(scope Scope, name string) map[string]string {
	return map[string]string{
		suffixRegion:             primitivePath(scope, name, suffixRegion),
		suffixWriterRegistration: primitivePath(scope, name, suffixWriterRegistration),
		suffixReaderRegistration: primitivePath(scope, name, suffixReaderRegistration),
		suffixExclusiveAccess:    primitivePath(scope, name, suffixExclusiveAccess),
		suffixHasMessages:        primitivePath(scope, name, suffixHasMessages),
		suffixNoMessages:         primitivePath(scope, name, suffixNoMessages),
		suffixClientConnected:    primitivePath(scope, name, suffixClientConnected),
	}
}
