// Package position implements PositionProvider driven ports for hosts
// without a native positioning stack: a static provider pinned to a
// configured coordinate and a replay provider that steps through a
// recorded track file.
package position
