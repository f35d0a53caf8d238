// Package tree walks a command directory and mounts every element that
// resolves for the requested release track into a cobra command tree.
// Broken elements are logged and skipped so one bad definition never
// takes down its siblings.
package tree
