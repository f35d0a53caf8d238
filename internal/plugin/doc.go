// Package plugin defines the boundary between the command-tree loader
// and native (compiled-in) command implementations. Native code does not
// get imported at load time; instead each implementation unit registers
// a Module of descriptors in a Registry keyed by its normalized tree
// path, and the loader looks modules up by path.
package plugin
