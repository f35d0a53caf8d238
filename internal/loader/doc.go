// Package loader turns filesystem layout and registered native modules
// into command-tree artifacts. It discovers the children of a group
// directory, gathers every implementation candidate for an element
// (native descriptors and declarative spec entries), and resolves the
// single candidate matching the requested release track.
package loader
