// Package scaffold generates a starter command directory from embedded
// templates. It powers the "treeline init" command, producing a working
// tree with a common-data file, a top-level command, and a group whose
// command ships separate release track variants.
package scaffold
