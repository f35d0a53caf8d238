// Package specfile parses declarative command spec files. A spec file is
// a YAML document whose top level is a sequence of command entries, with
// two composition extensions resolved against a directory-scoped common
// document (_common.yaml):
//
//   - a scalar tagged !COMMON is replaced by the value at a dot-separated
//     attribute path in the common document
//   - a mapping key _COMMON_ (or a sequence element prefixed _COMMON_)
//     merges whole mappings or splices whole sequences out of the common
//     document
//
// Parsing is two-pass: the YAML engine produces a node tree, then an
// explicit transform resolves both marker types while decoding to plain
// Go values, so the extension semantics stay independent of the parser.
package specfile
