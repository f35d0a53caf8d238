// Package element holds the types shared by every stage of command-tree
// loading: the tree path identifying a node and the error taxonomy that
// loading surfaces to callers.
package element
