// Package hclshape loads operation shapes from HCL manifests and value bags
// from HCL attribute files. It translates manifest blocks into sealed engine
// definitions, resolving impl names against the handler registry and
// compiling formula expressions into cell implementations.
package hclshape
