// Package commands defines the facadectl CLI for working with design
// documents outside a running server.
//
// Commands
//
//   - validate  Parse a document and list import warnings
//   - derive    Recompute derived values and write the document back out
//   - schema    Print the attributes of an entity kind and variant
//   - catalog   List the profiles and wind locations of the calculation service
//   - report    Render the full or summary report of a document
//
// Documents are read from a file argument, or from stdin when the argument
// is "-".
package commands
