// Package validation checks input files and output directories before a
// complaint run reads or writes them.
package validation
