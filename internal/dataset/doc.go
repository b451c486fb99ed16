// Package dataset holds the in-memory record table the complaint pipeline
// works on: ordered, named columns of text or date cells with an explicit
// null marker. Every operation that names a column is a no-op when the
// column is absent, so callers never have to check the schema first.
package dataset
