// Package library indexes the notebooks available to open from disk.
//
// At startup the library walks the configured directory, matches files
// against a glob pattern (default **/*.ipynb), parses each match and
// indexes it by a slug derived from the file name. The host opens
// sessions by library ID instead of shipping notebook JSON inline.
//
// The library is read-only: it never writes notebooks back.
package library
