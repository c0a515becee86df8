// Package store persists the profile store as a single JSON file.
// Every save rewrites the whole file through a temp file and rename; a missing
// file loads as an empty store, an unparseable one is reported and left alone.
package store
