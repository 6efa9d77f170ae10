// Package histio persists histograms. A Snapshot is the flat, codec-friendly
// form of a histogram; Encode and Decode turn one into a compact gob+gzip
// blob, and Store keeps named blobs in a local SQLite database with
// schema migrations applied on open.
package histio
