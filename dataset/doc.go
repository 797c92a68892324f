// Package dataset serializes evaluation records as line-delimited JSON
// (one record per line) and assembles records from raw traces. Dataset
// storage and versioning beyond the local file belong to the external
// dataset store; this package only produces and consumes the wire format.
package dataset
