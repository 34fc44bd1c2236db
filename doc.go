// Package tdf reads Bruker TimsTOF acquisitions stored in the TDF container
// format (a directory holding a SQLite metadata database plus a binary
// peak-data file) and materializes them as in-memory frames suitable for
// downstream peak picking, ion-mobility reconstruction and MALDI imaging.
//
// The entry point is FrameReader, built once over a ".d" directory with
// New and then used read-only for the remainder of its lifetime.
package tdf
