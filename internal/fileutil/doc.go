// Package fileutil holds filesystem helpers shared by the normalize
// pipeline: atomic writes, per-destination locks and content digests.
package fileutil
