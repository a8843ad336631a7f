// Package linefilter rewrites a line-delimited JSON file in place, keeping
// only the records whose language field belongs to an allow-set.
//
// Kept lines are copied byte for byte, in their original order; nothing is
// re-serialized. Lines that are not JSON objects are dropped and counted as
// malformed, and objects whose field is absent, not a string, or not in the
// allow-set are dropped and counted as unmatched. The rewrite goes through a
// uniquely named sibling temporary file that is fsynced and renamed over the
// source only after every line has been written, so the source path never
// shows partial content. An advisory lock on "<path>.lock" keeps two runs
// from rewriting the same file at once.
package linefilter
