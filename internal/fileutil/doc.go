// Package fileutil provides the temp-file, fsync, and rename helpers used to
// replace files atomically, plus a verified copy for backups.
package fileutil
