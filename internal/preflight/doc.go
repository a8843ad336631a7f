// Package preflight provides filesystem readiness checks that commands run
// before they create or replace files.
//
// The filter command checks that the source file is readable and that its
// directory accepts new files, since the rewrite goes through a sibling
// temporary file. Database commands check the directory holding the database
// and any configured schema script.
package preflight
