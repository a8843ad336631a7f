// Command biblioteca builds the local book catalog database.
//
// It runs the schema script, loads the configured JSON datasets into tables,
// and filters the line-delimited books source down to the configured
// languages. Results go to stdout; logs go to stderr and, when
// paths.log_dir is set, to biblioteca.log.
package main
