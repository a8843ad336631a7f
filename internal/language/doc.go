// Package language holds the allow-set used to filter records by language tag
// and the helpers that validate and describe those tags.
//
// Membership in a Set is exact string equality: "es-MX" and "spa" are distinct
// tags even though both describe Spanish. Normalization is only used for
// display and validation, never for matching.
package language
