// Package language maps ISO 639-1 language codes to English display names.
//
// The catalog stores spoken languages keyed by ISO code; providers do not
// always include an English name with the payload, so this table supplies a
// fallback for the common catalog languages.
package language
