// Package mode defines the editing modes and tracks the active one.
//
// Mode is a closed enumeration. Exactly one mode is active at a time; the
// Manager remembers the mode that was active before the last switch so
// that "return to caller" transitions such as leaving Command mode can
// go back where they came from. Only one level of history is kept.
package mode
