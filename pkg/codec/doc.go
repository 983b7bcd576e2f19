// Package codec decides what happens to a field's stored value when a panel is
// saved. Decide implements the flat-mode policy (one record per field) and
// Merge the serialize-mode policy (one composite record per panel). Both are
// pure: they never touch storage, the panel controller applies the result.
//
// Submitted values arrive from form transport as strings or string sets while
// defaults and stored values may be typed, so equality is deliberately loose
// in one place only: two numeric-looking values compare by their string form.
package codec
