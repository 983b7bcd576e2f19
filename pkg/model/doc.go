// Package model defines the typed field schema a panel is built from. A Field
// is a closed variant over the supported kinds (text, textarea, select,
// checkbox): select-only data lives in SelectSpec and is present exactly when
// the field kind is KindSelect. Registry collects fields in insertion order,
// which is also the display and save order used by the panel controller.
// Attributes and options are ordered slices rather than maps so rendered
// markup stays deterministic.
package model
