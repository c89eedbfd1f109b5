// Package form reads a FunnelConfig out of named form fields.
//
// The field contract is small: text inputs business, industry, sessions and
// cpa, a repeated stage checkbox whose value is a stage identifier, and a
// newsletter checkbox. State is an in-memory rendition of that markup;
// anything satisfying Fields can stand in for it.
package form
