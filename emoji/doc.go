// Package emoji locates emoji grapheme clusters in a rune buffer.
//
// Cluster boundaries follow UAX #29 as implemented by
// github.com/go-text/typesetting/segmenter, and a cluster counts as emoji
// when it carries an Extended_Pictographic, Regional_Indicator or keycap
// code point according to github.com/go-text/typesetting/unicodedata.
// Both tables are generated from the Unicode data files, so newer emoji
// are picked up by bumping the dependency rather than by editing code here.
//
// Offsets are rune indices into the slice handed to Find, which is the
// same coordinate space the layout package breaks lines in.
package emoji
