// Package parsers hosts the per-format highlight parsers and the
// normalisation helpers they share. Each supported export format lives
// in its own subpackage implementing driven.HighlightParser.
package parsers
