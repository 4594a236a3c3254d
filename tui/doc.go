// Package tui draws a meadow simulation in a terminal with tcell.
//
// [Surface] implements meadow.Surface over a grid of character cells:
// strokes become slope glyphs, discs become filled dots, and rect fills
// set cell backgrounds. [Run] drives a simulation from key events at the
// simulation tick rate.
package tui
