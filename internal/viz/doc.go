// Package viz renders solver state for the terminal.
//
//   - [Heatmap]: a field as coloured half-block cells, positive and
//     negative values in the theme's two field colours
//   - [SectionGraph]: a 1D cross-section as an ASCII line graph
//   - Theme selection with 3 built-in colour schemes
//
// Rendering never mutates the field and downsamples by picking the node
// nearest to each character cell.
package viz
