// Package viz renders result columns as braille dot plots for the
// terminal.
//
//   - [Canvas]: a 2x4-dot braille pixel grid with line drawing
//   - [PhasePlot]: one column against another, consecutive rows joined
//
// A phase portrait of the harmonic preset (position vs velocity) traces
// the familiar ellipse; a damped system spirals inward.
package viz
