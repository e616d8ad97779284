// Package viz styles command line output.
//
// Quantities are printed with the number and the unit styled apart, and
// sequences of scalars can be drawn as sparklines. Paths of a body can be
// drawn on a braille [Canvas] seen from above.
//
// Colors come from the current [Theme]; [SetTheme] switches it.
package viz
