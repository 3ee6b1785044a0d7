// Package bench runs field multiplication strategies side by side over the
// same operands and compares their speed and their results.
//
// Every strategy multiplies an identical, seeded sequence of operand pairs
// and folds its products into a digest. Strategies that agree produce the
// same digest, so a single comparison at the end detects any arithmetic
// disagreement without storing the products.
package bench
