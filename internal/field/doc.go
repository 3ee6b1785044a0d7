// Package field implements prime-field arithmetic on top of the fixedint
// kernel.
//
// A Field is built once per modulus and owns the Montgomery context for it.
// Elements are immutable values kept in Montgomery form, so multiplication
// is a single REDC. Addition and subtraction use a constant-structure
// correction step instead of a data-dependent branch.
//
// Domain describes curve parameters for the well-known curves; only the
// field arithmetic needed to check that a point satisfies the curve equation
// is provided.
package field
