// Package exactcalc implements an exact-arithmetic calculator for single-line
// expressions.
//
// Integers and fractions stay exact: "1/3+1/3+1/3" is the integer 1, and
// "7/2" is the rational 7 / 2 rather than 3.5. Integers too large for 64 bits
// become big integers automatically. Only results that are irrational, like
// "sqrt(2)", or that involve real numbers fall back to floating point.
//
// Expressions are evaluated by finding the operator to apply last, the least
// binding one outside brackets and strings, and evaluating the text on either
// side of it. "-2^2" is "-(2^2)", and operators of equal precedence group to
// the left, including "^". A minus sign directly after another operator is
// not a negation, so "2*-3" must be written "2*(-3)".
//
// Besides numbers, values may be text in double quotes, which "+" joins to
// anything, and the bools true and false, which "+" and "*" combine as or and
// and.
package exactcalc
