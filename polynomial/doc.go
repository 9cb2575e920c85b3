// Package polynomial implements polynomial rings over arbitrary rings of the
// algebra package and binary extension fields GF(2^m), the coordinate
// fields of binary elliptic curves.
package polynomial
