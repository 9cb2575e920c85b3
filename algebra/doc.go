// Package algebra defines the contracts shared by every algebraic structure
// of the module: sets and their elements, semigroups, monoids, groups,
// cyclic groups, rings and fields.
//
// Capabilities are split into small traits (Closed, HasIdentity, Invertible,
// Cyclic, Dualistic) that concrete structures combine according to what
// their mathematics supports. Algorithms that only need a trait, such as
// square-and-multiply, simultaneous multi-exponentiation or generator
// search, are written once in this package.
//
// Structures are obtained from canonicalizing factories backed by a
// Registry, so that equal parameters always resolve to the same instance.
// Randomness is always passed in as an io.Reader.
package algebra
