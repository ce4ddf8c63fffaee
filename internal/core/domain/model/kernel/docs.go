// Package kernel provides the primitives shared by every aggregate of the
// delivery marketplace:
//   - UUID: aggregate identifiers
//   - Address: caller identities (companies, drivers, account owners)
//   - Clock: the timestamp source used when deliveries are created
//
// They are immutable value objects and safe for concurrent use.
package kernel
