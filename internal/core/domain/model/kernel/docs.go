// Package kernel provides core domain primitives and utilities for the order
// service. It implements fundamental building blocks following Domain-Driven
// Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: An exact-decimal amount paired with a currency, with currency-safe arithmetic
//   - Address: An immutable postal address with field validation
//   - Channel: The sales channel enumeration with its fixed order-number prefixes
//   - OrderID: The externally visible channel- and date-scoped order identifier
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are designed to be
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
