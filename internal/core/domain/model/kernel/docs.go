// Package kernel provides the domain primitives shared by every aggregate of the
// discount and delivery backend.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: non-negative two-decimal amount backed by shopspring/decimal
//   - Role and Actor: who performs an operation and which restaurant, driver or
//     customer profile they are bound to
//
// The primitives are immutable values; zero values fail validation.
package kernel
