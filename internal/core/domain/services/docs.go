// Package services provides domain services that span several aggregates.
//
// The package includes:
//   - DriverDispatcher: matches ready orders with drivers and keeps driver
//     availability in step with the order lifecycle
//   - RoleViewProjector: derives what each viewer sees of an order (badge, enabled
//     actions, contact details)
//   - ResolveCapabilities: the role -> capability mapping shared by every entry point
package services
