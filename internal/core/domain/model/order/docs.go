// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding the immutable customer snapshot, line items
//     and totals, plus the mutable status, driver and audit trail
//   - Status and Transition: the lifecycle graph together with the role authorized
//     for each edge and the action name dashboards show for it
//   - Progress and Badge: the tracker milestone and the shared visual treatment of
//     each status
//
// Key business rules:
//   - pending_restaurant_acceptance -> confirmed -> preparing -> ready_for_pickup ->
//     assigned_to_driver -> picked_up -> in_transit -> delivered
//   - Any non-terminal order may be cancelled by its merchant or an admin
//   - Only the assigned driver moves an order after assignment
//   - Totals are fixed at creation: (subtotal - discount) + delivery fee + tax
package order
