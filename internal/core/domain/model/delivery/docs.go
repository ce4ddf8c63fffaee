// Package delivery implements the DeliveryWork aggregate: a delivery task
// posted by a company, the escrow that funds it and the driver performing it.
//
// The package includes:
//   - DeliveryWork: the aggregate root holding identity, metadata, driver slot,
//     escrow balance, proof of delivery and lifecycle status
//   - Status: the lifecycle state machine (Open, Assigned, Completed, Disputed)
//   - Payout: a coin drained from escrow together with its only recipient
//   - DeliveryCompleted: the event raised when proof of delivery is uploaded
//
// Key business rules:
//   - Every mutating operation checks the caller first, then the state, and
//     only then mutates; a failed operation leaves the aggregate unchanged
//   - The escrow grows only by deposit and shrinks only by settle, refund,
//     withdraw or tip, each of which hands back exactly one Payout
//   - Uploading proof completes the delivery and settles the escrow in one step
//   - Withdraw is a company override available in every state
package delivery
