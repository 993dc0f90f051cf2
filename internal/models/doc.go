// Package models defines the core domain records for Walletwise.
//
// # Group expenses
//
// The settlement ledger is built from three records:
//   - GroupExpense: one shared outlay fronted by a payer
//   - ExpenseShare: one participant's obligation within a GroupExpense
//   - Settlement: the audit record written whenever a share is settled
//
// A GroupExpense owns its shares. Share amounts are fixed at creation and must
// reconcile to the expense amount; only the settlement fields of a share ever
// change afterwards. GroupExpense.IsSettled is derived from the shares and is
// never written by callers.
//
// # Personal finance
//
// Budget and Transaction are single-user records with no cross-entity rules.
//
// # Identity
//
// Users are owned by the identity collaborator. The ledger only needs the
// numeric ID and a display name for reporting.
//
// All amounts use decimal.Decimal; binary floating point is never used for money.
package models
