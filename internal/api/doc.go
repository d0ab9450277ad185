// Package api implements the HTTP handlers for the gateway: task
// submission and lookup, aggregate status, metrics, and the capabilities
// catalog. Handlers translate between the HTTP surface and the ledger,
// router, and executor; they hold no task state of their own.
package api
