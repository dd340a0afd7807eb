// Package models defines the storefront entities exchanged with the remote
// API: users, products, cart snapshots, and field-level validation errors.
// JSON tags follow the API's wire names (MongoDB style "_id").
package models
