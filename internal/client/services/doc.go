// Package services holds the client's state containers and application
// services.
//
// SessionStore owns the credential and the signed-in identity. CartStore
// owns the server's cart snapshot and reads the credential from the
// session on every call. CatalogService, DashboardService and
// UploadService are stateless wrappers over the API used by the seller
// commands.
//
// Stores are safe for concurrent use: the REPL goroutine and the broadcast
// watcher both reach them. Requests are not serialized; the last response
// to arrive wins.
package services
