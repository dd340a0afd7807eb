// Package localstorage is the persistence layer behind the client's durable
// key/value storage.
//
// Rows live in the local_storage table keyed by (origin, key); the schema
// is created by the goose migrations in internal/client/migrations. The
// SQLite implementation works over dbx-style handles, so *sql.DB and
// *sql.Tx are both accepted.
//
// Typical Usage
//
//	repo := localstorage.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "http://localhost:5000", "token", tok)
//	v, ok, _ := repo.Get(ctx, "http://localhost:5000", "token")
package localstorage
