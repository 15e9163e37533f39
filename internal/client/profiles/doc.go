// Package profiles is the client's view of the remote profile store: the
// UserProfile model, the Repository contract the auth guard depends on, and
// a gRPC implementation of it.
package profiles
