// Package repositories implements SQLite persistence for all domain entities.
//
// Key implementations:
//   - [UserRepository] : account persistence with email-based lookups and uniqueness checks
//   - [BlogRepository] : post persistence with author-scoped and newest-first listings
//   - [CommentRepository] : per-post comment listings
//
// Listing queries join the users table so responses carry the author's username
// without a second round trip. [BlogRepository.DeleteCascade] removes a post and
// its comments inside a single transaction.
//
// Errors wrap the sentinels in internal/shared ([shared.ErrNotFound],
// [shared.ErrEmailTaken], [shared.ErrUsernameTaken]) so callers can classify
// failures with [errors.Is].
package repositories
