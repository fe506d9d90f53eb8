// Package models defines the domain entities and persistence interfaces for the songblog service.
//
// Persistent entities:
//   - [User] : account records with unique email and username
//   - [Blog] : posts with embedded [Song] metadata resolved from the music catalog
//   - [Comment] : flat comments attached to a blog post
//
// [Song] is a value type embedded in [Blog], never persisted on its own.
//
// All persistent entities implement the [Model] interface providing identity,
// timestamps, and validation. The [Repository] interface defines standard CRUD
// operations for database access; extended lookups (by email, by author, by
// post) live on the concrete repository types.
package models
