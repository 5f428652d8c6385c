// Package migrations registers every schema migration with pkg/migration.
// Import it for side effects wherever migrations need to run.
package migrations
