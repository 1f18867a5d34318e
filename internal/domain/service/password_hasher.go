// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Repeated calls
	// with the same input produce different digests (fresh salt each time).
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// It fails closed: a malformed digest is a mismatch, never an error that
	// could be mistaken for a grant.
	Check(password, hash string) bool
}
