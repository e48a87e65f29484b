package model

import "time"

// User represents a credential record as stored in the `users` table.
// The same table backs both administrators and regular travellers; the
// IsAdmin flag is the only distinction.  The json tags are omitted here
// because these structs are used internally by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password; the plaintext is never stored.
//  IsAdmin      – whether the account may call admin endpoints.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    IsAdmin      bool      // users.is_admin
    CreatedAt    time.Time // users.created_at
}
