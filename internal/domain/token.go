package domain

// SessionToken Model
//
// One row per live session. A token is only honored while its row
// exists: logout deletes the row, which kills the session ahead of the
// JWT's own expiry.
type SessionToken struct {
	ID     uint   `gorm:"primaryKey"`              // Auto-increment primary key
	Token  string `gorm:"size:512;index;not null"` // Signed token string, exact-match lookup key
	UID    string `gorm:"size:64;not null"`        // Owning account's UID
	Expiry int64  `gorm:"not null"`                // Absolute unix seconds
}
