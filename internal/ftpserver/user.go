package ftpserver

import (
	"sync"
)

// UserStatus tracks where a connection sits in the login handshake,
// grounded on the teacher's clientHandler state machine.
type UserStatus int

const (
	UserStatusInactive UserStatus = iota
	UserStatusLogging
	UserStatusActive
)

// TransferType mirrors the TYPE command's two values this server supports.
type TransferType int

const (
	TransferTypeASCII TransferType = iota
	TransferTypeBinary
)

// User is the single piece of mutable state owned by a connection. Every
// field is read or written only while holding mu: it is the sole
// serialization point for the Connection Actor, matching the teacher's
// clientHandler locking discipline.
type User struct {
	mu sync.Mutex

	Username   string
	Status     UserStatus
	WorkingDir string
	Type       TransferType

	transfer   *TransferSession
	renameFrom string
}

// NewUser returns a fresh, unauthenticated user rooted at "/".
func NewUser() *User {
	return &User{
		Status:     UserStatusInactive,
		WorkingDir: "/",
		Type:       TransferTypeASCII,
	}
}

func (u *User) Lock()   { u.mu.Lock() }
func (u *User) Unlock() { u.mu.Unlock() }

// Transfer returns the currently prepared or in-flight transfer session, if
// any. Caller must hold the lock.
func (u *User) Transfer() *TransferSession {
	return u.transfer
}

// SetTransfer installs a new transfer session, replacing (and closing) any
// previous one. Caller must hold the lock.
func (u *User) SetTransfer(t *TransferSession) {
	if u.transfer != nil {
		_ = u.transfer.Close()
	}

	u.transfer = t
}

// ClearTransfer drops the current transfer session without closing it
// (used once a transfer has completed and its connection already closed).
// Caller must hold the lock.
func (u *User) ClearTransfer() {
	u.transfer = nil
}

// RenameFrom returns the path pending a RNTO, or "" if none. Caller must
// hold the lock.
func (u *User) RenameFrom() string {
	return u.renameFrom
}

// SetRenameFrom records the source path of a pending rename. Caller must
// hold the lock.
func (u *User) SetRenameFrom(path string) {
	u.renameFrom = path
}
