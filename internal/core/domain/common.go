package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Permission names an action the acting user may perform on vouchers.
type Permission string

const (
	PermVoucherWrite    Permission = "voucher.write"
	PermVoucherReview   Permission = "voucher.review"
	PermVoucherFinalize Permission = "voucher.finalize"
	PermVoucherRevert   Permission = "voucher.revert"
)

// Actor is the user on whose behalf the engine runs. It is always passed
// explicitly; the engine never looks up a current user on its own.
type Actor struct {
	UserID      string
	Permissions map[Permission]bool
}

// NewActor builds an actor holding the given permissions.
func NewActor(userID string, perms ...Permission) Actor {
	a := Actor{UserID: userID, Permissions: make(map[Permission]bool, len(perms))}
	for _, p := range perms {
		a.Permissions[p] = true
	}
	return a
}

// Can reports whether the actor holds perm.
func (a Actor) Can(perm Permission) bool {
	return a.Permissions[perm]
}
