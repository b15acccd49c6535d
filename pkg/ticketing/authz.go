package ticketing

// Actor describes the user attempting a close or cancel, as seen by the
// platform boundary.
type Actor struct {
	// ID is the user's ID.
	ID string

	// IsAdmin indicates the administrator permission in the guild.
	IsAdmin bool

	// IsGuildOwner indicates the user owns the guild.
	IsGuildOwner bool
}

// CanManage reports whether the actor may close or cancel a ticket owned by
// ownerID. The ticket owner, any administrator, and the guild owner are
// allowed.
func (a Actor) CanManage(ownerID string) bool {
	return (ownerID != "" && a.ID == ownerID) || a.IsAdmin || a.IsGuildOwner
}
