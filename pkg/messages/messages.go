package messages

const (
	// ErrUserErrorProcessing is the generic message sent to a user when an
	// action fails for a reason they cannot fix.
	ErrUserErrorProcessing = "An error occurred while processing your request. Please try again."

	// ErrServerNotConfigured is sent when a guild has no ticketing
	// configuration loaded.
	ErrServerNotConfigured = "This server is not configured for tickets. Please contact an administrator."

	// ErrTicketStateNotFound is sent when the draft or pending record for a
	// channel has gone away, usually because another action raced ahead.
	ErrTicketStateNotFound = "Ticket data not found. Please create a new ticket."

	// ErrFinalizeFailed is sent when a ticket could not be finalized.
	ErrFinalizeFailed = "Failed to finalize ticket. Please try again."

	// ErrPermissionDenied is sent when a user attempts to close or cancel a
	// ticket that they do not own.
	ErrPermissionDenied = "Only the ticket creator, server admins, or server owner can close this ticket."

	// ErrTicketChannelOnly is sent when a close is attempted outside of a
	// ticket channel.
	ErrTicketChannelOnly = "This command can only be used in ticket channels."

	// ErrCreateTooFast is sent when a user hits the ticket creation rate
	// limit.
	ErrCreateTooFast = "You are creating tickets too quickly. Please wait a moment and try again."
)
