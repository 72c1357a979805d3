package tracking

// Dispatcher accepts fire-and-forget view-tracking submissions. Track must
// never block the caller: over-limit or failed submissions are dropped and
// logged, never retried within the session.
type Dispatcher interface {
	Track(sessionID, storyID string)
}
