package notify

// Level classifies a transient user-facing notification, mirroring the toast
// variants the frontend renders.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Event types pushed alongside notifications so connected clients can
// refresh the affected views without polling.
const (
	EventTeamsUpdated      = "TEAMS_UPDATED"
	EventMatchesUpdated    = "MATCHES_UPDATED"
	EventPlayoffsGenerated = "PLAYOFFS_GENERATED"
	EventFinalCreated      = "FINAL_CREATED"
	EventTournamentReset   = "TOURNAMENT_RESET"
)

// Notification is the payload of a toast message.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier delivers outcome messages and state-change events to the
// presentation layer. Every mutation of the tournament state reports its
// outcome through this interface; delivery is fire-and-forget.
type Notifier interface {
	Notify(level Level, title, message string)
	Event(eventType string, payload interface{})
}
