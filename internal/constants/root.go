package constants

const (
	AppName = "wellsched"
	Version = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"
	// TimeFormat is the standard time-of-day format (HH:MM, 24-hour)
	TimeFormat = "15:04"

	DefaultDataDir    = "~/.config/wellsched"
	DefaultCalendarID = "primary"

	// CredentialsFile and TokenFile are resolved relative to the data dir
	// unless the caller passes absolute paths.
	CredentialsFile = "credentials.json"
	TokenFile       = "token.json"

	// SlotStepMinutes is the cursor step when enumerating candidate slots.
	// Slots deliberately overlap every step so the scorer has more to pick from.
	SlotStepMinutes = 15

	// BufferMinutes is the minimum separation between two committed
	// activities on the same calendar day.
	BufferMinutes = 15

	// OccupancyHorizonDays bounds how far ahead pre-existing wellness
	// events are loaded into the occupancy tracker for a scheduling run.
	OccupancyHorizonDays = 14

	DefaultSlotDurationMin = 30
	DefaultWindows         = "6-9,18-21"

	// DefaultTimeToleranceMin is the start/duration tolerance when judging
	// two events to be duplicates.
	DefaultTimeToleranceMin = 5
	// DefaultMinSimilarity is the grouping threshold on the 0-100 scale.
	DefaultMinSimilarity = 80.0

	// MaxBatchDelete caps a single batch deletion. Larger batches are
	// rejected outright with no deletions performed.
	MaxBatchDelete = 20

	// MaxAuditEntries bounds the resolution audit log.
	MaxAuditEntries = 50

	// EventSignature is appended to every event description this tool
	// creates and doubles as the query filter for our own events.
	EventSignature = "Generated by Personal AI Wellness Assistant"

	// EventColorID is the Google Calendar color for wellness events (green).
	EventColorID = "2"
)
