package google

// OAuthScopes are the Google OAuth scopes the agenda backend requests.
// The application never writes calendar data, so both scopes are read-only.
var OAuthScopes = []string{
	// Google Calendar (events domain)
	"https://www.googleapis.com/auth/calendar.readonly",

	// Google Tasks (reminders domain)
	"https://www.googleapis.com/auth/tasks.readonly",
}
