package google

// DefaultOAuthScopes are the Google OAuth scopes the scheduling engine
// needs. The engine only reads calendars; it never creates or modifies
// events, so everything is read-only.
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scopes: free/busy queries and event listing
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.freebusy",
}
