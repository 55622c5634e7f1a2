package google

// DefaultOAuthScopes are the Google OAuth scopes required for full
// functionality. These scopes are used consistently across the application
// for OAuth configurations.
//
// The scopes provide access to:
//   - Gmail: read, modify, send, settings (ranking, drafts, unsubscribe labels)
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Gmail scopes
	"https://mail.google.com/", // Full Gmail access (includes send)
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.settings.basic",
}
