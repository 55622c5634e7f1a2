// Package google provides OAuth2 authentication and token management for
// the Gmail API. Tokens are cached per account on disk; token acquisition
// itself happens out of band (the user exchanges an authorization code once
// via the auth URL).
package google
