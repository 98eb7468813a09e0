// Package google provides OAuth2 authentication and token management for
// the Google Calendar API.
//
// Tokens are stored per account in the user cache directory, which suits
// the STDIO transport where the server runs under the user's own account.
// The TokenProvider interface allows other token sources to be plugged in.
package google
