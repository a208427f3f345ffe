// Package session defines the narrow boundary between the strada engine
// and session collaborators, plus a signed-cookie store implementation.
//
// The engine itself has no opinion about session persistence; it passes
// the session_secret setting to the store opaquely and exposes the Store
// to handlers through the request context. CookieStore keeps the whole
// session payload client-side, authenticated with HMAC-SHA256.
package session
