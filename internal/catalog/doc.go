// Package catalog implements the Spotify metadata client used when a blog post
// is created from a track, album, or playlist link.
//
// # Authentication
//
// The client uses the OAuth2 client-credentials grant via
// [golang.org/x/oauth2/clientcredentials]. No token is cached: every
// [Client.Resolve] call performs a fresh exchange, so the client value carries
// no hidden process-wide state and can be constructed per call site.
//
// # Link resolution
//
// [Client.Resolve] extracts the catalog item id from the link's final path
// segment and infers the item kind (track, album, playlist) from substring
// matches, mirroring the share links Spotify hands out. Unrecognized links fail
// with [shared.ErrInvalidLink]; exchange, lookup, and decode failures wrap
// [shared.ErrUpstream] with the underlying message preserved for diagnostics.
//
// # API mappings
//
// Responses are trimmed Spotify Web API objects mapped to [models.Song]:
// the first artist name (playlists: the owner's display name) and the first
// available image, which may be absent.
package catalog
