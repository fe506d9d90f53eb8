// Spotify Web API client for catalog item lookups.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"songblog/internal/models"
	"songblog/internal/shared"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// Kind identifies the type of catalog item a link points at.
type Kind string

const (
	KindTrack    Kind = "track"
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
)

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Owner represents a playlist owner.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Album represents a Spotify album.
type Album struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
	Images  []Image  `json:"images"`
}

// Track represents a Spotify track.
type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
	Album   Album    `json:"album"`
}

// Playlist represents a Spotify playlist.
type Playlist struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Owner  Owner   `json:"owner"`
	Images []Image `json:"images"`
}

// Client resolves catalog links to song metadata. A Client holds only
// credentials and endpoints; it performs a fresh client-credentials exchange
// on every call and is safe to construct per request.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	baseURL      string
	httpClient   *http.Client
}

// NewClient creates a new catalog [Client] with the given Spotify credentials.
func NewClient(clientID, clientSecret string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id/client_secret", shared.ErrMissingCredentials)
	}

	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     spotifyTokenURL,
		baseURL:      spotifyBaseURL,
		httpClient:   http.DefaultClient,
	}, nil
}

// WithEndpoints overrides the token and API base URLs. Used by tests to point
// the client at a local server.
func (c *Client) WithEndpoints(tokenURL, baseURL string) *Client {
	c.tokenURL = tokenURL
	c.baseURL = baseURL
	return c
}

// Resolve looks up the catalog item a link points at and returns normalized
// song metadata. The link's final path segment is the item id; the kind comes
// from substring matches on the link itself.
func (c *Client) Resolve(ctx context.Context, link string) (models.Song, error) {
	id, kind, err := ParseLink(link)
	if err != nil {
		return models.Song{}, err
	}

	token, err := c.exchange(ctx)
	if err != nil {
		return models.Song{}, fmt.Errorf("%w: token exchange: %v", shared.ErrUpstream, err)
	}

	song := models.Song{URL: link}

	switch kind {
	case KindTrack:
		var track Track
		if err := c.get(ctx, token, "/tracks/"+id, &track); err != nil {
			return models.Song{}, fmt.Errorf("%w: track lookup: %v", shared.ErrUpstream, err)
		}
		song.Name = track.Name
		song.Artist = firstArtist(track.Artists)
		song.Image = firstImage(track.Album.Images)
	case KindAlbum:
		var album Album
		if err := c.get(ctx, token, "/albums/"+id, &album); err != nil {
			return models.Song{}, fmt.Errorf("%w: album lookup: %v", shared.ErrUpstream, err)
		}
		song.Name = album.Name
		song.Artist = firstArtist(album.Artists)
		song.Image = firstImage(album.Images)
	case KindPlaylist:
		var playlist Playlist
		if err := c.get(ctx, token, "/playlists/"+id, &playlist); err != nil {
			return models.Song{}, fmt.Errorf("%w: playlist lookup: %v", shared.ErrUpstream, err)
		}
		song.Name = playlist.Name
		song.Artist = playlist.Owner.DisplayName
		song.Image = firstImage(playlist.Images)
	}

	return song, nil
}

// ParseLink extracts the catalog item id and [Kind] from a share link.
// The id is the final path segment with any query string stripped.
func ParseLink(link string) (string, Kind, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", shared.ErrInvalidLink, err)
	}

	id := path.Base(u.Path)
	if id == "" || id == "." || id == "/" {
		return "", "", fmt.Errorf("%w: no item id in %q", shared.ErrInvalidLink, link)
	}

	var kind Kind
	switch {
	case strings.Contains(link, "track"):
		kind = KindTrack
	case strings.Contains(link, "album"):
		kind = KindAlbum
	case strings.Contains(link, "playlist"):
		kind = KindPlaylist
	default:
		return "", "", fmt.Errorf("%w: unrecognized item kind in %q", shared.ErrInvalidLink, link)
	}

	return id, kind, nil
}

// exchange performs a client-credentials grant and returns the access token.
func (c *Client) exchange(ctx context.Context) (*oauth2.Token, error) {
	conf := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
	}

	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	return conf.Token(ctx)
}

// get performs an authenticated GET against the Spotify API and decodes the
// JSON response into result.
func (c *Client) get(ctx context.Context, token *oauth2.Token, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("spotify API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func firstArtist(artists []Artist) string {
	if len(artists) == 0 {
		return ""
	}
	return artists[0].Name
}

func firstImage(images []Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
