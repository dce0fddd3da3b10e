package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a thin wrapper over the Holy Grail REST API. All methods map
// failures through the status message table; listing fetches additionally
// return discriminated Results instead of errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// NewClient builds a client for the API at baseURL. A nil session gets a
// fresh in-memory one.
func NewClient(baseURL string, session *Session) *Client {
	if session == nil {
		session = NewSession(nil)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    session,
	}
}

// Session exposes the injected auth state.
func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// call issues a request and decodes a 2xx body into out (when non-nil).
// Non-2xx statuses and transport failures come back as errors carrying the
// mapped user-facing message.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return errors.New(GenericErrorMessage)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.New(GenericErrorMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New(MessageForStatus(resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.New(GenericErrorMessage)
	}
	return nil
}

// envelope is the server's APIResponse wrapper for non-listing endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) callEnvelope(ctx context.Context, method, path string, body, out interface{}) error {
	var env envelope
	if err := c.call(ctx, method, path, nil, body, &env); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.New(GenericErrorMessage)
	}
	return nil
}

// Login authenticates and stores the credentials in the session.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var auth AuthResponse
	err := c.callEnvelope(ctx, http.MethodPost, "/auth/login",
		map[string]string{"username": username, "password": password}, &auth)
	if err != nil {
		return nil, err
	}
	c.session.SetCredentials(auth.User, auth.AccessToken)
	return &auth, nil
}

// Register creates an account and stores the credentials in the session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	err := c.callEnvelope(ctx, http.MethodPost, "/auth/create",
		map[string]string{"username": username, "email": email, "password": password}, &auth)
	if err != nil {
		return nil, err
	}
	c.session.SetCredentials(auth.User, auth.AccessToken)
	return &auth, nil
}

// Logout clears the session. Purely client-side; tokens are stateless.
func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) UpdateEmail(ctx context.Context, newEmail string) error {
	return c.callEnvelope(ctx, http.MethodPost, "/auth/update_email",
		map[string]string{"new_email": newEmail}, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, before, password string) error {
	return c.callEnvelope(ctx, http.MethodPost, "/auth/update_password",
		map[string]string{"before_password": before, "password": password}, nil)
}

// SendResetPasswordMail requests a reset mail. The error message for a 429
// is the exact throttle text from the shared message table.
func (c *Client) SendResetPasswordMail(ctx context.Context, email string) error {
	return c.callEnvelope(ctx, http.MethodPost, "/auth/send_reset_password_mail",
		map[string]string{"email": email}, nil)
}

func (c *Client) ResendEmailVerificationToken(ctx context.Context) error {
	return c.callEnvelope(ctx, http.MethodPost, "/auth/resend_email_verification_token", nil, nil)
}

// ApproveNote flips a pending note to approved. Admin only.
func (c *Client) ApproveNote(ctx context.Context, id int) error {
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/admin/approve/%d", id), nil, nil, nil)
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/note/%d", id), nil, nil, nil)
}

// DownloadURL resolves the presigned download link for a note.
func (c *Client) DownloadURL(ctx context.Context, id int) (string, error) {
	var payload struct {
		URL string `json:"url"`
	}
	if err := c.callEnvelope(ctx, http.MethodGet,
		fmt.Sprintf("/note/download/%d", id), nil, &payload); err != nil {
		return "", err
	}
	return payload.URL, nil
}

func (c *Client) AddFavourite(ctx context.Context, noteID int) error {
	return c.callEnvelope(ctx, http.MethodPost, "/favourites/add",
		map[string]int{"note_id": noteID}, nil)
}

func (c *Client) RemoveFavourite(ctx context.Context, noteID int) error {
	return c.callEnvelope(ctx, http.MethodPost, "/favourites/remove",
		map[string]int{"note_id": noteID}, nil)
}

// IsFavourited reports whether the logged-in user has favourited the note.
func (c *Client) IsFavourited(ctx context.Context, noteID int) (bool, error) {
	var payload struct {
		Favourited bool `json:"favourited"`
	}
	if err := c.callEnvelope(ctx, http.MethodGet,
		fmt.Sprintf("/favourites/check/%d", noteID), nil, &payload); err != nil {
		return false, err
	}
	return payload.Favourited, nil
}

// Favourites fetches one page of the user's favourited notes as a
// discriminated Result, like the library listings.
func (c *Client) Favourites(ctx context.Context, page, size int) Result[Page[Note]] {
	return c.fetchNotePage(ctx, "/favourites/", SearchParams{Page: page, Size: size})
}

// RecordAdClick and RecordAdView are fire-and-forget; failures are dropped.
func (c *Client) RecordAdClick(ctx context.Context, adID string) {
	_ = c.call(ctx, http.MethodPost, "/ad_analytics/ad_click",
		nil, map[string]string{"ad_id": adID}, nil)
}

func (c *Client) RecordAdView(ctx context.Context, adID string) {
	_ = c.call(ctx, http.MethodPost, "/ad_analytics/ad_view",
		nil, map[string]string{"ad_id": adID}, nil)
}
