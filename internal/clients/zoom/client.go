package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const zoomTimeFormat = "2006-01-02T15:04:05"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Credentials struct {
	AccountID    string
	ClientID     string
	ClientSecret string
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	tokenURL    string
	apiURL      string
}

func NewClient(tokenURL string, apiURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokenURL:   tokenURL,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeCredentials performs the server-to-server OAuth exchange and returns
// the bearer token together with its reported lifetime.
func (c *Client) ExchangeCredentials(ctx context.Context, creds Credentials) (string, time.Duration, error) {

	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", creds.AccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(creds.ClientID, creds.ClientSecret)

	body, err := c.sendRequest(ctx, req)
	if err != nil {
		return "", 0, err
	}

	var token tokenResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&token); err != nil {
		return "", 0, fmt.Errorf("error decoding JSON response: %v", err)
	}

	if token.AccessToken == "" || token.ExpiresIn <= 0 {
		return "", 0, fmt.Errorf("token response has no access token or lifetime")
	}

	return token.AccessToken, time.Duration(token.ExpiresIn) * time.Second, nil
}

type meetingInvitee struct {
	Email string `json:"email"`
}

type meetingSettings struct {
	JoinBeforeHost  bool             `json:"join_before_host"`
	WaitingRoom     bool             `json:"waiting_room"`
	MeetingInvitees []meetingInvitee `json:"meeting_invitees,omitempty"`
}

type createMeetingRequest struct {
	Topic     string          `json:"topic"`
	Type      int             `json:"type"`
	StartTime string          `json:"start_time"`
	Duration  int             `json:"duration"`
	Timezone  string          `json:"timezone"`
	Agenda    string          `json:"agenda,omitempty"`
	Settings  meetingSettings `json:"settings"`
}

type meetingResponse struct {
	ID        json.Number `json:"id"`
	JoinURL   string      `json:"join_url"`
	StartTime time.Time   `json:"start_time"`
	Timezone  string      `json:"timezone"`
}

// CreateMeeting books a scheduled meeting on behalf of the token's account.
func (c *Client) CreateMeeting(ctx context.Context, token string,
	request models.MeetingRequest) (models.MeetingReference, error) {

	payload := createMeetingRequest{
		Topic:     request.Title,
		Type:      2,
		StartTime: request.Slot.Start.Format(zoomTimeFormat),
		Duration:  request.Slot.DurationMinutes(),
		Timezone:  request.Slot.Timezone,
		Agenda:    fmt.Sprintf("Interview with %s", request.Attendee),
		Settings: meetingSettings{
			JoinBeforeHost:  false,
			WaitingRoom:     true,
			MeetingInvitees: []meetingInvitee{{Email: request.Attendee}},
		},
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return models.MeetingReference{}, fmt.Errorf("error encoding meeting payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/users/me/meetings", buf)
	if err != nil {
		return models.MeetingReference{}, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.sendRequest(ctx, req)
	if err != nil {
		return models.MeetingReference{}, err
	}

	var meeting meetingResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&meeting); err != nil {
		return models.MeetingReference{}, fmt.Errorf("error decoding JSON response: %v", err)
	}

	if meeting.ID == "" {
		return models.MeetingReference{}, fmt.Errorf("meeting response has no id")
	}

	startsAt := request.Slot.Start
	if !meeting.StartTime.IsZero() {
		startsAt = meeting.StartTime.In(request.Slot.Start.Location())
	}

	return models.MeetingReference{
		ID:       meeting.ID.String(),
		JoinURL:  meeting.JoinURL,
		StartsAt: startsAt,
		Timezone: request.Slot.Timezone,
	}, nil
}

func (c *Client) sendRequest(ctx context.Context, req *http.Request) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
