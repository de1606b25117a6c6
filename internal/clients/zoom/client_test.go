package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"testing"
	"time"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func Test_ZoomClient_ExchangeCredentials_ShouldBeSuccessful(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		user, password, ok := req.BasicAuth()
		if !ok || user != "client" || password != "secret" {
			return false
		}
		if err := req.ParseForm(); err != nil {
			return false
		}
		return req.URL.String() == "https://zoom.us/oauth/token" &&
			req.PostForm.Get("grant_type") == "account_credentials" &&
			req.PostForm.Get("account_id") == "account"
	})).Return(jsonResponse(200, `{"access_token":"abc","token_type":"bearer","expires_in":3600}`), nil)

	client := NewClient("https://zoom.us/oauth/token", "https://api.zoom.us/v2")
	client.SetHTTPClient(mockClient)

	token, lifetime, err := client.ExchangeCredentials(context.Background(),
		Credentials{AccountID: "account", ClientID: "client", ClientSecret: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.Equal(t, time.Hour, lifetime)
	mockClient.AssertExpectations(t)
}

func Test_ZoomClient_ExchangeCredentials_NonSuccessStatus_ShouldFail(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(jsonResponse(401, `{"reason":"Invalid client_id or client_secret"}`), nil)

	client := NewClient("https://zoom.us/oauth/token", "https://api.zoom.us/v2")
	client.SetHTTPClient(mockClient)

	_, _, err := client.ExchangeCredentials(context.Background(), Credentials{})
	assert.ErrorContains(t, err, "401")
}

func Test_ZoomClient_CreateMeeting_ShouldBeSuccessful(t *testing.T) {
	location, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	start := time.Date(2026, 10, 20, 11, 0, 0, 0, location)

	var sent createMeetingRequest
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.URL.String() != "https://api.zoom.us/v2/users/me/meetings" ||
			req.Header.Get("Authorization") != "Bearer abc" {
			return false
		}
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return false
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		return json.Unmarshal(body, &sent) == nil
	})).Return(jsonResponse(201,
		`{"id":85746065432,"join_url":"https://zoom.us/j/85746065432","start_time":"2026-10-20T05:30:00Z","timezone":"Asia/Kolkata"}`), nil)

	client := NewClient("https://zoom.us/oauth/token", "https://api.zoom.us/v2/")
	client.SetHTTPClient(mockClient)

	meeting, err := client.CreateMeeting(context.Background(), "abc", models.MeetingRequest{
		Title:    "Backend Engineer technical interview",
		Slot:     models.InterviewSlot{Start: start, Duration: time.Hour, Timezone: "Asia/Kolkata"},
		Attendee: "a@x.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "85746065432", meeting.ID)
	assert.Equal(t, "https://zoom.us/j/85746065432", meeting.JoinURL)
	assert.True(t, meeting.StartsAt.Equal(start))

	assert.Equal(t, 2, sent.Type)
	assert.Equal(t, "2026-10-20T11:00:00", sent.StartTime)
	assert.Equal(t, 60, sent.Duration)
	assert.Equal(t, "Asia/Kolkata", sent.Timezone)
	require.Len(t, sent.Settings.MeetingInvitees, 1)
	assert.Equal(t, "a@x.com", sent.Settings.MeetingInvitees[0].Email)
}

func Test_ZoomClient_CreateMeeting_ServerError_ShouldFail(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(jsonResponse(500, `{}`), nil)

	client := NewClient("https://zoom.us/oauth/token", "https://api.zoom.us/v2")
	client.SetHTTPClient(mockClient)

	_, err := client.CreateMeeting(context.Background(), "abc", models.MeetingRequest{
		Slot: models.InterviewSlot{Start: time.Now(), Duration: time.Hour, Timezone: "UTC"},
	})
	assert.Error(t, err)
}
