package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutordesk/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestAuthHeaderAttached(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("abc123"), nil)
	_, err := c.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Token abc123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestNoTokenOmitsHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "t"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequestErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"slot already booked"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	_, err := c.CreateBooking(context.Background(), 42)
	require.Error(t, err)

	var re *RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadRequest, re.Status)
	assert.Equal(t, "slot already booked", re.Message)
}

func TestRequestErrorGenericWhenNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	_, err := c.ListBookings(context.Background())
	var re *RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Empty(t, re.Message)
}

func TestNoContentResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	assert.NoError(t, c.DeleteSlot(context.Background(), 7))
}

func TestCreateSlotNormalizesSingle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"date":"2026-02-01","start_time":"09:00","end_time":"10:00","available":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	slots, err := c.CreateSlot(context.Background(), NewSlotRequest{
		Date: "2026-02-01", StartTime: "09:00", EndTime: "10:00", Available: true,
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(1), slots[0].ID)
}

func TestCreateSlotNormalizesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1},{"id":2},{"id":3}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	slots, err := c.CreateSlot(context.Background(), NewSlotRequest{
		Date: "2026-02-01", StartTime: "09:00", EndTime: "12:00", Available: true,
	})
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, int64(2), slots[1].ID)
}

func TestFetchNewMessagesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages/check/", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("contact_id"))
		assert.Equal(t, "10", r.URL.Query().Get("last_id"))
		_ = json.NewEncoder(w).Encode([]model.Message{{ID: 11, Text: "hi"}})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	msgs, err := c.FetchNewMessages(context.Background(), 4, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(11), msgs[0].ID)
}

func TestSendMessageReturnsServerAssigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["receiver"])
		assert.Equal(t, "hello", body["text"])
		_ = json.NewEncoder(w).Encode(model.Message{ID: 99, ReceiverID: 4, Text: "hello"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), nil)
	msg, err := c.SendMessage(context.Background(), 4, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(99), msg.ID)
}

func TestAddRatingRejectsOutOfRange(t *testing.T) {
	c := New("http://unused", staticToken("t"), nil)
	assert.Error(t, c.AddRating(context.Background(), 1, 0))
	assert.Error(t, c.AddRating(context.Background(), 1, 6))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&RequestError{Status: 401}))
	assert.True(t, IsAuthError(&RequestError{Status: 403}))
	assert.False(t, IsAuthError(&RequestError{Status: 500}))
	assert.False(t, IsAuthError(errors.New("other")))
}
