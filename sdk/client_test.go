package sdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	last recorded
}

func (r *recorder) get() recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]interface{}
}

// fakeAPI answers like the realty API and remembers the last request
func fakeAPI(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	record := func(r *http.Request) recorded {
		last := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &last.body)
		}
		rec.mu.Lock()
		rec.last = last
		rec.mu.Unlock()
		return last
	}

	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		last := record(r)
		if last.body["password"] != "secret1" {
			write(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "code": CodeLoginFailed, "message": "invalid email or password"})
			return
		}
		write(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]interface{}{
			"token":     "tok-1",
			"user_info": map[string]interface{}{"id": "u1", "name": "Asha", "email": "asha@example.com", "role": "agent"},
		}})
	})
	mux.HandleFunc("/api/v1/customers", func(w http.ResponseWriter, r *http.Request) {
		last := record(r)
		if r.Method == http.MethodPost {
			if last.body["phoneNumber"] == "taken" {
				write(w, http.StatusConflict, map[string]interface{}{"success": false, "code": CodeCustomerExists, "message": "This customer already exists in your agency."})
				return
			}
			write(w, http.StatusCreated, map[string]interface{}{"success": true, "message": "Customer has been successfully added.",
				"data": map[string]interface{}{"id": "c1", "fullName": last.body["fullName"], "phoneNumber": last.body["phoneNumber"]}})
			return
		}
		write(w, http.StatusOK, map[string]interface{}{"success": true, "data": []interface{}{},
			"pagination": map[string]interface{}{"total": 0, "page": 2, "limit": 5, "totalPages": 0}})
	})
	mux.HandleFunc("/api/v1/conversations", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		write(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]interface{}{
			"conversations": []interface{}{map[string]interface{}{"id": "conv-1", "unreadCount": 2, "view": "archived"}},
			"archiveCount":  1,
		}})
	})
	mux.HandleFunc("/api/v1/conversations/conv-1/read", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		write(w, http.StatusOK, map[string]interface{}{"success": true, "message": "2 message(s) marked as read"})
	})
	mux.HandleFunc("/api/v1/conversations/missing/archive", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		write(w, http.StatusNotFound, map[string]interface{}{"success": false, "code": CodeConvNotFound, "message": "Conversation not found"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginStoresToken(t *testing.T) {
	ctx := context.Background()
	var rec recorder
	srv := fakeAPI(t, &rec)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "wrong1"})
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Empty(t, c.GetToken())

	resp, err := c.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, "Asha", resp.UserInfo.Name)
	assert.Equal(t, "tok-1", c.GetToken())

	_, _, err = c.ListCustomers(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", rec.get().auth)
}

func TestClient_Customers(t *testing.T) {
	ctx := context.Background()
	var rec recorder
	srv := fakeAPI(t, &rec)
	c, err := NewClient(srv.URL, WithToken("tok-1"))
	require.NoError(t, err)

	created, err := c.CreateCustomer(ctx, &Customer{FullName: "Priya Shah", PhoneNumber: "9990001111"})
	require.NoError(t, err)
	assert.Equal(t, "c1", created.Id)
	assert.Equal(t, http.MethodPost, rec.get().method)
	assert.Equal(t, "Priya Shah", rec.get().body["fullName"])

	_, err = c.CreateCustomer(ctx, &Customer{FullName: "Someone", PhoneNumber: "taken"})
	assert.ErrorIs(t, err, ErrCustomerExists)
	assert.Equal(t, http.StatusConflict, StatusOf(err))

	items, page, err := c.ListCustomers(ctx, ListOptions{Page: 2, Limit: 5, Search: "priya"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(2), page.Page)
	assert.Equal(t, "limit=5&page=2&search=priya", rec.get().query)
}

func TestClient_Conversations(t *testing.T) {
	ctx := context.Background()
	var rec recorder
	srv := fakeAPI(t, &rec)
	c, err := NewClient(srv.URL, WithToken("tok-1"))
	require.NoError(t, err)

	list, err := c.ListConversations(ctx, ViewArchived)
	require.NoError(t, err)
	assert.Equal(t, "archived=true", rec.get().query)
	require.Len(t, list.Conversations, 1)
	assert.Equal(t, int64(2), list.Conversations[0].UnreadCount)
	assert.Equal(t, int64(1), list.ArchiveCount)

	_, err = c.ListConversations(ctx, ViewActive)
	require.NoError(t, err)
	assert.Empty(t, rec.get().query)

	msg, err := c.MarkRead(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "2 message(s) marked as read", msg)
	assert.Equal(t, http.MethodPut, rec.get().method)

	err = c.ArchiveConversation(ctx, "missing")
	assert.ErrorIs(t, err, ErrConvNotFound)
	assert.Equal(t, "/api/v1/conversations/missing/archive", rec.get().path)
}
