package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/straye-as/calltracker-api/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, client.WithRetry(3, time.Millisecond))
}

func TestClient_LoginKeepsToken(t *testing.T) {
	var authHeader atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/login":
			var req domain.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ola@example.com", req.Email)
			writeJSON(w, http.StatusOK, domain.AuthResponse{ID: uuid.New(), Email: req.Email, Token: "tok-1"})
		case "/api/calls/today":
			authHeader.Store(r.Header.Get("Authorization"))
			assert.Equal(t, "2026-10-14", r.URL.Query().Get("date"))
			writeJSON(w, http.StatusOK, []domain.ScheduledCallDTO{})
		default:
			http.NotFound(w, r)
		}
	})

	resp, err := c.Login(context.Background(), "ola@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, "tok-1", c.Token())

	calls, err := c.TodayOn(context.Background(), "2026-10-14")
	require.NoError(t, err)
	assert.Empty(t, calls)
	assert.Equal(t, "Bearer tok-1", authHeader.Load())
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, domain.APIError{
			Type:    domain.ErrorTypeUnauthorized,
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	})

	_, err := c.Login(context.Background(), "ola@example.com", "wrong")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.Empty(t, c.Token())
}

func TestClient_RetriesGetOnServerError(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			writeJSON(w, http.StatusBadGateway, domain.APIError{Message: "upstream"})
			return
		}
		writeJSON(w, http.StatusOK, []domain.ScheduledCallDTO{{DueAt: "2026-10-14T09:00:00Z"}})
	})

	calls, err := c.Upcoming(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClient_GivesUpAfterAttempts(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusInternalServerError, domain.APIError{Message: "Failed to list calls"})
	})

	_, err := c.Today(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusNotFound, domain.APIError{Message: "User not found"})
	})

	_, err := c.Me(context.Background())
	assert.True(t, client.IsNotFound(err))
	assert.EqualValues(t, 1, attempts.Load())
}

func TestClient_DoesNotRetryWrites(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, domain.APIError{Message: "down"})
	})

	_, err := c.Register(context.Background(), "Ola", "ola@example.com", "secret123")
	require.Error(t, err)
	assert.EqualValues(t, 1, attempts.Load())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url, client.WithRetry(2, time.Millisecond))
	_, err := c.Today(context.Background())

	var netErr *client.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, netErr.Timeout())

	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := client.New(srv.URL,
		client.WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}),
		client.WithRetry(1, time.Millisecond),
	)
	_, err := c.Today(context.Background())

	var netErr *client.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestImportClients_Batches(t *testing.T) {
	var mu sync.Mutex
	var sizes []int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/clients/import", r.URL.Path)
		var req domain.ImportClientsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		mu.Lock()
		sizes = append(sizes, len(req.Data))
		mu.Unlock()

		writeJSON(w, http.StatusCreated, domain.ImportResult{
			Imported: len(req.Data) - 1,
			Skipped:  1,
			Total:    len(req.Data),
			Errors:   []string{"Row 1: missing or empty required field \"phone\""},
		})
	})

	rows := make([]client.ClientImportRecord, 250)
	result, err := c.ImportClients(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, []int{100, 100, 50}, sizes)
	assert.Equal(t, 247, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 250, result.Total)
	assert.Len(t, result.Errors, 3)
}

func TestImportCalls_StopsOnFailedBatch(t *testing.T) {
	var batches atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if batches.Add(1) == 2 {
			writeJSON(w, http.StatusInternalServerError, domain.APIError{Message: "Failed to import calls"})
			return
		}
		writeJSON(w, http.StatusCreated, domain.ImportResult{Imported: 100, Total: 100})
	})

	rows := make([]client.CallImportRecord, 301)
	result, err := c.ImportCalls(context.Background(), rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 2 of 4 (rows 101-200)")
	assert.Equal(t, 100, result.Imported)
	assert.EqualValues(t, 2, batches.Load())
}

func TestImport_NoRows(t *testing.T) {
	c := client.New("http://127.0.0.1:0")
	_, err := c.ImportClients(context.Background(), nil)
	assert.ErrorIs(t, err, client.ErrNoRows)
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffCompany,Phone,Email,Website,Extra\n" +
		"Acme AS, 22 33 44 55 ,post@acme.no,acme.no,x\n" +
		",,,,\n" +
		"Fjord AS,99887766,,,\n"

	rows, err := client.ReadCSV(strings.NewReader(input), client.DefaultClientColumns)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme AS", rows[0]["company"])
	assert.Equal(t, "22 33 44 55", rows[0]["phone"])
	assert.Equal(t, "post@acme.no", rows[0]["address"])
	assert.Equal(t, "acme.no", rows[0]["web"])
	assert.Equal(t, "x", rows[0]["Extra"])

	records := client.ClientRecords(rows)
	assert.Equal(t, "Fjord AS", records[1].Company)
	assert.Equal(t, "99887766", records[1].Phone)
}

func TestReadCSV_Calls(t *testing.T) {
	input := "Client,Call Date,Status,Duration,Next Action Date\n" +
		"Acme,2026-10-20 09:00,Scheduled,15,2026-10-27\n" +
		"Fjord,2026-10-21,Completed,,\n"

	rows, err := client.ReadCSV(strings.NewReader(input), client.DefaultCallColumns)
	require.NoError(t, err)

	records, err := client.CallRecords(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Acme", records[0].Client)
	assert.Equal(t, "2026-10-20 09:00", records[0].CallDate)
	assert.Equal(t, client.FlexibleInt(15), records[0].Duration)
	assert.Equal(t, "2026-10-27", records[0].NextActionDate)
	assert.EqualValues(t, 0, records[1].Duration)

	_, err = client.CallRecords([]map[string]string{{"duration": "ten"}})
	assert.EqualError(t, err, `row 2: duration "ten" is not a number`)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := client.ReadCSV(strings.NewReader(""), nil)
	assert.EqualError(t, err, "csv: missing header row")
}
