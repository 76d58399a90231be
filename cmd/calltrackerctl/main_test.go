package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/straye-as/calltracker-api/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	token, todayWatch = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range []string{"login", "import", "today"} {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.AuthResponse{ID: uuid.New(), Token: "tok-cli"})
	}))
	defer srv.Close()

	out, err := runCLI(t, "login", "--server", srv.URL, "--email", "ola@example.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-cli\n", out)
}

func TestImportClients(t *testing.T) {
	var got domain.ImportClientsRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.ImportResult{
			Imported: 1, Skipped: 1, Total: 2,
			Errors: []string{`Row 2: missing or empty required field "phone"`},
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "clients.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Phone,Email\nOla,12345678,ola@example.com\nKari,,kari@example.com\n"), 0o600))

	out, err := runCLI(t, "import", "clients", path, "--server", srv.URL, "--token", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", auth)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "ola@example.com", got.Data[0].Address)
	assert.Contains(t, out, "imported: 1, updated: 0, skipped: 1, total: 2")
	assert.Contains(t, out, `Row 2: missing or empty required field "phone"`)
}

func TestImportCalls_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.csv")
	require.NoError(t, os.WriteFile(path, []byte("Client,Call Date,Duration\nAcme,2026-10-20,ten\n"), 0o600))

	_, err := runCLI(t, "import", "calls", path, "--server", "http://127.0.0.1:1")
	assert.EqualError(t, err, `row 2: duration "ten" is not a number`)
}

func TestToday_FallsBackToUpcoming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/calls/today":
			_ = json.NewEncoder(w).Encode([]domain.ScheduledCallDTO{})
		case "/api/calls/upcoming":
			_ = json.NewEncoder(w).Encode([]domain.ScheduledCallDTO{{
				CallDTO: domain.CallDTO{
					Status: "Scheduled",
					Client: &domain.CallClientDTO{Name: "Acme AS", Phone: "22334455"},
				},
				DueAt:    "2026-10-15T08:00:00Z",
				CallSoon: true,
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	out, err := runCLI(t, "today", "--server", srv.URL, "--token", "tok-1")
	require.NoError(t, err)
	assert.Contains(t, out, "No calls today.")
	assert.Contains(t, out, "Upcoming:")
	assert.Contains(t, out, "Acme AS")
	assert.Contains(t, out, "2026-10-15T08:00:00Z")
}
