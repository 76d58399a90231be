package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/straye-as/calltracker-api/internal/service"
	"github.com/straye-as/calltracker-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledIDs(calls []domain.ScheduledCallDTO) []uuid.UUID {
	ids := make([]uuid.UUID, len(calls))
	for i := range calls {
		ids[i] = calls[i].ID
	}
	return ids
}

func TestCallService_Create(t *testing.T) {
	env := setupEnv(t)
	client := testutil.CreateTestClient(t, env.db, env.user.ID, "acme")

	t.Run("defaults", func(t *testing.T) {
		result, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{Client: client.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, "Scheduled", result.Status)
		assert.Equal(t, "2026-10-14T10:00:00Z", result.CallDate)
		assert.Empty(t, result.Outcome)
		assert.Zero(t, result.Duration)
		assert.False(t, result.PromotionAvailable)
		require.NotNil(t, result.Client)
		assert.Equal(t, "acme", result.Client.Name)
		require.NotNil(t, result.User)
		assert.Equal(t, env.user.ID, result.User.ID)
	})

	t.Run("tokens are normalized", func(t *testing.T) {
		result, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{
			Client:         client.ID.String(),
			CallDate:       "2026-10-15T09:30",
			NextActionDate: "2026-10-20",
			Status:         "in_progress",
			Outcome:        "need_followup",
			Duration:       12,
		})
		require.NoError(t, err)
		assert.Equal(t, "In Progress", result.Status)
		assert.Equal(t, "Need Follow-up", result.Outcome)
		assert.Equal(t, "2026-10-15T09:30:00Z", result.CallDate)
		require.NotNil(t, result.NextActionDate)
		assert.Equal(t, "2026-10-20T00:00:00Z", *result.NextActionDate)
		assert.Equal(t, 12, result.Duration)
	})

	t.Run("unknown values fall back", func(t *testing.T) {
		result, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{
			Client:  client.ID.String(),
			Status:  "later",
			Outcome: "maybe",
		})
		require.NoError(t, err)
		assert.Equal(t, "Scheduled", result.Status)
		assert.Empty(t, result.Outcome)
	})

	t.Run("missing client", func(t *testing.T) {
		_, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{Client: uuid.NewString()})
		assert.ErrorIs(t, err, service.ErrClientNotFound)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{Client: client.ID.String(), CallDate: "next tuesday"})
		assert.ErrorIs(t, err, service.ErrInvalidDate)
	})

	t.Run("requires user", func(t *testing.T) {
		_, err := env.calls.Create(context.Background(), &domain.CreateCallRequest{Client: client.ID.String()})
		assert.ErrorIs(t, err, service.ErrUserContextRequired)
	})
}

func TestCallService_PromotionAvailable(t *testing.T) {
	env := setupEnv(t)
	prospect := testutil.CreateTestClient(t, env.db, env.user.ID, "prospect")
	paying := testutil.CreateTestClient(t, env.db, env.user.ID, "paying")
	_, err := env.clientRepo.MarkAsClient(env.ctx, paying.ID, fixedNow)
	require.NoError(t, err)

	t.Run("success for a prospect", func(t *testing.T) {
		result, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{Client: prospect.ID.String(), Outcome: "success"})
		require.NoError(t, err)
		assert.True(t, result.PromotionAvailable)

		client, err := env.clients.GetByID(env.ctx, prospect.ID)
		require.NoError(t, err)
		assert.False(t, client.IsClient, "detection never writes the client")
	})

	t.Run("already a client", func(t *testing.T) {
		result, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{Client: paying.ID.String(), Outcome: "Success"})
		require.NoError(t, err)
		assert.False(t, result.PromotionAvailable)
	})

	t.Run("update to success", func(t *testing.T) {
		created, err := env.calls.Create(env.ctx, &domain.CreateCallRequest{Client: prospect.ID.String(), Outcome: "no_answer"})
		require.NoError(t, err)
		assert.False(t, created.PromotionAvailable)

		updated, err := env.calls.Update(env.ctx, created.ID, &domain.UpdateCallRequest{Outcome: strPtr("success")})
		require.NoError(t, err)
		assert.Equal(t, "Success", updated.Outcome)
		assert.True(t, updated.PromotionAvailable)

		again, err := env.calls.Update(env.ctx, created.ID, &domain.UpdateCallRequest{Notes: strPtr("signed")})
		require.NoError(t, err)
		assert.False(t, again.PromotionAvailable)

		repeat, err := env.calls.Update(env.ctx, created.ID, &domain.UpdateCallRequest{Outcome: strPtr("success")})
		require.NoError(t, err)
		assert.False(t, repeat.PromotionAvailable)
	})
}

func TestCallService_Update(t *testing.T) {
	env := setupEnv(t)
	client := testutil.CreateTestClient(t, env.db, env.user.ID, "acme")
	other := testutil.CreateTestClient(t, env.db, env.user.ID, "other")
	call := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(30*time.Minute), nil)
	require.NoError(t, env.callRepo.MarkReminderSent(env.ctx, call.ID, fixedNow))

	t.Run("partial fields", func(t *testing.T) {
		updated, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{
			Status:   strPtr("completed"),
			Duration: intPtr(7),
		})
		require.NoError(t, err)
		assert.Equal(t, "Completed", updated.Status)
		assert.Equal(t, 7, updated.Duration)
		assert.Equal(t, "2026-10-14T10:30:00Z", updated.CallDate)

		stored, err := env.callRepo.GetByID(env.ctx, call.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.ReminderSentAt)
	})

	t.Run("blank status keeps the current one", func(t *testing.T) {
		updated, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{Status: strPtr("  ")})
		require.NoError(t, err)
		assert.Equal(t, "Completed", updated.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{Status: strPtr("postponed")})
		assert.ErrorIs(t, err, service.ErrInvalidInput)

		stored, err := env.callRepo.GetByID(env.ctx, call.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallStatusCompleted, stored.Status)
	})

	t.Run("date change re-arms reminder", func(t *testing.T) {
		_, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{CallDate: strPtr("2026-10-16T08:00:00Z")})
		require.NoError(t, err)

		stored, err := env.callRepo.GetByID(env.ctx, call.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.ReminderSentAt)
	})

	t.Run("empty next action date clears it", func(t *testing.T) {
		_, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{NextActionDate: strPtr("2026-10-18T12:00:00Z")})
		require.NoError(t, err)

		cleared, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{NextActionDate: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, cleared.NextActionDate)
	})

	t.Run("empty outcome clears it", func(t *testing.T) {
		_, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{Outcome: strPtr("other")})
		require.NoError(t, err)

		cleared, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{Outcome: strPtr("")})
		require.NoError(t, err)
		assert.Empty(t, cleared.Outcome)
	})

	t.Run("move to another client", func(t *testing.T) {
		moved, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{Client: strPtr(other.ID.String())})
		require.NoError(t, err)
		assert.Equal(t, other.ID, moved.ClientID)
		require.NotNil(t, moved.Client)
		assert.Equal(t, "other", moved.Client.Name)
	})

	t.Run("unknown client rejected", func(t *testing.T) {
		_, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{Client: strPtr(uuid.NewString())})
		assert.ErrorIs(t, err, service.ErrClientNotFound)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		_, err := env.calls.Update(env.ctx, call.ID, &domain.UpdateCallRequest{CallDate: strPtr("soon")})
		assert.ErrorIs(t, err, service.ErrInvalidDate)
	})

	t.Run("missing call", func(t *testing.T) {
		_, err := env.calls.Update(env.ctx, uuid.New(), &domain.UpdateCallRequest{})
		assert.ErrorIs(t, err, service.ErrCallNotFound)
	})
}

func TestCallService_GetListDelete(t *testing.T) {
	env := setupEnv(t)
	client := testutil.CreateTestClient(t, env.db, env.user.ID, "acme")
	older := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusCompleted, fixedNow.Add(-72*time.Hour), nil)
	newer := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow, nil)

	calls, err := env.calls.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, newer.ID, calls[0].ID)
	assert.Equal(t, older.ID, calls[1].ID)

	found, err := env.calls.GetByID(env.ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", found.Status)

	byClient, err := env.calls.ListByClient(env.ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	_, err = env.calls.ListByClient(env.ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrClientNotFound)

	require.NoError(t, env.calls.Delete(env.ctx, older.ID))
	_, err = env.calls.GetByID(env.ctx, older.ID)
	assert.ErrorIs(t, err, service.ErrCallNotFound)
	assert.ErrorIs(t, env.calls.Delete(env.ctx, older.ID), service.ErrCallNotFound)
}

func TestCallService_Today(t *testing.T) {
	env := setupEnv(t)
	client := testutil.CreateTestClient(t, env.db, env.user.ID, "acme")
	followUp := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	soon := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(45*time.Minute), nil)
	later := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(6*time.Hour), nil)
	nextAction := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusCompleted, fixedNow.Add(-96*time.Hour), &followUp)
	tomorrow := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(24*time.Hour), nil)
	testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusCompleted, fixedNow.Add(2*time.Hour), nil)
	other := testutil.CreateTestUser(t, env.db, "other")
	testutil.CreateTestCall(t, env.db, client.ID, other.ID, domain.CallStatusScheduled, fixedNow.Add(time.Hour), nil)

	t.Run("today", func(t *testing.T) {
		calls, err := env.calls.Today(env.ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{nextAction.ID, soon.ID, later.ID}, scheduledIDs(calls))

		assert.Equal(t, "2026-10-14T09:00:00Z", calls[0].DueAt)
		assert.False(t, calls[0].CallSoon)
		assert.True(t, calls[1].CallSoon)
		assert.False(t, calls[2].CallSoon)
	})

	t.Run("explicit date", func(t *testing.T) {
		calls, err := env.calls.Today(env.ctx, "2026-10-15")
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{tomorrow.ID}, scheduledIDs(calls))
	})

	t.Run("empty day", func(t *testing.T) {
		calls, err := env.calls.Today(env.ctx, "2026-11-01")
		require.NoError(t, err)
		assert.NotNil(t, calls)
		assert.Empty(t, calls)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := env.calls.Today(env.ctx, "tomorrow")
		assert.ErrorIs(t, err, service.ErrInvalidDate)
	})
}

func TestCallService_Upcoming(t *testing.T) {
	env := setupEnv(t)
	client := testutil.CreateTestClient(t, env.db, env.user.ID, "acme")
	followUp := fixedNow.Add(3 * time.Hour)

	first := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(time.Hour), nil)
	second := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusInProgress, fixedNow.Add(-time.Hour), &followUp)
	third := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(24*time.Hour), nil)
	testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusCancelled, fixedNow.Add(2*time.Hour), nil)
	testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(-2*time.Hour), nil)
	for i := 0; i < 4; i++ {
		testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled, fixedNow.Add(time.Duration(48+i)*time.Hour), nil)
	}

	t.Run("configured cap", func(t *testing.T) {
		calls, err := env.calls.Upcoming(env.ctx, 0)
		require.NoError(t, err)
		require.Len(t, calls, 5)
		assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, scheduledIDs(calls)[:3])
		assert.Equal(t, "2026-10-14T13:00:00Z", calls[1].DueAt)
	})

	t.Run("explicit limit", func(t *testing.T) {
		calls, err := env.calls.Upcoming(env.ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID, second.ID}, scheduledIDs(calls))
	})
}

func TestCallService_Calendar(t *testing.T) {
	env := setupEnv(t)
	client := testutil.CreateTestClient(t, env.db, env.user.ID, "acme")
	followUp := time.Date(2026, time.October, 20, 14, 0, 0, 0, time.UTC)
	call := testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusCompleted,
		time.Date(2026, time.October, 3, 9, 0, 0, 0, time.UTC), &followUp)
	testutil.CreateTestCall(t, env.db, client.ID, env.user.ID, domain.CallStatusScheduled,
		time.Date(2026, time.November, 1, 0, 30, 0, 0, time.UTC), nil)

	calendar, err := env.calls.Calendar(env.ctx, 2026, 10)
	require.NoError(t, err)
	assert.Equal(t, 2026, calendar.Year)
	assert.Equal(t, 10, calendar.Month)
	require.Len(t, calendar.Days, 2)

	assert.Equal(t, "2026-10-03", calendar.Days[0].Date)
	require.Len(t, calendar.Days[0].Entries, 1)
	assert.Equal(t, "call", calendar.Days[0].Entries[0].Kind)
	assert.Equal(t, call.ID, calendar.Days[0].Entries[0].Call.ID)

	assert.Equal(t, "2026-10-20", calendar.Days[1].Date)
	assert.Equal(t, "nextAction", calendar.Days[1].Entries[0].Kind)

	_, err = env.calls.Calendar(env.ctx, 2026, 13)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCallService_Import(t *testing.T) {
	env := setupEnv(t)
	client := testutil.CreateTestClient(t, env.db, env.user.ID, "acme")
	other := testutil.CreateTestUser(t, env.db, "other")
	foreign := testutil.CreateTestClient(t, env.db, other.ID, "foreign")

	result, err := env.calls.Import(env.ctx, &domain.ImportCallsRequest{Data: []domain.CallImportRecord{
		{Client: client.ID.String(), CallDate: "2026-10-14T12:00:00Z", Status: "scheduled", Duration: 5},
		{Client: "ACME", CallDate: "2026-10-13", Status: "Completed", Outcome: "success"},
		{Client: "contact@acme.example", CallDate: "2026-10-12 08:15", Status: "failed"},
		{Client: "acme", CallDate: "2026-10-14", Status: ""},
		{Client: "nobody", CallDate: "2026-10-14", Status: "scheduled"},
		{Client: foreign.ID.String(), CallDate: "2026-10-14", Status: "scheduled"},
		{Client: "acme", CallDate: "yesterday", Status: "scheduled"},
		{Client: "acme", CallDate: "2026-10-14", Status: "scheduled", Duration: -3},
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Zero(t, result.Updated)
	assert.Equal(t, 5, result.Skipped)
	assert.Equal(t, 8, result.Total)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "Row 4")
	assert.Contains(t, result.Errors[0], "status")
	assert.Contains(t, result.Errors[1], "nobody")
	assert.Contains(t, result.Errors[2], "Row 6")

	calls, err := env.calls.ListByClient(env.ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, calls, 3)
	assert.Equal(t, "Scheduled", calls[0].Status)
	assert.Equal(t, 5, calls[0].Duration)
	assert.Equal(t, "Completed", calls[1].Status)
	assert.Equal(t, "Success", calls[1].Outcome)
	assert.Equal(t, "Failed", calls[2].Status)

	_, err = env.calls.Import(env.ctx, &domain.ImportCallsRequest{Data: nil})
	assert.ErrorIs(t, err, service.ErrNoImportData)
}

func intPtr(n int) *int { return &n }
