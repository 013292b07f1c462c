package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

func TestLogHabit(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		f := setup(t)
		f.seedHabit(t, "Pushups")
		f.seedUser(t, "u1", "Anna")

		body := `{"userID": "u1", "habitName": "Pushups", "timestamp": "2026-08-29T07:30:00Z"}`
		w := f.do(t, "POST", "/api/v1/loggedHabit", body)

		assert.Equal(t, http.StatusCreated, w.Code)

		var logged domain.LoggedHabit
		decode(t, w, &logged)
		assert.Equal(t, "u1", logged.UserID)
		assert.Equal(t, "Pushups", logged.HabitName)
		assert.Equal(t, "2026-08-29T07:30:00Z", logged.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	})

	t.Run("Success: 201 Created defaults timestamp", func(t *testing.T) {
		f := setup(t)
		f.seedHabit(t, "Pushups")
		f.seedUser(t, "u1", "Anna")

		w := f.do(t, "POST", "/api/v1/loggedHabit", `{"userID": "u1", "habitName": "Pushups"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		var logged domain.LoggedHabit
		decode(t, w, &logged)
		assert.False(t, logged.Timestamp.IsZero())
	})

	t.Run("Fail: 400 Bad Request (missing fields)", func(t *testing.T) {
		f := setup(t)

		w := f.do(t, "POST", "/api/v1/loggedHabit", `{"habitName": "Pushups"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 404 Not Found (unknown user)", func(t *testing.T) {
		f := setup(t)
		f.seedHabit(t, "Pushups")

		w := f.do(t, "POST", "/api/v1/loggedHabit", `{"userID": "ghost", "habitName": "Pushups"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 404 Not Found (unknown habit)", func(t *testing.T) {
		f := setup(t)
		f.seedUser(t, "u1", "Anna")

		w := f.do(t, "POST", "/api/v1/loggedHabit", `{"userID": "u1", "habitName": "Flying"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Logged event lands in statistics", func(t *testing.T) {
		f := setup(t)
		f.seedHabit(t, "Pushups")
		f.seedUser(t, "u1", "Anna")

		w := f.do(t, "POST", "/api/v1/loggedHabit", `{"userID": "u1", "habitName": "Pushups"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = f.do(t, "GET", "/api/v1/habitStats?names=Pushups", "")
		require.Equal(t, http.StatusOK, w.Code)

		var stats []domain.HabitStatistics
		decode(t, w, &stats)
		require.Len(t, stats, 1)
		require.Len(t, stats[0].UserCounts, 1)
		assert.Equal(t, 1, stats[0].UserCounts[0].Count)
	})
}
