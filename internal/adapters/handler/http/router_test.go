package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/vpisarenko/habitboard/internal/adapters/handler/http"
	"github.com/vpisarenko/habitboard/internal/adapters/repository"
	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
)

// fixture wires the full router against in-memory repositories so
// handler tests exercise real services end to end.
type fixture struct {
	router *gin.Engine
	habits *repository.InMemoryHabitRepository
	users  *repository.InMemoryUserRepository
	stats  *repository.InMemoryStatsRepository
	prefs  *repository.InMemoryPreferencesRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	habits := repository.NewInMemoryHabitRepository()
	users := repository.NewInMemoryUserRepository()
	stats := repository.NewInMemoryStatsRepository(habits, users)
	prefs := repository.NewInMemoryPreferencesRepository()

	catalog := services.NewCatalogService(habits, users)
	feed := services.NewFeedService(stats, users, prefs)
	logs := services.NewLogService(stats, habits, users)
	prefsSvc := services.NewPreferencesService(prefs, habits, users)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:       adapterHTTP.NewHabitHandler(catalog),
		UserHandler:        adapterHTTP.NewUserHandler(catalog),
		StatsHandler:       adapterHTTP.NewStatsHandler(stats),
		LogHandler:         adapterHTTP.NewLogHandler(logs, nil),
		FeedHandler:        adapterHTTP.NewFeedHandler(feed, nil),
		PreferencesHandler: adapterHTTP.NewPreferencesHandler(prefsSvc),
		StartTime:          time.Now(),
	})

	return &fixture{
		router: router,
		habits: habits,
		users:  users,
		stats:  stats,
		prefs:  prefs,
	}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) seedHabit(t *testing.T, name string) domain.Habit {
	t.Helper()

	habit, err := domain.NewHabit(name, domain.Category{Name: "Fitness"}, "")
	require.NoError(t, err)
	require.NoError(t, f.habits.Create(context.Background(), habit))
	return habit
}

func (f *fixture) seedUser(t *testing.T, id, name string) domain.User {
	t.Helper()

	user, err := domain.NewUser(id, name, nil, "")
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), user))
	return *user
}

func (f *fixture) seedLogs(t *testing.T, userID, habitName string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		err := f.stats.Insert(context.Background(), domain.LoggedHabit{
			UserID:    userID,
			HabitName: habitName,
			Timestamp: time.Now().UTC(),
		})
		require.NoError(t, err)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
