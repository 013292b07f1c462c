package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

func TestCreateHabit(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		f := setup(t)

		body := `{"name": "Pushups", "category": {"name": "Fitness", "color": {"hue": 0.5, "saturation": 0.4, "brightness": 0.9}}, "info": "Floor exercise"}`
		w := f.do(t, "POST", "/api/v1/habits", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Pushups"`)

		var habit domain.Habit
		decode(t, w, &habit)
		assert.Equal(t, "Fitness", habit.Category.Name)
	})

	t.Run("Fail: 400 Bad Request (missing name)", func(t *testing.T) {
		f := setup(t)

		w := f.do(t, "POST", "/api/v1/habits", `{"category": {"name": "Fitness"}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 Bad Request (color out of range)", func(t *testing.T) {
		f := setup(t)

		body := `{"name": "Pushups", "category": {"name": "Fitness", "color": {"hue": 1.5, "saturation": 0, "brightness": 0}}}`
		w := f.do(t, "POST", "/api/v1/habits", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 409 Conflict (duplicate name)", func(t *testing.T) {
		f := setup(t)
		f.seedHabit(t, "Pushups")

		body := `{"name": "Pushups", "category": {"name": "Fitness"}}`
		w := f.do(t, "POST", "/api/v1/habits", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestListHabits(t *testing.T) {
	t.Run("Success: 200 OK sorted by name", func(t *testing.T) {
		f := setup(t)
		f.seedHabit(t, "Reading")
		f.seedHabit(t, "Meditation")

		w := f.do(t, "GET", "/api/v1/habits", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var habits []domain.Habit
		decode(t, w, &habits)
		require.Len(t, habits, 2)
		assert.Equal(t, "Meditation", habits[0].Name)
		assert.Equal(t, "Reading", habits[1].Name)
	})

	t.Run("Success: 200 OK empty catalog", func(t *testing.T) {
		f := setup(t)

		w := f.do(t, "GET", "/api/v1/habits", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetHabit(t *testing.T) {
	t.Run("Success: 200 OK", func(t *testing.T) {
		f := setup(t)
		f.seedHabit(t, "Pushups")

		w := f.do(t, "GET", "/api/v1/habits/Pushups", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Pushups"`)
	})

	t.Run("Fail: 404 Not Found", func(t *testing.T) {
		f := setup(t)

		w := f.do(t, "GET", "/api/v1/habits/Missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
