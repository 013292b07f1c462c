package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

func count(id, name string, n int) domain.UserCount {
	return domain.UserCount{User: domain.User{ID: id, Name: name}, Count: n}
}

func TestRankUserCounts(t *testing.T) {
	t.Run("Orders by count descending", func(t *testing.T) {
		input := []domain.UserCount{
			count("u1", "Anna", 3),
			count("u2", "Boris", 10),
			count("u3", "Clara", 7),
		}

		ranked := domain.RankUserCounts(input)

		require.Len(t, ranked, 3)
		assert.Equal(t, "u2", ranked[0].User.ID)
		assert.Equal(t, "u3", ranked[1].User.ID)
		assert.Equal(t, "u1", ranked[2].User.ID)

		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Count, ranked[i].Count)
		}
	})

	t.Run("Breaks ties by user name ascending", func(t *testing.T) {
		input := []domain.UserCount{
			count("u1", "Zoe", 5),
			count("u2", "Anna", 5),
			count("u3", "Mila", 5),
		}

		ranked := domain.RankUserCounts(input)

		assert.Equal(t, "Anna", ranked[0].User.Name)
		assert.Equal(t, "Mila", ranked[1].User.Name)
		assert.Equal(t, "Zoe", ranked[2].User.Name)
	})

	t.Run("Deterministic regardless of input ordering", func(t *testing.T) {
		a := []domain.UserCount{
			count("u1", "Anna", 5),
			count("u2", "Boris", 5),
			count("u3", "Clara", 9),
		}
		b := []domain.UserCount{a[2], a[0], a[1]}

		assert.Equal(t, domain.RankUserCounts(a), domain.RankUserCounts(b))
	})

	t.Run("Does not mutate the input slice", func(t *testing.T) {
		input := []domain.UserCount{
			count("u1", "Anna", 1),
			count("u2", "Boris", 2),
		}

		_ = domain.RankUserCounts(input)

		assert.Equal(t, "u1", input[0].User.ID)
		assert.Equal(t, "u2", input[1].User.ID)
	})

	t.Run("Rank 0 carries the maximum count", func(t *testing.T) {
		input := []domain.UserCount{
			count("u1", "Anna", 4),
			count("u2", "Boris", 12),
			count("u3", "Clara", 12),
			count("u4", "Dina", 0),
		}

		ranked := domain.RankUserCounts(input)

		maxCount := 0
		for _, uc := range input {
			if uc.Count > maxCount {
				maxCount = uc.Count
			}
		}
		assert.Equal(t, maxCount, ranked[0].Count)
	})
}

func TestRankIndexOf(t *testing.T) {
	ranked := domain.RankUserCounts([]domain.UserCount{
		count("u1", "Anna", 3),
		count("u2", "Boris", 9),
	})

	idx, ok := domain.RankIndexOf(ranked, "u1")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = domain.RankIndexOf(ranked, "ghost")
	assert.False(t, ok)
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		0:   "1st",
		1:   "2nd",
		2:   "3rd",
		3:   "4th",
		9:   "10th",
		10:  "11th",
		11:  "12th",
		12:  "13th",
		20:  "21st",
		21:  "22nd",
		22:  "23rd",
		30:  "31st",
		100: "101st",
		110: "111th",
	}

	for rank, want := range cases {
		assert.Equal(t, want, domain.Ordinal(rank), "rank %d", rank)
	}
}
