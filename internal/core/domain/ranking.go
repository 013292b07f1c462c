package domain

import (
	"fmt"
	"sort"
)

// RankUserCounts returns a new slice ordered by count descending. Ties
// break by user name ascending, then user ID, so the ranking is
// deterministic regardless of the input ordering. The index of an entry
// in the result is its rank; rank 0 is first place.
func RankUserCounts(counts []UserCount) []UserCount {
	ranked := make([]UserCount, len(counts))
	copy(ranked, counts)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].User.Less(ranked[j].User)
	})

	return ranked
}

// RankIndexOf locates a user's rank within an already-ranked slice.
func RankIndexOf(ranked []UserCount, userID string) (int, bool) {
	for i, uc := range ranked {
		if uc.User.ID == userID {
			return i, true
		}
	}
	return 0, false
}

// Ordinal converts a 0-based rank into English ordinal text:
// 0 -> "1st", 1 -> "2nd", 10 -> "11th", 20 -> "21st".
func Ordinal(rank int) string {
	n := rank + 1

	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
		// 11th, 12th, 13th regardless of the trailing digit
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}

	return fmt.Sprintf("%d%s", n, suffix)
}
