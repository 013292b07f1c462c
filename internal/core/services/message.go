package services

import (
	"fmt"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

// All user-facing wording lives in this file. Ranking logic hands over
// structured outcomes; everything below is plain substitution.

const nobodyYetMessage = "Nobody yet!"

const noActivityMessage = "This user doesn't seem to have done much yet. " +
	"Check in to see if they need any help getting started."

// rankingLine renders one leaderboard line. Lines describing the current
// user read "You" and carry the rank ordinal, except on a single-entry
// board where a rank suffix would be meaningless.
func rankingLine(uc domain.UserCount, isCurrentUser, withOrdinal bool, rank int) string {
	if !isCurrentUser {
		return fmt.Sprintf("%s %d", uc.User.Name, uc.Count)
	}
	if !withOrdinal {
		return fmt.Sprintf("You %d", uc.Count)
	}
	return fmt.Sprintf("You %d(%s)", uc.Count, domain.Ordinal(rank))
}

func behindMessage(followedRank, currentRank int, habitName string) string {
	return fmt.Sprintf("Currently #%s, behind you (#%s) in %s.\nSend them a friendly reminder!",
		domain.Ordinal(followedRank), domain.Ordinal(currentRank), habitName)
}

func aheadMessage(followedRank, currentRank int, habitName string) string {
	return fmt.Sprintf("Currently #%s, ahead of you (#%s) in %s.\nYou might catch up with a little extra effort!",
		domain.Ordinal(followedRank), domain.Ordinal(currentRank), habitName)
}

func tiedMessage(rank int, habitName string) string {
	return fmt.Sprintf("You're tied at %s in %s! Now's your chance to pull ahead.",
		domain.Ordinal(rank), habitName)
}

func soloProgressMessage(followedRank int, habitName string) string {
	return fmt.Sprintf("Currently #%s in %s.\nMaybe you should give this habit a look.",
		domain.Ordinal(followedRank), habitName)
}
