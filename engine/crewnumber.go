package engine

import (
	"strconv"
	"strings"

	"github.com/oarstack/regatta/models"
)

// ParseCrewNumber extracts a crew number from free text. Legacy imports
// stored numbers in mixed shapes ("CNL 3", "crew-12", "A7"); a trailing digit
// group wins, otherwise all digits in the string are concatenated. Nil when
// the text carries no digits.
func ParseCrewNumber(text string) *int {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	end := len(s)
	for end > 0 && !isDigit(s[end-1]) {
		end--
	}
	if end > 0 {
		start := end
		for start > 0 && isDigit(s[start-1]) {
			start--
		}
		if n, err := strconv.Atoi(s[start:end]); err == nil {
			return &n
		}
	}

	var digits strings.Builder
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			digits.WriteByte(s[i])
		}
	}
	if digits.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return nil
	}
	return &n
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// entryIdentity builds the club identity an entry row carries.
func entryIdentity(e *models.Entry) ClubIdentity {
	ci := ClubIdentity{Code: e.ClubCode}
	if e.ClubID != nil {
		ci.ID = *e.ClubID
	}
	return ci
}

func laneIdentity(l *models.Lane) ClubIdentity {
	ci := ClubIdentity{Code: l.ClubCode}
	if l.ClubID != nil {
		ci.ID = *l.ClubID
	}
	return ci
}

// entryNumber reads an entry's crew number, falling back to digits embedded
// in its notes by older imports.
func entryNumber(e *models.Entry) *int {
	if e.CrewNumber != nil {
		return e.CrewNumber
	}
	return ParseCrewNumber(e.Notes)
}

// NextCrewNumber proposes the next free crew number for a club, scanning the
// three places a number may already live: unsaved draft entries, lanes of
// already generated races (caller restricts these to the same category), and
// persisted registrations. Withdrawn and rejected registrations do not hold
// their numbers. Deterministic and idempotent: without new entries the same
// number is proposed again. Nil when there is no club context at all.
func NextCrewNumber(club ClubIdentity, drafts []*models.Entry, races []*models.Race, persisted []*models.Entry) *int {
	if club.Empty() {
		return nil
	}

	highest := 0
	seen := false
	take := func(n *int) {
		if n == nil {
			return
		}
		seen = true
		if *n > highest {
			highest = *n
		}
	}

	for _, e := range drafts {
		if club.Matches(entryIdentity(e)) {
			take(entryNumber(e))
		}
	}
	for _, r := range races {
		for _, l := range r.Lanes {
			if club.Matches(laneIdentity(l)) {
				take(l.CrewNumber)
			}
		}
	}
	for _, e := range persisted {
		if e.Status == models.EntryWithdrawn || e.Status == models.EntryRejected {
			continue
		}
		if club.Matches(entryIdentity(e)) {
			take(entryNumber(e))
		}
	}

	next := 1
	if seen {
		next = highest + 1
	}
	return &next
}
