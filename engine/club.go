package engine

import (
	"strconv"
	"strings"

	"github.com/oarstack/regatta/models"
)

// ClubIdentity is the single value type used everywhere a club has to be
// recognised. Entries, lanes and registration records reference clubs in
// mixed shapes (id only, code only, free-text name), so equality is a
// priority chain rather than one field comparison.
type ClubIdentity struct {
	ID   int
	Code string
	Name string
}

// IdentityOf builds a ClubIdentity from a club row.
func IdentityOf(c *models.Club) ClubIdentity {
	if c == nil {
		return ClubIdentity{}
	}
	return ClubIdentity{ID: c.ClubID, Code: c.Code, Name: c.Name}
}

// Empty reports whether no club context is present at all.
func (ci ClubIdentity) Empty() bool {
	return ci.ID == 0 && strings.TrimSpace(ci.Code) == "" && strings.TrimSpace(ci.Name) == ""
}

// Matches reports whether two identities refer to the same club.
// Case-insensitive code equality wins, then id equality, then any overlap
// between the derived identifier sets of both sides.
func (ci ClubIdentity) Matches(other ClubIdentity) bool {
	if ci.Empty() || other.Empty() {
		return false
	}
	if ci.Code != "" && other.Code != "" && strings.EqualFold(strings.TrimSpace(ci.Code), strings.TrimSpace(other.Code)) {
		return true
	}
	if ci.ID != 0 && ci.ID == other.ID {
		return true
	}

	mine := ci.identifiers()
	for id := range other.identifiers() {
		if mine[id] {
			return true
		}
	}
	return false
}

// identifiers returns every normalised string that can stand in for the
// club: numeric id, code, full name and the name-derived short code.
func (ci ClubIdentity) identifiers() map[string]bool {
	ids := make(map[string]bool, 4)
	if ci.ID != 0 {
		ids[strings.ToUpper(strings.TrimSpace(strconv.Itoa(ci.ID)))] = true
	}
	if c := strings.ToUpper(strings.TrimSpace(ci.Code)); c != "" {
		ids[c] = true
	}
	if n := strings.ToUpper(strings.TrimSpace(ci.Name)); n != "" {
		ids[n] = true
	}
	if sc := ShortCode(ci.Name); sc != "" {
		ids[sc] = true
	}
	return ids
}

// clubStopwords are name particles skipped when deriving a short code.
var clubStopwords = map[string]bool{
	"club": true, "clube": true, "rowing": true, "remo": true, "aviron": true,
	"de": true, "do": true, "da": true, "del": true, "la": true, "le": true,
	"the": true, "of": true, "and": true, "e": true, "y": true,
}

// ShortCode derives a 4-letter code from a club name: the first word of four
// or more letters once stopwords are dropped, else up to four initials.
func ShortCode(name string) string {
	words := strings.Fields(name)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,-")
		if w == "" || clubStopwords[strings.ToLower(w)] {
			continue
		}
		kept = append(kept, w)
	}

	for _, w := range kept {
		if r := []rune(w); len(r) >= 4 {
			return strings.ToUpper(string(r[:4]))
		}
	}

	var initials []rune
	for _, w := range kept {
		initials = append(initials, []rune(w)[0])
		if len(initials) == 4 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

// ResolveActiveClub picks the club an athlete currently rows for: the first
// active membership by kind priority (competitive, then school, then
// recreational). Nil when the athlete has no active membership.
func ResolveActiveClub(memberships []models.Membership, clubs map[int]*models.Club) *ClubIdentity {
	for _, kind := range []string{models.MembershipCompetitive, models.MembershipSchool, models.MembershipRecreational} {
		for _, m := range memberships {
			if !m.Active || m.Kind != kind {
				continue
			}
			ci := IdentityOf(clubs[m.ClubID])
			if ci.Empty() {
				ci = ClubIdentity{ID: m.ClubID}
			}
			return &ci
		}
	}
	return nil
}

