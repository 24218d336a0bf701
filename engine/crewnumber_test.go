package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarstack/regatta/models"
)

func TestParseCrewNumber(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"3", intp(3)},
		{"CNL 3", intp(3)},
		{"crew-12", intp(12)},
		{"A7", intp(7)},
		{"12B", intp(12)},
		{"1a2", intp(2)},
		{"  14  ", intp(14)},
		{"", nil},
		{"CNL", nil},
		{"   ", nil},
	}
	for _, c := range cases {
		got := ParseCrewNumber(c.in)
		if c.want == nil {
			assert.Nil(t, got, c.in)
			continue
		}
		require.NotNil(t, got, c.in)
		assert.Equal(t, *c.want, *got, c.in)
	}
}

func TestNextCrewNumberEmptyClub(t *testing.T) {
	assert.Nil(t, NextCrewNumber(ClubIdentity{}, nil, nil, nil))
}

func TestNextCrewNumberNoPriorEntries(t *testing.T) {
	club := ClubIdentity{ID: 1, Code: "CNL"}
	got := NextCrewNumber(club, nil, nil, nil)
	require.NotNil(t, got)
	assert.Equal(t, 1, *got)
}

func clubEntry(code string, number *int, status string) *models.Entry {
	return &models.Entry{ClubCode: code, CrewNumber: number, Status: status}
}

func TestNextCrewNumberAcrossSources(t *testing.T) {
	club := ClubIdentity{ID: 1, Code: "CNL"}

	drafts := []*models.Entry{clubEntry("CNL", intp(2), models.EntryDraft)}
	races := []*models.Race{{
		Lanes: []*models.Lane{
			{Lane: 1, ClubCode: "CNL", CrewNumber: intp(5)},
			{Lane: 2, ClubCode: "SLB", CrewNumber: intp(9)},
		},
	}}
	persisted := []*models.Entry{
		clubEntry("CNL", intp(3), models.EntryApproved),
		clubEntry("SLB", intp(11), models.EntryApproved),
	}

	got := NextCrewNumber(club, drafts, races, persisted)
	require.NotNil(t, got)
	assert.Equal(t, 6, *got, "highest held number is lane 1's 5")
}

func TestNextCrewNumberIdempotent(t *testing.T) {
	club := ClubIdentity{ID: 1, Code: "CNL"}
	persisted := []*models.Entry{clubEntry("CNL", intp(4), models.EntryApproved)}

	first := NextCrewNumber(club, nil, nil, persisted)
	second := NextCrewNumber(club, nil, nil, persisted)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)

	persisted = append(persisted, clubEntry("CNL", first, models.EntryPending))
	after := NextCrewNumber(club, nil, nil, persisted)
	require.NotNil(t, after)
	assert.Equal(t, *first+1, *after)
}

func TestNextCrewNumberSkipsWithdrawnAndRejected(t *testing.T) {
	club := ClubIdentity{ID: 1, Code: "CNL"}
	persisted := []*models.Entry{
		clubEntry("CNL", intp(7), models.EntryWithdrawn),
		clubEntry("CNL", intp(8), models.EntryRejected),
		clubEntry("CNL", intp(2), models.EntryApproved),
	}

	got := NextCrewNumber(club, nil, nil, persisted)
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)
}

func TestNextCrewNumberReadsLegacyNotes(t *testing.T) {
	club := ClubIdentity{ID: 1, Code: "CNL"}
	persisted := []*models.Entry{
		{ClubCode: "CNL", Notes: "CNL 6", Status: models.EntryApproved},
	}

	got := NextCrewNumber(club, nil, nil, persisted)
	require.NotNil(t, got)
	assert.Equal(t, 7, *got)
}
