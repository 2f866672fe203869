package standings

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"records": [
		{
			"standingsType": "regularSeason",
			"league": {"id": 103},
			"division": {"id": 201},
			"teamRecords": [
				{
					"team": {"id": 147, "name": "New York Yankees"},
					"wins": 82,
					"losses": 80,
					"divisionRank": "4",
					"streak": {"streakCode": "W2", "streakNumber": 2},
					"leagueRecord": {"wins": 82, "losses": 80, "pct": ".506"},
					"records": {
						"splitRecords": [
							{"type": "home", "wins": 42, "losses": 39},
							{"type": "away", "wins": 40, "losses": 41}
						],
						"divisionRecords": [
							{"division": {"id": 201, "name": "American League East"}, "wins": 23, "losses": 29}
						],
						"overallRecords": [
							{"type": "home", "wins": 42, "losses": 39}
						]
					}
				},
				{
					"team": {"id": 111, "name": "Boston Red Sox"},
					"wins": 78,
					"losses": 84,
					"divisionRank": "5",
					"streak": {"streakCode": "L1", "streakNumber": 1},
					"leagueRecord": {"wins": 78, "losses": 84, "pct": ".481"},
					"records": {
						"splitRecords": [
							{"type": "home", "wins": 39, "losses": 42}
						],
						"divisionRecords": [
							{"division": {"id": 201, "name": "American League East"}, "wins": 19, "losses": 33}
						]
					}
				}
			]
		},
		{
			"standingsType": "regularSeason",
			"league": {"id": 104},
			"division": {"id": 204},
			"teamRecords": [
				{
					"team": {"id": 144, "name": "Atlanta Braves"},
					"wins": 104,
					"losses": 58,
					"records": {}
				}
			]
		}
	]
}`

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var payload map[string]any
	require.NoError(t, dec.Decode(&payload))
	return payload
}

func TestDivisionBreakdownScenario(t *testing.T) {
	records := []Record{
		{
			"team": map[string]any{"id": 1},
			"records": map[string]any{
				"divisionRecords": []any{
					map[string]any{
						"division": map[string]any{"id": 1, "name": "East"},
						"wins":     10,
						"losses":   5,
					},
				},
			},
		},
	}

	table, err := Normalize(records, Options{Include: []Kind{Division}})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	expected := map[Column]any{
		{Group: "divisionRecords", Key: "1", Field: "division.id"}:   1,
		{Group: "divisionRecords", Key: "1", Field: "division.name"}: "East",
		{Group: "divisionRecords", Key: "1", Field: "wins"}:          10,
		{Group: "divisionRecords", Key: "1", Field: "losses"}:        5,
	}
	for col, want := range expected {
		got, ok := table.Value(0, col)
		require.True(t, ok, "missing column %s", col)
		require.Equal(t, want, got, col.String())
	}
	require.Equal(t, []string{GroupTeam, "divisionRecords"}, table.Groups())
}

func TestNormalizeStandardOnly(t *testing.T) {
	records, err := RecordsFromPayload(decode(t, samplePayload), All())
	require.NoError(t, err)
	require.Len(t, records, 3)

	table, err := Normalize(records, Options{})
	require.NoError(t, err)
	require.Len(t, table.Rows, len(records))
	require.Equal(t, []string{GroupTeam, GroupStandard}, table.Groups())

	expectedColumns := []Column{
		{Group: GroupTeam, Field: "id"},
		{Group: GroupTeam, Field: "name"},
		{Group: GroupStandard, Field: "divisionRank"},
		{Group: GroupStandard, Field: "losses"},
		{Group: GroupStandard, Field: "wins"},
	}
	if diff := cmp.Diff(expectedColumns, table.Columns); diff != "" {
		t.Fatalf("columns (-want +got):\n%s", diff)
	}

	rank, ok := table.Value(2, Column{Group: GroupStandard, Field: "divisionRank"})
	require.True(t, ok)
	require.Nil(t, rank)
}

func TestNormalizeOptionalGroups(t *testing.T) {
	records, err := RecordsFromPayload(decode(t, samplePayload), ByDivision(201))
	require.NoError(t, err)
	require.Len(t, records, 2)

	table, err := Normalize(records, Options{Streak: true, LeagueRecord: true})
	require.NoError(t, err)
	require.Equal(t, []string{GroupTeam, GroupStandard, GroupStreak, GroupLeagueRecord}, table.Groups())

	code, ok := table.Value(1, Column{Group: GroupStreak, Field: "streakCode"})
	require.True(t, ok)
	require.Equal(t, "L1", code)

	pct, ok := table.Value(0, Column{Group: GroupLeagueRecord, Field: "pct"})
	require.True(t, ok)
	require.Equal(t, ".506", pct)

	withoutStreak, err := Normalize(records, Options{LeagueRecord: true})
	require.NoError(t, err)
	require.NotContains(t, withoutStreak.Groups(), GroupStreak)
}

func TestNormalizeBreakdownOrder(t *testing.T) {
	records, err := RecordsFromPayload(decode(t, samplePayload), ByDivision(201))
	require.NoError(t, err)

	table, err := Normalize(records, Options{Include: []Kind{Division, Split}})
	require.NoError(t, err)
	require.Equal(t, []string{GroupTeam, GroupStandard, "splitRecords", "divisionRecords"}, table.Groups())
	require.Len(t, table.Rows, 2)

	awayWins, ok := table.Value(0, Column{Group: "splitRecords", Key: "away", Field: "wins"})
	require.True(t, ok)
	require.Equal(t, json.Number("40"), awayWins)

	// the second team has no away split, its cell stays empty
	awayWins, ok = table.Value(1, Column{Group: "splitRecords", Key: "away", Field: "wins"})
	require.True(t, ok)
	require.Nil(t, awayWins)

	divisionWins, ok := table.Value(1, Column{Group: "divisionRecords", Key: "201", Field: "wins"})
	require.True(t, ok)
	require.Equal(t, json.Number("19"), divisionWins)

	for _, row := range table.Rows {
		require.Len(t, row, len(table.Columns))
	}
}

func TestNormalizeMissingBreakdown(t *testing.T) {
	records, err := RecordsFromPayload(decode(t, samplePayload), All())
	require.NoError(t, err)

	_, err = Normalize(records, Options{Include: []Kind{Overall}})
	require.Error(t, err)
	missing, ok := AsMissingBreakdown(err)
	require.True(t, ok)
	require.Equal(t, 1, missing.Index)
	require.Equal(t, Overall, missing.Kind)

	_, err = Normalize([]Record{{"team": map[string]any{"id": 1}}}, Options{Include: []Kind{Split}})
	missing, ok = AsMissingBreakdown(err)
	require.True(t, ok)
	require.Equal(t, 0, missing.Index)
}

func TestNormalizeRejectsAmbiguousEntries(t *testing.T) {
	team := map[string]any{"id": 1}
	testCases := []struct {
		name    string
		kind    Kind
		key     string
		entries []any
		detail  string
	}{
		{
			name: "nested entry without id or name",
			kind: League,
			key:  "leagueRecords",
			entries: []any{
				map[string]any{"league": map[string]any{"link": "/a"}, "wins": 1},
				map[string]any{"league": map[string]any{"link": "/b"}, "wins": 2},
			},
			detail: "entry 0: league has no id or name",
		},
		{
			name: "nested entries sharing an id",
			kind: Division,
			key:  "divisionRecords",
			entries: []any{
				map[string]any{"division": map[string]any{"id": 201}, "wins": 1},
				map[string]any{"division": map[string]any{"id": 201}, "wins": 2},
			},
			detail: `entries 0 and 1 share the key "201"`,
		},
		{
			name: "flat entries sharing a type",
			kind: Split,
			key:  "splitRecords",
			entries: []any{
				map[string]any{"type": "home", "wins": 1},
				map[string]any{"type": "home", "wins": 2},
			},
			detail: `entries 0 and 1 share the key "home"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := []Record{{
				"team":    team,
				"records": map[string]any{tc.key: tc.entries},
			}}
			_, err := Normalize(records, Options{Include: []Kind{tc.kind}})
			missing, ok := AsMissingBreakdown(err)
			require.True(t, ok, err)
			require.Equal(t, 0, missing.Index)
			require.Equal(t, tc.kind, missing.Kind)
			require.Equal(t, tc.detail, missing.Detail)
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	table, err := Normalize(nil, Options{Include: []Kind{Split}})
	require.NoError(t, err)
	require.Empty(t, table.Rows)
	require.Empty(t, table.Columns)
}

func TestFilters(t *testing.T) {
	payload := decode(t, samplePayload)

	cases := []struct {
		filter Filter
		teams  int
	}{
		{All(), 3},
		{ByLeague(103), 2},
		{ByLeague(104), 1},
		{ByDivision(204), 1},
		{ByDivision(999), 0},
	}
	for _, c := range cases {
		t.Run(c.filter.String(), func(t *testing.T) {
			records, err := RecordsFromPayload(payload, c.filter)
			require.NoError(t, err)
			require.Len(t, records, c.teams)
		})
	}

	_, err := RecordsFromPayload(map[string]any{}, All())
	require.Error(t, err)
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("split", "DivisionRecords", "expected")
	require.NoError(t, err)
	require.Equal(t, []Kind{Split, Division, Expected}, kinds)

	_, err = ParseKinds("wildcard")
	require.Error(t, err)
}

func TestSelect(t *testing.T) {
	records, err := RecordsFromPayload(decode(t, samplePayload), ByLeague(103))
	require.NoError(t, err)
	table, err := Normalize(records, Options{Streak: true})
	require.NoError(t, err)

	streak := table.Select(GroupStreak)
	require.Equal(t, []string{GroupStreak}, streak.Groups())
	require.Len(t, streak.Rows, 2)
	require.Equal(t, "W2", streak.Rows[0][0])
}
