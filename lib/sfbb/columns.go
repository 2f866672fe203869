package sfbb

// upstream player id map header -> column name
var playerIDMapColumnNames = map[string]string{
	"IDPLAYER":       "PlayerID",
	"PLAYERNAME":     "Name",
	"BIRTHDATE":      "Birthdate",
	"FIRSTNAME":      "FirstName",
	"LASTNAME":       "LastName",
	"TEAM":           "Team",
	"LG":             "League",
	"POS":            "Position",
	"IDFANGRAPHS":    "FanGraphsID",
	"FANGRAPHSNAME":  "FanGraphsName",
	"MLBID":          "MLBID",
	"MLBNAME":        "MLBName",
	"CBSID":          "CBSID",
	"CBSNAME":        "CBSName",
	"RETROID":        "RetrosheetID",
	"BREFID":         "BaseballReferenceID",
	"NFBCID":         "NFBCID",
	"NFBCNAME":       "NFBCName",
	"ESPNID":         "ESPNID",
	"ESPNNAME":       "ESPNName",
	"KFFLNAME":       "KFFLName",
	"DAVENPORTID":    "ClayDavenportID",
	"BPID":           "BaseballProspectusID",
	"YAHOOID":        "YahooID",
	"YAHOONAME":      "YahooName",
	"MSTRBLLNAME":    "MasterballName",
	"BATS":           "Bats",
	"THROWS":         "Throws",
	"FANTPROSNAME":   "FantasyProsName",
	"LASTCOMMAFIRST": "LastFirst",
	"ROTOWIREID":     "RotoWireID",
	"FANDUELNAME":    "FanDuelName",
	"FANDUELID":      "FanDuelID",
	"DRAFTKINGSNAME": "DraftKingsName",
	"OTTONEUID":      "OttoneuID",
	"HQID":           "BaseballHQID",
	"RAZZBALLNAME":   "RazzballName",
	"FANTRAXID":      "FantraxID",
	"FANTRAXNAME":    "FantraxName",
	"ROTOWIRENAME":   "RotoWireName",
	"ALLPOS":         "AllPositions",
	"NFBCLASTFIRST":  "NFBCLastFirst",
	"ACTIVE":         "Active",
}

// PrimaryColumns identify a player independently of any fantasy site.
var PrimaryColumns = []string{
	"PlayerID", "Name", "LastName", "FirstName", "LastFirst",
	"Birthdate", "Team", "League", "Position", "AllPositions",
	"Bats", "Throws", "Active",
}

// SiteColumn groups the columns one site contributes to the player id map.
type SiteColumn struct {
	Site    string
	Columns []string
}

// SiteColumns lists the per-site columns in the order they follow the
// primary columns.
var SiteColumns = []SiteColumn{
	{"BaseballHQ", []string{"BaseballHQID"}},
	{"BaseballProspectus", []string{"BaseballProspectusID"}},
	{"BaseballReference", []string{"BaseballReferenceID"}},
	{"ClayDavenport", []string{"ClayDavenportID"}},
	{"CBS", []string{"CBSID", "CBSName"}},
	{"DraftKings", []string{"DraftKingsName"}},
	{"ESPN", []string{"ESPNID", "ESPNName"}},
	{"FanDuel", []string{"FanDuelID", "FanDuelName"}},
	{"FanGraphs", []string{"FanGraphsID", "FanGraphsName"}},
	{"FantasyPros", []string{"FantasyProsName"}},
	{"FanTrax", []string{"FantraxID", "FantraxName"}},
	{"KFFL", []string{"KFFLName"}},
	{"Masterball", []string{"MasterballName"}},
	{"MLB", []string{"MLBID", "MLBName"}},
	{"NFBC", []string{"NFBCID", "NFBCName", "NFBCLastFirst"}},
	{"Ottoneu", []string{"OttoneuID"}},
	{"Razzball", []string{"RazzballName"}},
	{"Retrosheet", []string{"RetrosheetID"}},
	{"RotoWire", []string{"RotoWireID", "RotoWireName"}},
	{"Yahoo", []string{"YahooID", "YahooName"}},
}

// PlayerIDMapColumns is the column order of parsed player id maps.
func PlayerIDMapColumns() []string {
	columns := append([]string{}, PrimaryColumns...)
	for _, site := range SiteColumns {
		columns = append(columns, site.Columns...)
	}
	return columns
}

var integerColumns = map[string]bool{
	"BaseballHQID":         true,
	"BaseballProspectusID": true,
	"CBSID":                true,
	"ESPNID":               true,
	"FanDuelID":            true,
	"MLBID":                true,
	"NFBCID":               true,
	"OttoneuID":            true,
	"RotoWireID":           true,
	"YahooID":              true,
}

var changelogColumnNames = map[string]string{
	"DATE":                  "Date",
	"DESCRIPTION OF CHANGE": "Description",
}

// ChangelogColumns is the column order of parsed changelogs.
var ChangelogColumns = []string{"Date", "Description"}
