// Package playerids wraps the player id databases known to the module
// behind a common shape: a set of primary columns identifying a player and
// per-site column groups.
package playerids

import (
	"context"
	"sort"

	"sabrmetrics/lib/registry"
	"sabrmetrics/lib/sfbb"
	"sabrmetrics/lib/textutil"

	"github.com/antzucaro/matchr"
)

// Loader fetches the full id table of a flavor.
type Loader func(ctx context.Context) (sfbb.Sheet, error)

// Flavor describes the layout of one player id database.
type Flavor struct {
	Name    string
	Primary []string
	Sites   registry.Registry[[]string]
	// NameColumn is matched against by Suggest.
	NameColumn string
}

// SmartFantasyBaseball is the Smart Fantasy Baseball player id map.
var SmartFantasyBaseball = newSmartFantasyBaseball()

func newSmartFantasyBaseball() Flavor {
	entries := make([]registry.Entry[[]string], len(sfbb.SiteColumns))
	for i, site := range sfbb.SiteColumns {
		entries[i] = registry.Entry[[]string]{Name: site.Site, Value: site.Columns}
	}
	return Flavor{
		Name:       "SmartFantasyBaseball",
		Primary:    sfbb.PrimaryColumns,
		Sites:      registry.New("SmartFantasyBaseball sites", entries...),
		NameColumn: "Name",
	}
}

// Flavors is the closed registry of known flavors.
var Flavors = registry.New("flavors",
	registry.Entry[Flavor]{
		Name:    SmartFantasyBaseball.Name,
		Value:   SmartFantasyBaseball,
		Aliases: []string{"sfbb"},
	},
)

// IDs is a loaded id table viewed through its flavor.
type IDs struct {
	Flavor Flavor
	Sheet  sfbb.Sheet
}

func Load(ctx context.Context, flavor Flavor, load Loader) (IDs, error) {
	sheet, err := load(ctx)
	if err != nil {
		return IDs{}, err
	}
	return IDs{Flavor: flavor, Sheet: sheet}, nil
}

// Sites lists the site names of the flavor.
func (ids IDs) Sites() []string {
	return ids.Flavor.Sites.Names()
}

// Primary returns the primary columns only.
func (ids IDs) Primary() (sfbb.Sheet, error) {
	return ids.Sheet.Select(ids.Flavor.Primary...)
}

// Site returns the columns of a single site.
func (ids IDs) Site(site string) (sfbb.Sheet, error) {
	columns, err := ids.Flavor.Sites.Lookup(site)
	if err != nil {
		return sfbb.Sheet{}, err
	}
	return ids.Sheet.Select(columns...)
}

// Select returns the primary columns followed by the columns of site.
func (ids IDs) Select(site string) (sfbb.Sheet, error) {
	columns, err := ids.Flavor.Sites.Lookup(site)
	if err != nil {
		return sfbb.Sheet{}, err
	}
	all := append(append([]string{}, ids.Flavor.Primary...), columns...)
	return ids.Sheet.Select(all...)
}

type Suggestion struct {
	Row        int
	Name       string
	Similarity float64
}

// Suggest ranks rows by the Jaro-Winkler similarity of their name to name
// and returns at most limit of them, best first.
func (ids IDs) Suggest(name string, limit int) []Suggestion {
	column := ids.Sheet.Index(ids.Flavor.NameColumn)
	if column < 0 || limit <= 0 {
		return nil
	}

	target := textutil.NormalizeName(name)
	var suggestions []Suggestion
	for r, row := range ids.Sheet.Rows {
		candidate, ok := row[column].(string)
		if !ok {
			continue
		}
		similarity := matchr.JaroWinkler(target, textutil.NormalizeName(candidate), false)
		if similarity > 0 {
			suggestions = append(suggestions, Suggestion{
				Row:        r,
				Name:       candidate,
				Similarity: similarity,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Similarity > suggestions[j].Similarity
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
