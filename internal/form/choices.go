package form

// States lists the two-letter codes offered by the state select.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

// Genres lists the genres offered by the multi-select.
var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic",
	"Folk", "Funk", "Hip-Hop", "Heavy Metal", "Instrumental",
	"Jazz", "Musical Theatre", "Pop", "Punk", "R&B",
	"Reggae", "Rock n Roll", "Soul", "Swing", "Other",
}

var (
	stateSet = toSet(States)
	genreSet = toSet(Genres)
)

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, s := range list {
		m[s] = struct{}{}
	}
	return m
}

func isState(s string) bool {
	_, ok := stateSet[s]
	return ok
}

func isGenre(s string) bool {
	_, ok := genreSet[s]
	return ok
}
