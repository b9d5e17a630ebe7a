package tmdb

import "strconv"

// SearchResult represents a single TMDB search match.
type SearchResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

// Year returns the release year of the result, or 0 when the release date is
// missing or malformed.
func (r SearchResult) Year() int {
	if len(r.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(r.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// SearchResponse models the TMDB paginated search response.
type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Genre is a movie genre reference entity.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Keyword is a movie keyword reference entity.
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Collection groups related movies (e.g. a franchise).
type Collection struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// Company is a production company.
type Company struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// Country is a production country keyed by ISO 3166-1 code.
type Country struct {
	ISOCode string `json:"iso_3166_1"`
	Name    string `json:"name"`
}

// Language is a spoken language keyed by ISO 639-1 code.
type Language struct {
	ISOCode     string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

// CastMember is one cast credit from the detail payload.
type CastMember struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	ProfilePath        string `json:"profile_path"`
	Gender             int    `json:"gender"`
	KnownForDepartment string `json:"known_for_department"`
	Character          string `json:"character"`
	Order              int    `json:"order"`
	CreditID           string `json:"credit_id"`
}

// CrewMember is one crew credit from the detail payload.
type CrewMember struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	ProfilePath        string `json:"profile_path"`
	Gender             int    `json:"gender"`
	KnownForDepartment string `json:"known_for_department"`
	Department         string `json:"department"`
	Job                string `json:"job"`
	CreditID           string `json:"credit_id"`
}

// Video is a trailer, teaser, or clip attached to a movie.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Official bool   `json:"official"`
}

// ReleaseDateEntry is one dated release within a country (a country can carry
// several, e.g. theatrical and digital).
type ReleaseDateEntry struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
}

// CountryReleases groups the release dates published for one country.
type CountryReleases struct {
	ISOCode      string             `json:"iso_3166_1"`
	ReleaseDates []ReleaseDateEntry `json:"release_dates"`
}

// WatchProvider is a streaming/rental/purchase provider.
type WatchProvider struct {
	ProviderID int64  `json:"provider_id"`
	Name       string `json:"provider_name"`
	LogoPath   string `json:"logo_path"`
}

// WatchOffers lists the providers carrying a movie in one country, grouped by
// offer type.
type WatchOffers struct {
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate"`
	Rent     []WatchProvider `json:"rent"`
	Buy      []WatchProvider `json:"buy"`
}

// MovieDetails is the full detail payload for one movie, including the
// appended credits, keywords, videos, release dates, and watch providers.
type MovieDetails struct {
	ID               int64   `json:"id"`
	IMDBID           string  `json:"imdb_id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          int     `json:"runtime"`
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Homepage         string  `json:"homepage"`
	Adult            bool    `json:"adult"`

	BelongsToCollection *Collection `json:"belongs_to_collection"`
	Genres              []Genre     `json:"genres"`
	ProductionCompanies []Company   `json:"production_companies"`
	ProductionCountries []Country   `json:"production_countries"`
	SpokenLanguages     []Language  `json:"spoken_languages"`

	Credits struct {
		Cast []CastMember `json:"cast"`
		Crew []CrewMember `json:"crew"`
	} `json:"credits"`
	Keywords struct {
		Keywords []Keyword `json:"keywords"`
	} `json:"keywords"`
	Videos struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	ReleaseDates struct {
		Results []CountryReleases `json:"results"`
	} `json:"release_dates"`
	WatchProviders struct {
		Results map[string]WatchOffers `json:"results"`
	} `json:"watch/providers"`
}

// Year returns the primary release year of the movie, or 0 when unknown.
func (d MovieDetails) Year() int {
	if len(d.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(d.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
