package config

const (
	defaultDataDir        = "~/.local/share/reelstore"
	defaultLogDir         = "~/.local/share/reelstore/logs"
	defaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	defaultTMDBLanguage   = "en-US"
	defaultImportUsername = "letterboxd_user"
	defaultItemDelayMS    = 300
	defaultRatingScale    = 2.0
	defaultCreditLimit    = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Import: Import{
			DefaultUsername: defaultImportUsername,
			ItemDelayMS:     defaultItemDelayMS,
			RatingScale:     defaultRatingScale,
			CreditLimit:     defaultCreditLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
