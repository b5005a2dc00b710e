package config

// Config is decoded from the TOML file passed with -config. Backend base
// URLs are configured per environment; the paths under them are fixed by the
// REST contract.
type Config struct {
	App struct {
		Host string
		Port int
	}
	Backend struct {
		PostURL        string
		CommentURL     string
		ReviewURL      string
		TimeoutSeconds int
	}
	Session struct {
		// Backend selects the storage slot implementation: "memory" or
		// "redis".
		Backend    string
		TTLMinutes int
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
}
