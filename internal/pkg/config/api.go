package config

// API represents API server configuration
type API struct {
	CORS struct {
		Enabled        bool     `yaml:"enabled"`
		AllowedOrigins []string `yaml:"allowed_origins"` // empty allows every origin
		AllowedMethods []string `yaml:"allowed_methods"`
	} `yaml:"cors"`
}
