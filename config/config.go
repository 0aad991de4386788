package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	UploadDir    string
	Port         string
	Env          string
}

// IsDevelopment reports whether the service runs with the development
// configuration (internal error details included in responses).
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}
