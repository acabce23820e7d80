package config

// Config holds all configuration for the application.
type Config struct {
	Port      string
	AdminKey  string
	PublicDir string
	LogLevel  string
	Store     StoreConfig
	Turso     TursoConfig
	Slack     SlackConfig
	ProjectID string
}

// StoreConfig selects and locates the persistent store.
type StoreConfig struct {
	Backend     string
	DataPath    string
	DBName      string
	DatabaseURL string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Enabled reports whether result notifications can be posted to Slack.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

// UsesDefaultAdminKey reports whether the admin key was left at its insecure default.
func (c Config) UsesDefaultAdminKey() bool {
	return c.AdminKey == DefaultAdminKey
}
