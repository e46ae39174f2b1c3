package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/api/calendar/v3"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("calbook version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// OAuthConfig carries the Google OAuth2 client context and the location of
// the persisted token file.
type OAuthConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	RedirectURL  string   `mapstructure:"redirect_url"`
	Scopes       []string `mapstructure:"scopes"`
	TokenFile    string   `mapstructure:"token_file"`
}

// CalendarConfig identifies the single calendar this service books against.
type CalendarConfig struct {
	CalendarID string `mapstructure:"calendar_id"`
	Timezone   string `mapstructure:"timezone"`
	MaxResults int64  `mapstructure:"max_results"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("calendar-id", "", "Google calendar identifier to book against")
	pflag.String("token-file", "", "Path to the persisted OAuth token file")
	// Note: no pflag.Parse() here as it's called in main.go
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("CALBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("logging.level", "info")
	// Empty defaults register the keys so env-only values survive Unmarshal.
	viper.SetDefault("oauth.client_id", "")
	viper.SetDefault("oauth.client_secret", "")
	viper.SetDefault("oauth.redirect_url", "")
	viper.SetDefault("calendar.calendar_id", "")
	viper.SetDefault("oauth.token_file", "token.json")
	viper.SetDefault("oauth.scopes", []string{calendar.CalendarScope})
	viper.SetDefault("calendar.timezone", "America/Los_Angeles")
	viper.SetDefault("calendar.max_results", 10)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/calbook")

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; env and flags can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Set calendar id from flag or environment
	if calendarID := viper.GetString("calendar-id"); calendarID != "" {
		config.Calendar.CalendarID = calendarID
	}

	// Set token file from flag or environment
	if tokenFile := viper.GetString("token-file"); tokenFile != "" {
		config.OAuth.TokenFile = tokenFile
	}

	if config.Calendar.CalendarID == "" {
		return nil, fmt.Errorf("calendar id is required, please adjust the config or pass --calendar-id or CALBOOK_CALENDAR_CALENDAR_ID environment variable")
	}
	if config.OAuth.ClientID == "" || config.OAuth.ClientSecret == "" {
		return nil, fmt.Errorf("oauth.client_id and oauth.client_secret are required, please adjust the config or set CALBOOK_OAUTH_CLIENT_ID / CALBOOK_OAUTH_CLIENT_SECRET")
	}
	if config.OAuth.RedirectURL == "" {
		config.OAuth.RedirectURL = fmt.Sprintf("http://%s:%d/calendar/redirect/", config.Server.Host, config.Server.Port)
	}

	return &config, nil
}
