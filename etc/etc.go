package etc

import (
	"bytes"
	_ "embed"

	"tourjudge/tour"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var Config *Configuration

//go:embed config.sample.yaml
var DefaultConfig []byte

// Configuration is the Configuration structure.
type Configuration struct {
	LogLevel   string `mapstructure:"log_level"`
	ListenAddr string `mapstructure:"listen_addr"`

	Auth struct {
		AdminUser string `mapstructure:"admin_user"`

		// AdminPasswordHash is a bcrypt hash. Login is disabled while it
		// is empty.
		AdminPasswordHash string `mapstructure:"admin_password_hash"`

		// TokenSecret signs JWTs. An empty secret keeps the random
		// per-process one, which invalidates tokens on restart.
		TokenSecret string `mapstructure:"token_secret"`
	} `mapstructure:"auth"`

	Limits struct {
		MaxSites int `mapstructure:"max_sites"`
		MaxDays  int `mapstructure:"max_days"`
	} `mapstructure:"limits"`

	Dirs struct {
		// Inputs holds problem text files (plus an optional manifest.yaml).
		Inputs string `mapstructure:"inputs"`

		// Solvers holds one directory per solver, each with an executable
		// "run" and an optional executable "compile".
		Solvers string `mapstructure:"solvers"`
	} `mapstructure:"dirs"`

	Compile struct {
		// Timeout is the wall limit in seconds for a solver's compile step.
		Timeout int64 `mapstructure:"timeout"`

		// LogLimit is the stored size cap in bytes for compile logs.
		LogLimit int64 `mapstructure:"log_limit"`
	} `mapstructure:"compile"`

	Run struct {
		// Timeout is the wall limit in seconds for one solver run.
		Timeout int64 `mapstructure:"timeout"`

		// LogLimit is the stored size cap in bytes for run stderr logs.
		LogLimit int64 `mapstructure:"log_limit"`
	} `mapstructure:"run"`

	Database struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Port     int    `mapstructure:"port"`
			User     string `mapstructure:"user"`
			Password string `mapstructure:"password"`
			DBName   string `mapstructure:"dbname"`
			UseSSL   bool   `mapstructure:"use_ssl"`
		} `mapstructure:"postgres"`
		Redis struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"database"`

	Storage struct {
		// Type is the type of storage (local or minio).
		Type  string `mapstructure:"type"`
		Local struct {
			// Path is the root directory for stored artifacts.
			Path string `mapstructure:"path"`
		} `mapstructure:"local"`
		MinIO struct {
			Endpoint        string `mapstructure:"endpoint"`
			AccessKeyID     string `mapstructure:"access_key_id"`
			SecretAccessKey string `mapstructure:"secret_access_key"`
			UseSSL          bool   `mapstructure:"use_ssl"`
			Bucket          string `mapstructure:"bucket"`
		} `mapstructure:"minio"`
	} `mapstructure:"storage"`
}

// TourLimits returns the configured problem size bounds.
func (c *Configuration) TourLimits() tour.Limits {
	return tour.Limits{MaxSites: c.Limits.MaxSites, MaxDays: c.Limits.MaxDays}
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	case "panic":
		log.SetLevel(log.PanicLevel)
	default:
		log.WithField("level", level).Fatal("Invalid log level")
	}
}

func loadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/tourjudge/")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("tourjudge")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Warning("Failed to read config, use default config")
		if err := viper.ReadConfig(bytes.NewReader(DefaultConfig)); err != nil {
			log.WithError(err).Fatal("Failed to read default config")
		}
	}
	if err := viper.UnmarshalExact(&Config, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.ZeroFields = true
	}); err != nil {
		log.Fatal(err)
	}
}

func init() {
	log.SetFormatter(&nested.Formatter{})
	loadConfig()
	setLogLevel(Config.LogLevel)
	log.Info("Loaded config")
}
