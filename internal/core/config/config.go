package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type DB struct {
	Driver string
	DSN    string

	// Discrete components, used to assemble a DSN when DSN is empty.
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	App  App
	Log  Log
	DB   DB
	SMTP SMTP
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("read config %s: %v", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}

	if c.DB.DSN == "" {
		dsn, err := assembleDSN(c.DB)
		if err != nil {
			// No usable database configuration is fatal at startup.
			log.Fatalf("database config: %v", err)
		}
		c.DB.DSN = dsn
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "contact-book")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("smtp.port", 587)
}

// assembleDSN builds a driver DSN from discrete components. Either a full
// APP_DB_DSN or the component set must be present.
func assembleDSN(d DB) (string, error) {
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("missing DB_DSN or (DB_HOST, DB_USER, DB_PASSWORD, DB_NAME)")
	}
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode), nil
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			d.User, url.QueryEscape(d.Password), d.Host, d.Port, d.Name), nil
	default:
		return "", fmt.Errorf("unsupported driver %q", d.Driver)
	}
}

// MailConfigured reports whether a relay is usable. Send-email degrades to a
// runtime error when it is not; startup does not fail.
func (c *Config) MailConfigured() bool { return c.SMTP.Host != "" }
