package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "SHOP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHOP_DB_DSN"
	EnvDBHost = "SHOP_DB_HOST"
	EnvDBUser = "SHOP_DB_USER"
	EnvDBName = "SHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Catalog      CatalogConfig
	Newsletter   NewsletterConfig
	Promo        PromoConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SHOP_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SHOP_DB_DSN"`
	Driver string `envconfig:"SHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOP_DB_USER"`
	LegacyPassword string `envconfig:"SHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	// FreeShippingThreshold is the order total (EUR) that unlocks free shipping.
	FreeShippingThreshold float64       `envconfig:"SHOP_CART_FREE_SHIPPING_THRESHOLD" default:"50"`
	SessionCookie         string        `envconfig:"SHOP_CART_SESSION_COOKIE" default:"shop_session"`
	Retention             time.Duration `envconfig:"SHOP_CART_RETENTION" default:"720h"`
}

type CatalogConfig struct {
	// ListLimit bounds the fetch-all query; the assortment is small enough
	// that one page covers it.
	ListLimit    int `envconfig:"SHOP_CATALOG_LIST_LIMIT" default:"1000"`
	ShortNameMax int `envconfig:"SHOP_CATALOG_SHORT_NAME_MAX" default:"52"`
}

type NewsletterConfig struct {
	// Endpoint is the formspark form action URL.
	Endpoint    string        `envconfig:"SHOP_NEWSLETTER_ENDPOINT"`
	Subject     string        `envconfig:"SHOP_NEWSLETTER_SUBJECT" default:"Newsletter Anmeldung E-Kinderauto"`
	Timeout     time.Duration `envconfig:"SHOP_NEWSLETTER_TIMEOUT" default:"10s"`
	RateWindow  time.Duration `envconfig:"SHOP_NEWSLETTER_RATE_WINDOW" default:"1m"`
	RateIPLimit int           `envconfig:"SHOP_NEWSLETTER_RATE_IP_LIMIT" default:"5"`
}

type PromoConfig struct {
	// PopupDelay is how long the storefront waits before revealing the
	// newsletter popup to a session that has not dismissed it yet.
	PopupDelay time.Duration `envconfig:"SHOP_PROMO_POPUP_DELAY" default:"5s"`
	// SaleEndsAt optionally pins the detail page sale countdown, RFC 3339.
	SaleEndsAt string        `envconfig:"SHOP_PROMO_SALE_ENDS_AT"`
	ViewerMin  int           `envconfig:"SHOP_PROMO_VIEWER_MIN" default:"4"`
	ViewerMax  int           `envconfig:"SHOP_PROMO_VIEWER_MAX" default:"23"`
	ViewerTick time.Duration `envconfig:"SHOP_PROMO_VIEWER_TICK" default:"15s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
