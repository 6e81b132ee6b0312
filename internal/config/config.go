package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Vanity   VanityConfig
	Pump     PumpConfig
	Solana   SolanaConfig
	Redis    RedisConfig
	S3       S3Config
	Admin    AdminConfig
}

type ServerConfig struct {
	Addr           string
	Environment    string
	AllowedOrigins []string
}

type PostgresConfig struct {
	Driver      string
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// AuthConfig keeps raw values; AuthService parses and validates them.
type AuthConfig struct {
	Domain          string
	NonceTTL        string
	SessionTTL      string
	NonceLookback   string
	IssuedAtMaxSkew string
	RateLimitPerMin string
	CookieName      string
	CookiePath      string
	CookieDomain    string
	CookieSecure    string
	CookieSameSite  string
}

type VanityConfig struct {
	SealingKey     string
	ReservationTTL string
	SweepInterval  string
}

type PumpConfig struct {
	TradeURL string
	IPFSURL  string
}

type SolanaConfig struct {
	RPCURL         string
	DexscreenerURL string
}

type RedisConfig struct {
	URL    string
	Stream string
}

type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type AdminConfig struct {
	JWTSecret string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

func Load() Config {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Addr:           getenv("SERVER_ADDR", ":8080"),
			Environment:    getenv("APP_ENV", "production"),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Postgres: PostgresConfig{
			Driver:      getenv("STORE_DRIVER", "postgres"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			Domain:          getenv("AUTH_DOMAIN", "fluxur"),
			NonceTTL:        getenv("AUTH_NONCE_TTL", "5m"),
			SessionTTL:      getenv("AUTH_SESSION_TTL", "168h"),
			NonceLookback:   getenv("AUTH_NONCE_LOOKBACK", "5"),
			IssuedAtMaxSkew: os.Getenv("AUTH_ISSUED_AT_MAX_SKEW"),
			RateLimitPerMin: getenv("AUTH_RATE_LIMIT_PER_MINUTE", "60"),
			CookieName:      getenv("AUTH_COOKIE_NAME", "fluxur_session"),
			CookiePath:      getenv("AUTH_COOKIE_PATH", "/"),
			CookieDomain:    os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookieSecure:    os.Getenv("AUTH_COOKIE_SECURE"),
			CookieSameSite:  os.Getenv("AUTH_COOKIE_SAMESITE"),
		},
		Vanity: VanityConfig{
			SealingKey:     os.Getenv("VANITY_SEALING_KEY"),
			ReservationTTL: getenv("VANITY_RESERVATION_TTL", "30m"),
			SweepInterval:  getenv("VANITY_SWEEP_INTERVAL", "1m"),
		},
		Pump: PumpConfig{
			TradeURL: getenv("PUMP_TRADE_URL", "https://pumpportal.fun/api/trade-local"),
			IPFSURL:  getenv("PUMP_IPFS_URL", "https://pump.fun/api/ipfs"),
		},
		Solana: SolanaConfig{
			RPCURL:         getenv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
			DexscreenerURL: getenv("DEXSCREENER_URL", "https://api.dexscreener.com"),
		},
		Redis: RedisConfig{
			URL:    os.Getenv("REDIS_URL"),
			Stream: getenv("REDIS_EVENT_PREFIX", "fluxur"),
		},
		S3: S3Config{
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			Region:        getenv("S3_REGION", "us-east-1"),
			Bucket:        os.Getenv("S3_BUCKET"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Admin: AdminConfig{
			JWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
