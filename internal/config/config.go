package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"shopfront.db"`

	Backend Backend `envPrefix:"BACKEND_"`
	Session Session `envPrefix:"SESSION_"`
}

// Backend points at the commerce REST API that owns carts, orders,
// users and payments. The shopfront never persists any of those itself.
type Backend struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:9000/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

type Session struct {
	CookieName string        `env:"COOKIE_NAME" envDefault:"shop_session"`
	TTL        time.Duration `env:"TTL" envDefault:"720h"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
