package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"3000"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"certs365"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Bearer token signing. Expiry is assembled from magnitude + unit,
	// e.g. "15" + "m" -> "15m".
	AccessTokenSecret string `env:"ACCESS_TOKEN_SECRET"`
	JWTExpire         string `env:"JWT_EXPIRE" envDefault:"15"`
	JWTExpireUnit     string `env:"JWT_EXPIRE_TIME" envDefault:"m"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL"`

	LinkedInClientID     string `env:"LINKEDIN_CLIENT_ID"`
	LinkedInClientSecret string `env:"LINKEDIN_CLIENT_SECRET"`
	LinkedInCallbackURL  string `env:"LINKEDIN_CALLBACK_URL"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	MailHost     string `env:"MAIL_HOST"`
	MailPort     int    `env:"MAIL_PORT" envDefault:"587"`
	MailUsername string `env:"USER_NAME"`
	MailPassword string `env:"MAIL_PWD"`
	MailFrom     string `env:"USER_MAIL"`

	// OTP mail dispatch is off unless explicitly enabled. The forgot-password
	// flow still generates and stores the OTP either way.
	OTPMailEnabled bool `env:"OTP_MAIL_ENABLED" envDefault:"false"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
