package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	Mail       MailConfig       `mapstructure:"mail"`
	Storage    StorageConfig    `mapstructure:"storage"`
	RabbitMQ   RabbitMQConfig   `mapstructure:"rabbitmq"`
}

type AppConfig struct {
	AppName       string `mapstructure:"name"`
	Environment   string `mapstructure:"env"`
	HTTPPort      string `mapstructure:"http_port"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	TopCandidates int    `mapstructure:"top_candidates"`
	Workers       int    `mapstructure:"workers"`
	BodyLimitMB   int    `mapstructure:"body_limit_mb"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	DBHost     string `mapstructure:"host"`
	DBPort     string `mapstructure:"port"`
	DBName     string `mapstructure:"name"`
	DBUser     string `mapstructure:"user"`
	DBPassword string `mapstructure:"password"`
	DBSSLMode  string `mapstructure:"ssl_mode"`

	MigrationsDir string `mapstructure:"migrations_dir"`

	ConnectTimeout        time.Duration `mapstructure:"connect_timeout"`
	PoolMaxConns          int32         `mapstructure:"pool_max_conns"`
	PoolMinConns          int32         `mapstructure:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `mapstructure:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `mapstructure:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `mapstructure:"pool_health_check_period"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type JWTConfig struct {
	AccessSecret     string        `mapstructure:"access_secret"`
	RefreshSecret    string        `mapstructure:"refresh_secret"`
	AccessExpiresIn  time.Duration `mapstructure:"access_expires_in"`
	RefreshExpiresIn time.Duration `mapstructure:"refresh_expires_in"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type GeminiConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

type AssessmentConfig struct {
	TotalQuestions      int `mapstructure:"total_questions"`
	PointsPerQuestion   int `mapstructure:"points_per_question"`
	JobDescriptionLimit int `mapstructure:"job_description_limit"`
}

type MailConfig struct {
	Transport     string `mapstructure:"transport"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	From          string `mapstructure:"from"`
	UseTLS        bool   `mapstructure:"use_tls"`
	RatePerSecond int    `mapstructure:"rate_per_second"`
}

type StorageConfig struct {
	Driver          string `mapstructure:"driver"`
	LocalDir        string `mapstructure:"local_dir"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	Location        string `mapstructure:"location"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type RabbitMQConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	Queue      string `mapstructure:"queue"`
	RoutingKey string `mapstructure:"routing_key"`
	Prefetch   int    `mapstructure:"prefetch"`
}

var errMissingRequiredEnv = errors.New("missing required configuration")

// envBindings keeps the variable names operators already use in their .env files.
var envBindings = map[string][]string{
	"app.name":            {"APP_NAME"},
	"app.env":             {"APP_ENV"},
	"app.http_port":       {"HTTP_PORT"},
	"app.public_base_url": {"PUBLIC_BASE_URL"},
	"app.top_candidates":  {"TOP_CANDIDATES"},
	"app.workers":         {"APP_WORKERS"},
	"app.body_limit_mb":   {"MAX_UPLOAD_MB"},

	"log.json":  {"LOG_JSON"},
	"log.debug": {"LOG_DEBUG", "DEBUG"},

	"database.driver":                   {"DB_TYPE", "DB_DRIVER"},
	"database.host":                     {"DB_HOST"},
	"database.port":                     {"DB_PORT"},
	"database.name":                     {"DB_NAME"},
	"database.user":                     {"DB_USER"},
	"database.password":                 {"DB_PASSWORD"},
	"database.ssl_mode":                 {"DB_SSL_MODE"},
	"database.migrations_dir":           {"DB_MIGRATIONS_DIR"},
	"database.connect_timeout":          {"DB_CONNECT_TIMEOUT"},
	"database.pool_max_conns":           {"DB_POOL_MAX_CONNS"},
	"database.pool_min_conns":           {"DB_POOL_MIN_CONNS"},
	"database.pool_max_conn_lifetime":   {"DB_POOL_MAX_CONN_LIFETIME"},
	"database.pool_max_conn_idle_time":  {"DB_POOL_MAX_CONN_IDLE_TIME"},
	"database.pool_health_check_period": {"DB_POOL_HEALTH_CHECK_PERIOD"},

	"redis.host":     {"REDIS_HOST"},
	"redis.port":     {"REDIS_PORT"},
	"redis.password": {"REDIS_PASSWORD"},
	"redis.db":       {"REDIS_DB"},
	"redis.ttl":      {"REDIS_TTL"},

	"jwt.access_secret":      {"JWT_ACCESS_SECRET"},
	"jwt.refresh_secret":     {"JWT_REFRESH_SECRET"},
	"jwt.access_expires_in":  {"JWT_ACCESS_EXPIRES_IN"},
	"jwt.refresh_expires_in": {"JWT_REFRESH_EXPIRES_IN"},

	"admin.username": {"ADMIN_USERNAME"},
	"admin.password": {"ADMIN_PASSWORD"},

	"gemini.api_key":             {"GEMINI_API_KEY"},
	"gemini.model":               {"GEMINI_MODEL"},
	"gemini.requests_per_minute": {"GEMINI_REQUESTS_PER_MINUTE"},
	"gemini.timeout":             {"GEMINI_TIMEOUT"},

	"assessment.total_questions":       {"TOTAL_TEST_QUESTIONS"},
	"assessment.points_per_question":   {"POINTS_PER_QUESTION"},
	"assessment.job_description_limit": {"JOB_DESCRIPTION_LIMIT"},

	"mail.transport":       {"MAIL_TRANSPORT"},
	"mail.host":            {"MAIL_SERVER"},
	"mail.port":            {"MAIL_PORT"},
	"mail.username":        {"MAIL_USERNAME"},
	"mail.password":        {"MAIL_PASSWORD"},
	"mail.from":            {"MAIL_DEFAULT_SENDER"},
	"mail.use_tls":         {"MAIL_USE_TLS"},
	"mail.rate_per_second": {"MAIL_RATE_PER_SECOND"},

	"storage.driver":            {"STORAGE_DRIVER"},
	"storage.local_dir":         {"UPLOAD_FOLDER"},
	"storage.endpoint":          {"MINIO_ENDPOINT"},
	"storage.access_key_id":     {"MINIO_ACCESS_KEY_ID"},
	"storage.secret_access_key": {"MINIO_SECRET_ACCESS_KEY"},
	"storage.bucket":            {"MINIO_BUCKET"},
	"storage.location":          {"MINIO_LOCATION"},
	"storage.use_ssl":           {"MINIO_USE_SSL"},

	"rabbitmq.url":         {"RABBITMQ_URL"},
	"rabbitmq.exchange":    {"RABBITMQ_EXCHANGE"},
	"rabbitmq.queue":       {"RABBITMQ_QUEUE"},
	"rabbitmq.routing_key": {"RABBITMQ_ROUTING_KEY"},
	"rabbitmq.prefetch":    {"RABBITMQ_PREFETCH"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hireflow")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.public_base_url", "http://localhost:8080")
	v.SetDefault("app.top_candidates", 3)
	v.SetDefault("app.workers", 4)
	v.SetDefault("app.body_limit_mb", 32)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "hireflow")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.migrations_dir", "")
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.pool_max_conns", 10)
	v.SetDefault("database.pool_min_conns", 0)
	v.SetDefault("database.pool_max_conn_lifetime", time.Hour)
	v.SetDefault("database.pool_max_conn_idle_time", 30*time.Minute)
	v.SetDefault("database.pool_health_check_period", time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("jwt.access_secret", "")
	v.SetDefault("jwt.refresh_secret", "")
	v.SetDefault("jwt.access_expires_in", 15*time.Minute)
	v.SetDefault("jwt.refresh_expires_in", 7*24*time.Hour)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.requests_per_minute", 60)
	v.SetDefault("gemini.timeout", 30*time.Second)

	v.SetDefault("assessment.total_questions", 10)
	v.SetDefault("assessment.points_per_question", 10)
	v.SetDefault("assessment.job_description_limit", 5000)

	v.SetDefault("mail.transport", "log")
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.use_tls", true)
	v.SetDefault("mail.rate_per_second", 5)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket", "resumes")
	v.SetDefault("storage.location", "")
	v.SetDefault("storage.use_ssl", false)

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "hireflow.mail")
	v.SetDefault("rabbitmq.queue", "hireflow.mail.outbound")
	v.SetDefault("rabbitmq.routing_key", "mail.send")
	v.SetDefault("rabbitmq.prefetch", 4)
}

// Load reads the optional config file and overlays environment variables.
func Load(file string) (Config, error) {
	return LoadWith(viper.New(), file)
}

// LoadWith is Load on a caller-owned viper instance, so command flags bound to it apply.
func LoadWith(v *viper.Viper, file string) (Config, error) {
	setDefaults(v)
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if file = strings.TrimSpace(file); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "postgresql" || c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	c.Mail.Transport = strings.ToLower(strings.TrimSpace(c.Mail.Transport))
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.App.PublicBaseURL = strings.TrimRight(strings.TrimSpace(c.App.PublicBaseURL), "/")
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}
	if c.Assessment.TotalQuestions <= 0 {
		c.Assessment.TotalQuestions = 10
	}
	if c.Assessment.PointsPerQuestion <= 0 {
		c.Assessment.PointsPerQuestion = 10
	}
	if c.App.BodyLimitMB <= 0 {
		c.App.BodyLimitMB = 32
	}
	if c.App.TopCandidates <= 0 {
		c.App.TopCandidates = 3
	}
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	var missing []string
	req := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	req("app.http_port", c.App.HTTPPort)
	req("jwt.access_secret", c.JWT.AccessSecret)
	req("jwt.refresh_secret", c.JWT.RefreshSecret)
	req("admin.username", c.Admin.Username)
	req("admin.password", c.Admin.Password)

	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Mail.Transport {
	case "log", "smtp":
	case "queue":
		req("rabbitmq.url", c.RabbitMQ.URL)
	default:
		return fmt.Errorf("unsupported mail transport %q", c.Mail.Transport)
	}

	switch c.Storage.Driver {
	case "local":
		req("storage.local_dir", c.Storage.LocalDir)
	case "minio":
		req("storage.endpoint", c.Storage.Endpoint)
		req("storage.bucket", c.Storage.Bucket)
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	return nil
}
