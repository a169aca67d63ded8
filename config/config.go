package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/golang/glog"
	"github.com/spf13/viper"
)

// Configuration
type Configuration struct {
	Host           string  `mapstructure:"host"`
	Port           int     `mapstructure:"port"`
	AdminPort      int     `mapstructure:"admin_port"`
	MaxRequestSize int64   `mapstructure:"max_request_size"`
	EnableGzip     bool    `mapstructure:"enable_gzip"`
	Server         Server  `mapstructure:"server"`
	Agent          Agent   `mapstructure:"agent"`
	Random         Random  `mapstructure:"random"`
	Scoring        Scoring `mapstructure:"scoring"`
	Metrics        Metrics `mapstructure:"metrics"`
}

// Server holds the socket and HTTP options of the main listener.
type Server struct {
	ReadTimeoutMs          int  `mapstructure:"read_timeout_ms"`
	WriteTimeoutMs         int  `mapstructure:"write_timeout_ms"`
	TCPNoDelay             bool `mapstructure:"tcp_nodelay"`
	KeepAlive              bool `mapstructure:"keep_alive"`
	KeepAlivePeriodSeconds int  `mapstructure:"keep_alive_period_seconds"`
}

// Agent identifies this bidder in the agent data attached to every bid.
type Agent struct {
	ID      string            `mapstructure:"id"`
	Version string            `mapstructure:"version"`
	Params  map[string]string `mapstructure:"params"`
}

// Random seeds creative selection and random pricing. Zero picks a non-deterministic source.
type Random struct {
	Seed int64 `mapstructure:"seed"`
}

const (
	ScoringTypeLength = "length"
	ScoringTypeRedis  = "redis"
)

type Scoring struct {
	Type      string       `mapstructure:"type"`
	TimeoutMs int          `mapstructure:"timeout_ms"`
	Redis     RedisScoring `mapstructure:"redis"`
	Cache     ScoreCache   `mapstructure:"cache"`
	// HealthCheckIntervalSeconds is how often a remote score store is pinged. 0 disables it.
	HealthCheckIntervalSeconds int `mapstructure:"health_check_interval_seconds"`
}

type RedisScoring struct {
	Addr      string `mapstructure:"addr"`
	DB        int    `mapstructure:"db"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	TLS       bool   `mapstructure:"tls"`
	KeyPrefix string `mapstructure:"key_prefix"`
	PoolSize  int    `mapstructure:"pool_size"`
}

// ScoreCache is the in-process cache in front of the scorer. SizeBytes of 0 disables it.
type ScoreCache struct {
	SizeBytes  int `mapstructure:"size_bytes"`
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type Metrics struct {
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
}

type PrometheusMetrics struct {
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

// New uses viper to get our server configurations.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetupViper registers defaults, the config file lookup and environment overrides.
// Environment variables use the HEXBID_ prefix with "." replaced by "_", e.g. HEXBID_SCORING_TYPE.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/hexbid/config")
	}

	v.SetDefault("host", "")
	v.SetDefault("port", 8999)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("max_request_size", 1024*1024)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("server.read_timeout_ms", 15000)
	v.SetDefault("server.write_timeout_ms", 15000)
	v.SetDefault("server.tcp_nodelay", true)
	v.SetDefault("server.keep_alive", true)
	v.SetDefault("server.keep_alive_period_seconds", 180)
	v.SetDefault("agent.id", "beeswax-hexbid")
	v.SetDefault("agent.version", "1.0.0")
	v.SetDefault("agent.params", map[string]string{})
	v.SetDefault("random.seed", 0)
	v.SetDefault("scoring.type", ScoringTypeLength)
	v.SetDefault("scoring.timeout_ms", 20)
	v.SetDefault("scoring.health_check_interval_seconds", 30)
	v.SetDefault("scoring.redis.addr", "")
	v.SetDefault("scoring.redis.db", 0)
	v.SetDefault("scoring.redis.username", "")
	v.SetDefault("scoring.redis.password", "")
	v.SetDefault("scoring.redis.tls", false)
	v.SetDefault("scoring.redis.key_prefix", "hexbid:score:")
	v.SetDefault("scoring.redis.pool_size", 10)
	v.SetDefault("scoring.cache.size_bytes", 0)
	v.SetDefault("scoring.cache.ttl_seconds", 60)
	v.SetDefault("metrics.prometheus.port", 0)
	v.SetDefault("metrics.prometheus.namespace", "hexbid")
	v.SetDefault("metrics.prometheus.subsystem", "")
	v.SetDefault("metrics.prometheus.timeout_ms", 10000)

	v.SetEnvPrefix("HEXBID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename == "" {
		return
	}
	if err := v.ReadInConfig(); err != nil {
		glog.Warningf("Could not read config file %q, using defaults and environment: %v", filename, err)
	}
}

// Validate checks the values New cannot sensibly default.
func (cfg *Configuration) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&cfg.AdminPort, validation.Required, validation.Min(1), validation.Max(65535),
			validation.NotIn(cfg.Port).Error("must differ from port")),
		validation.Field(&cfg.MaxRequestSize, validation.Required, validation.Min(int64(1))),
		validation.Field(&cfg.Server),
		validation.Field(&cfg.Agent),
		validation.Field(&cfg.Scoring),
		validation.Field(&cfg.Metrics),
	)
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ReadTimeoutMs, validation.Min(0)),
		validation.Field(&s.WriteTimeoutMs, validation.Min(0)),
		validation.Field(&s.KeepAlivePeriodSeconds, validation.Min(0)),
	)
}

func (a Agent) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required),
	)
}

func (s Scoring) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.In(ScoringTypeLength, ScoringTypeRedis)),
		validation.Field(&s.TimeoutMs, validation.Min(0)),
		validation.Field(&s.HealthCheckIntervalSeconds, validation.Min(0)),
		validation.Field(&s.Redis, validation.When(s.Type == ScoringTypeRedis, validation.By(validateRedis))),
		validation.Field(&s.Cache),
	)
}

func validateRedis(value interface{}) error {
	r, ok := value.(RedisScoring)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a RedisScoring")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Addr, validation.Required),
		validation.Field(&r.PoolSize, validation.Min(0)),
	)
}

func (c ScoreCache) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SizeBytes, validation.Min(0)),
		validation.Field(&c.TTLSeconds, validation.Min(0)),
	)
}

func (m Metrics) Validate() error {
	return validation.ValidateStruct(&m.Prometheus,
		validation.Field(&m.Prometheus.Port, validation.Min(0), validation.Max(65535)),
		validation.Field(&m.Prometheus.TimeoutMs, validation.Min(0)),
	)
}
