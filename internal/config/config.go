package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
		FullName string `env:"FULL_NAME" envDefault:"Administrator"`
		Email    string `env:"EMAIL,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 days
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD,required"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Run struct {
		ResultExpiration int `env:"RESULT_EXPIRATION" envDefault:"86400"` // 24 hours
	} `envPrefix:"RUN_"`
	Optimizer struct {
		PopulationSize int     `env:"POP_SIZE" envDefault:"80"`
		MaxGenerations int     `env:"GENERATIONS" envDefault:"120"`
		CrossoverRate  float64 `env:"CROSSOVER_RATE" envDefault:"0.9"`
		MutationRate   float64 `env:"MUTATION_RATE" envDefault:"0.02"`
		EliteCount     int     `env:"ELITE_COUNT" envDefault:"2"`
		TournamentSize int     `env:"TOURNAMENT_K" envDefault:"3"`
		Seed           int64   `env:"MODEL_SEED" envDefault:"42"`
	} `envPrefix:"OPTIMIZER_"`
	Simulation struct {
		Steps int `env:"STEPS" envDefault:"50"`
	} `envPrefix:"SIMULATION_"`
	Generator struct {
		JobCount     int `env:"JOB_COUNT" envDefault:"40"`
		MaxJobLength int `env:"MAX_JOB_LENGTH" envDefault:"100"`
		WorkerCount  int `env:"WORKER_COUNT" envDefault:"6"`
		MinRate      int `env:"MIN_RATE" envDefault:"1"`
		MaxRate      int `env:"MAX_RATE" envDefault:"5"`
	} `envPrefix:"GENERATOR_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	NewUser struct {
		PasswordLength int `env:"PASSWORD_LENGTH" envDefault:"12"`
	} `envPrefix:"NEW_USER_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD"`
		} `envPrefix:"USER_"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only return the first error to keep the log readable.
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
