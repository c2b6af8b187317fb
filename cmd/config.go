package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AmqpURL is optional: when empty the service runs without a broker,
	// event ingestion is disabled and notifications fall back to logging.
	AmqpURL string
}
