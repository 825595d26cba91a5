package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaConsumerGroup     string
	KafkaPaymentTopic      string
	KafkaOrderChangedTopic string
	SMTPHost               string
	SMTPPort               string
	SMTPUser               string
	SMTPPassword           string
	MailTemplatesDir       string
	PaymentTimeoutMinutes  string
	NotifyWorkers          string
	NotifyQueueSize        string
	ThemeCacheTTLMinutes   string
	ThemeCacheSize         string
}
