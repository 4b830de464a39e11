package cfg

type Cfg struct {
	// Storage configuration
	DataDir string

	// Application configuration
	Port              string
	BaseUrl           string
	SeedsFile         string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Chat assistant configuration
	GeminiAPIKey string
	GeminiModel  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
