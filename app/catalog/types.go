package catalog

// Category names form a closed set; the seed loader rejects anything else.
const (
	CategoryFrontPage  = "Front Page"
	CategoryEVWire     = "EV Wire"
	CategorySupercars  = "Supercars"
	CategoryMotorsport = "Motorsport"
	CategoryReviews    = "Reviews"
	CategoryIndustry   = "Industry"
	CategoryGeneral    = "General"
)

var Categories = map[string]bool{
	CategoryFrontPage:  true,
	CategoryEVWire:     true,
	CategorySupercars:  true,
	CategoryMotorsport: true,
	CategoryReviews:    true,
	CategoryIndustry:   true,
	CategoryGeneral:    true,
}

// Seed is one curated entry from the seed file. Seed order defines the
// default feed order.
type Seed struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Publisher   string   `yaml:"publisher"`
	Category    string   `yaml:"category"`
	Link        string   `yaml:"link"`
	Description string   `yaml:"description"`
	Insights    []string `yaml:"insights"`
	WhyMatters  string   `yaml:"why_matters"`
	Authors     []string `yaml:"authors"`
	ReadTime    string   `yaml:"read_time"`
	DaysAgo     int      `yaml:"days_ago"`
}

// Article is immutable once generated.
type Article struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Publisher       string   `json:"publisher"`
	Authors         []string `json:"authors"`
	Abstract        string   `json:"abstract"`
	AbstractPreview string   `json:"abstractPreview"`
	PublicationDate string   `json:"publicationDate"`
	Category        string   `json:"category"`
	DOI             string   `json:"doi"`
	WhyMatters      string   `json:"whyMatters"`
	Upvotes         int      `json:"upvotes"`
	Timestamp       int64    `json:"timestamp"`
	AIInsights      []string `json:"aiInsights"`
	ReadTime        string   `json:"readTime"`
	PublisherLogo   string   `json:"publisherLogo"`
}
