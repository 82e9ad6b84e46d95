package cfg

import (
	"time"

	"github.com/lysyi3m/relnotes-feed/app/feed"
)

type Cfg struct {
	// Output
	Format feed.Format // empty in serve mode
	Listen string

	// Source
	URL      string
	BaseURL  string
	Title    string
	Author   string
	Selector string

	// Fetching
	UserAgent string
	Timeout   time.Duration

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// Profile describes a release-notes page in a YAML file.
type Profile struct {
	Source ProfileSource `yaml:"source"`
}

type ProfileSource struct {
	URL      string `yaml:"url"`
	BaseURL  string `yaml:"base_url"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Selector string `yaml:"selector"`
}
