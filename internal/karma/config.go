package karma

// Config is the run configuration handed to Karma. Field names and JSON keys
// follow Karma's configuration file format.
type Config struct {
	Frameworks       []string          `json:"frameworks" yaml:"frameworks"`
	Reporters        []string          `json:"reporters" yaml:"reporters"`
	Files            []File            `json:"files" yaml:"files"`
	Browsers         []string          `json:"browsers,omitempty" yaml:"browsers,omitempty"`
	CustomLaunchers  Launchers         `json:"customLaunchers,omitempty" yaml:"customLaunchers,omitempty"`
	CoverageReporter *CoverageReporter `json:"coverageReporter,omitempty" yaml:"coverageReporter,omitempty"`
	SauceLabs        *SauceLabs        `json:"sauceLabs,omitempty" yaml:"sauceLabs,omitempty"`
}

// Launcher describes a browser Karma can start. Launchers whose Base is
// "SauceLabs" are provisioned by the remote lab. Name is only read from the
// launcher table; inside a Config it is the customLaunchers key.
type Launcher struct {
	Name        string `json:"-" yaml:"name"`
	Base        string `json:"base" yaml:"base"`
	Platform    string `json:"platform" yaml:"platform"`
	BrowserName string `json:"browserName" yaml:"browserName"`
}

// CoverageReporter lists the coverage output formats.
type CoverageReporter struct {
	Reporters []CoverageFormat `json:"reporters" yaml:"reporters"`
}

// CoverageFormat is one coverage output, e.g. "lcov".
type CoverageFormat struct {
	Type string `json:"type" yaml:"type"`
}

// SauceLabs carries the job metadata shown in the Sauce Labs dashboard.
type SauceLabs struct {
	Build    string   `json:"build" yaml:"build"`
	TestName string   `json:"testName" yaml:"testName"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// Defaults holds the static inputs of the pipeline: the base configuration
// and the tables each stage draws from. It is versioned data, normally loaded
// from the embedded defaults of the config package.
type Defaults struct {
	Frameworks []string          `yaml:"frameworks,omitempty"`
	Reporters  []string          `yaml:"reporters,omitempty"`
	Files      []File            `yaml:"files,omitempty"`
	Coverage   CoverageSettings  `yaml:"coverage,omitempty"`
	Browsers   BrowserTable      `yaml:"browsers,omitempty"`
	SauceLabs  SauceLabsSettings `yaml:"sauceLabs,omitempty"`
}

// CoverageSettings configures the coverage stage.
type CoverageSettings struct {
	Flag     string   `yaml:"flag,omitempty"`     // argument token enabling coverage, e.g. "--coverage"
	Reporter string   `yaml:"reporter,omitempty"` // reporter appended when enabled
	Formats  []string `yaml:"formats,omitempty"`
}

// BrowserTable maps each platform class to its local browsers.
type BrowserTable struct {
	Mac     []string `yaml:"mac,omitempty"`
	Windows []string `yaml:"windows,omitempty"`
	Linux   []string `yaml:"linux,omitempty"`
}

// SauceLabsSettings configures the remote lab stage.
type SauceLabsSettings struct {
	Reporter  string     `yaml:"reporter,omitempty"`
	Launchers []Launcher `yaml:"launchers,omitempty"`
}

// NewConfig returns a fresh Config seeded from d. Nothing in the result
// aliases d, so stages may mutate it freely.
func NewConfig(d Defaults) *Config {
	return &Config{
		Frameworks: cloneStrings(d.Frameworks),
		Reporters:  cloneStrings(d.Reporters),
		Files:      append([]File(nil), d.Files...),
	}
}

// HasReporter reports whether name is already among the reporters.
func (c *Config) HasReporter(name string) bool {
	for _, r := range c.Reporters {
		if r == name {
			return true
		}
	}
	return false
}

func (c *Config) addReporter(name string) {
	if name == "" || c.HasReporter(name) {
		return
	}
	c.Reporters = append(c.Reporters, name)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string{}, in...)
}
