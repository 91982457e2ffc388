package domain

// Config mirrors ~/.taste/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	RulesRoot           string          `yaml:"rules_root"`
	GitHub              GitHubSettings  `yaml:"github"`
	Model               ModelDefinition `yaml:"model"`
	Preferences         Preferences     `yaml:"preferences"`
}

// GitHubSettings configures the commit API adapter.
type GitHubSettings struct {
	APIBaseURL  string `yaml:"api_base_url"`
	TokenEnvVar string `yaml:"token_env_var"`
}

// ModelDefinition describes the generative model endpoint and its
// generation parameters.
type ModelDefinition struct {
	Endpoint    string  `yaml:"endpoint"`
	AuthEnvVar  string  `yaml:"auth_env_var"`
	ModelID     string  `yaml:"model_id"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Preferences captures user-level toggles.
type Preferences struct {
	TimeoutSeconds int `yaml:"timeout"`
}
