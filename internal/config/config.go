package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
)

// Config holds application configuration.
type Config struct {
	GmailCredentialsPath string `json:"gmail_credentials_path"`
	GmailTokenPath       string `json:"gmail_token_path"`
	DriveRootFolderID    string `json:"drive_root_folder_id"`
	SheetsSpreadsheetID  string `json:"sheets_spreadsheet_id"`
	SheetsRange          string `json:"sheets_range"`
	ReportsDir           string `json:"reports_dir"`

	ScanQuery   string `json:"scan_query"`
	MaxMessages int64  `json:"max_messages"`

	// Courtesy rate limit for Google API calls.
	RequestsPerSecond float64 `json:"requests_per_second"`

	// Classifier policy knobs. Every heuristic variant seen in the field maps
	// onto these instead of a code change.
	SectionsRequired   int     `json:"sections_required"`
	MixedProfileRatio  float64 `json:"mixed_profile_ratio"`
	RelabelMixedSignal bool    `json:"relabel_mixed_signal"`
}

// DefaultConfig returns a new config with default values.
func DefaultConfig() *Config {
	return &Config{
		GmailCredentialsPath: "credentials.json",
		GmailTokenPath:       "token.json",
		SheetsRange:          "Sheet1!A:I",
		ReportsDir:           "reports",
		ScanQuery:            "",
		MaxMessages:          50,
		RequestsPerSecond:    5,
		SectionsRequired:     3,
		MixedProfileRatio:    0.7,
	}
}

// GetConfigPath returns the path to the configuration file.
// On Windows: %APPDATA%/ResumeScanner/config.json
// On Unix: ~/.config/ResumeScanner/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		// Windows
		configDir = filepath.Join(os.Getenv("APPDATA"), "ResumeScanner")
	} else {
		// Unix-like systems
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "ResumeScanner")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default config path.
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.GmailCredentialsPath == "" {
		return fmt.Errorf("gmail_credentials_path is required")
	}
	if _, err := os.Stat(c.GmailCredentialsPath); err != nil {
		return fmt.Errorf("gmail credentials file not found: %w", err)
	}

	if c.SectionsRequired < 1 || c.SectionsRequired > 4 {
		return fmt.Errorf("sections_required must be between 1 and 4, got %d", c.SectionsRequired)
	}
	if c.MixedProfileRatio <= 0 || c.MixedProfileRatio > 1 {
		return fmt.Errorf("mixed_profile_ratio must be in (0,1], got %v", c.MixedProfileRatio)
	}
	if c.MaxMessages <= 0 {
		return fmt.Errorf("max_messages must be positive, got %d", c.MaxMessages)
	}

	return nil
}

// ClassifierConfig maps the policy knobs onto the canonical classifier
// configuration.
func (c *Config) ClassifierConfig() classifier.Config {
	cfg := classifier.DefaultConfig()
	if c.SectionsRequired > 0 {
		cfg.SectionsRequired = c.SectionsRequired
	}
	if c.MixedProfileRatio > 0 {
		cfg.MixedProfileRatio = c.MixedProfileRatio
	}
	cfg.RelabelMixedSignal = c.RelabelMixedSignal
	return cfg
}
