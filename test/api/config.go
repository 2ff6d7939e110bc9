/*
Copyright 2026 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultTimeoutMillis = 30000
	defaultReportPath    = "reports/"
	defaultReportName    = "User API Test Automation Report"
	defaultConfigFile    = "config.yaml"
)

var (
	// ErrInvalidConfiguration is wrapped by every error returned from LoadTestConfig.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

type TestConfig struct {
	BaseURL         string
	AuthToken       string
	RequestTimeout  time.Duration
	ReportPath      string
	ReportName      string
	JUnitReport     bool
	SkipIntegration bool
	UseFakeAPI      bool
	DebugLogging    bool
	LogRequests     bool
	LogResponses    bool
}

// Timeout returns the request timeout in milliseconds.
func (c *TestConfig) Timeout() int {
	return int(c.RequestTimeout / time.Millisecond)
}

// LoadTestConfig loads configuration from an optional YAML file, .env files
// and environment variables, in increasing order of precedence.
// Returns an error if required configuration values are missing or unparseable.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		RequestTimeout: defaultTimeoutMillis * time.Millisecond,
		ReportPath:     defaultReportPath,
		ReportName:     defaultReportName,
	}

	var problems []string

	if err := loadConfigFile(config); err != nil {
		problems = append(problems, err.Error())
	}

	setString(&config.BaseURL, "API_BASE_URL")
	setString(&config.AuthToken, "API_AUTH_TOKEN")
	setString(&config.ReportPath, "REPORT_PATH")
	setString(&config.ReportName, "REPORT_NAME")

	if err := setMillis(&config.RequestTimeout, "API_TIMEOUT"); err != nil {
		problems = append(problems, err.Error())
	}

	bools := map[string]*bool{
		"REPORT_JUNIT":     &config.JUnitReport,
		"SKIP_INTEGRATION": &config.SkipIntegration,
		"USE_FAKE_API":     &config.UseFakeAPI,
		"DEBUG_LOGGING":    &config.DebugLogging,
		"LOG_REQUESTS":     &config.LogRequests,
		"LOG_RESPONSES":    &config.LogResponses,
	}

	for key, target := range bools {
		if err := setBool(target, key); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(problems, "; "))
	}

	// Validate required fields
	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadConfigFile reads the optional YAML configuration file using the same
// dotted keys as the legacy properties file.
func loadConfigFile(config *TestConfig) error {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return nil
		}

		path = defaultConfigFile
	}

	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file %q: %w", path, err)
	}

	if k.Exists("api.base.url") {
		config.BaseURL = k.String("api.base.url")
	}

	if k.Exists("api.auth.token") {
		config.AuthToken = k.String("api.auth.token")
	}

	if k.Exists("api.timeout") {
		millis, err := strconv.Atoi(k.String("api.timeout"))
		if err != nil || millis <= 0 {
			return fmt.Errorf("api.timeout in %q must be a positive integer of milliseconds", path)
		}

		config.RequestTimeout = time.Duration(millis) * time.Millisecond
	}

	if k.Exists("report.path") {
		config.ReportPath = k.String("report.path")
	}

	if k.Exists("report.name") {
		config.ReportName = k.String("report.name")
	}

	if k.Exists("report.junit") {
		config.JUnitReport = k.Bool("report.junit")
	}

	return nil
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

// setMillis reads a positive integer number of milliseconds.
func setMillis(target *time.Duration, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	millis, err := strconv.Atoi(value)
	if err != nil || millis <= 0 {
		return fmt.Errorf("%s must be a positive integer of milliseconds, got %q", key, value)
	}

	*target = time.Duration(millis) * time.Millisecond

	return nil
}

func setBool(target *bool, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be a boolean, got %q", key, value)
	}

	*target = boolValue

	return nil
}

func loadEnvFile() {
	envPaths := []string{
		".env",
		"../../.env",    // From test/api directory
		"../../../.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
// A fake API run supplies its own base URL and token.
func validateRequiredFields(config *TestConfig) error {
	if config.UseFakeAPI {
		return nil
	}

	var missing []string

	if config.BaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}

	if config.AuthToken == "" {
		missing = append(missing, "API_AUTH_TOKEN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required configuration: %s. Please set these environment variables, add them to a .env file, or set api.base.url and api.auth.token in %s", ErrInvalidConfiguration, strings.Join(missing, ", "), defaultConfigFile)
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: API_BASE_URL %q is not an absolute http(s) URL", ErrInvalidConfiguration, config.BaseURL)
	}

	return nil
}
