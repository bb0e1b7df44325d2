// Package config loads fiostat's settings from the environment, an optional
// dotenv file and command line flags.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kastenhq/fiostat/pkg/common"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DBNameEnvKey names the bucket samples are written to
	DBNameEnvKey = "DB_NAME"
	// TokenEnvKey is the InfluxDB API token
	TokenEnvKey = "INFLUXDB_TOKEN"
	// OrgEnvKey is the InfluxDB organization name
	OrgEnvKey = "INFLUXDB_ORG"
	// JobFileEnvKey is the fio job file, or a configmap:// reference
	JobFileEnvKey = "FIO_JOB_FILE"
	// URLEnvKey is the InfluxDB server URL
	URLEnvKey = "INFLUXDB_URL"
	// HostnameEnvKey overrides the hostname tag
	HostnameEnvKey = "FIO_HOSTNAME"
	// BinaryEnvKey overrides the fio executable
	BinaryEnvKey = "FIO_BINARY"
)

// ErrConfigurationMissing is returned when a required setting is not set.
var ErrConfigurationMissing = errors.New("required configuration missing")

// requiredKeys are checked in this order; the first missing one is reported.
var requiredKeys = []string{DBNameEnvKey, TokenEnvKey, OrgEnvKey, JobFileEnvKey}

// Config holds everything a run needs.
type Config struct {
	Bucket   string
	Token    string
	Org      string
	JobFile  string
	URL      string
	Hostname string
	Binary   string
}

// MissingKeyError names the setting that was not provided.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return e.Key + " environment variable not set."
}

func (e *MissingKeyError) Is(target error) bool { return target == ErrConfigurationMissing }

// LoadEnvFile loads a dotenv file into the process environment. Variables
// that are already set win over the file.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "Unable to load env file (%s)", path)
	}
	return nil
}

// New returns a viper instance that reads every key from the environment.
// Flags bound with BindFlag take precedence over the environment.
func New() *viper.Viper {
	v := viper.New()
	for _, key := range append(requiredKeys, URLEnvKey, HostnameEnvKey, BinaryEnvKey) {
		_ = v.BindEnv(key)
	}
	v.SetDefault(URLEnvKey, common.DefaultInfluxURL)
	v.SetDefault(BinaryEnvKey, common.FIOBinary)
	return v
}

// BindFlag lets a command line flag override key when it is set.
func BindFlag(v *viper.Viper, key string, flag *pflag.Flag) error {
	if flag == nil {
		return errors.Errorf("Flag for %s not found", key)
	}
	return v.BindPFlag(key, flag)
}

// Load reads the configuration out of v and checks the required keys.
func Load(v *viper.Viper) (*Config, error) {
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			return nil, &MissingKeyError{Key: key}
		}
	}
	cfg := &Config{
		Bucket:   v.GetString(DBNameEnvKey),
		Token:    v.GetString(TokenEnvKey),
		Org:      v.GetString(OrgEnvKey),
		JobFile:  v.GetString(JobFileEnvKey),
		URL:      v.GetString(URLEnvKey),
		Hostname: v.GetString(HostnameEnvKey),
		Binary:   v.GetString(BinaryEnvKey),
	}
	if cfg.Hostname == "" {
		cfg.Hostname = resolveHostname()
	}
	return cfg, nil
}

var hostname = os.Hostname

func resolveHostname() string {
	name, err := hostname()
	if err != nil || name == "" {
		return common.DefaultHostname
	}
	return name
}
