package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	awsclient "tasnim.dev/elb-inventory/internal/aws"
)

// EnvPrefix prefixes every environment override, e.g. ELB_INVENTORY_REGION.
const EnvPrefix = "ELB_INVENTORY"

// PathEnv names the environment variable that overrides the config path.
const PathEnv = EnvPrefix + "_CONFIG"

// Config holds the settings loaded from ~/.config/elb-inventory/config.yaml
// and the environment.
type Config struct {
	LoadBalancer     string `yaml:"load_balancer"`
	LoadBalancerType string `yaml:"load_balancer_type"`
	Region           string `yaml:"region"`
	Profile          string `yaml:"profile"`
	AccessKeyID      string `yaml:"access_key_id"`
	SecretAccessKey  string `yaml:"secret_access_key"`
	SessionToken     string `yaml:"session_token"`
	Verbosity        int    `yaml:"verbosity"`
}

// DefaultPath returns the config path, honouring ELB_INVENTORY_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "elb-inventory", "config.yaml")
}

// Load reads the config file at path. Returns zero-value Config if the file
// doesn't exist or path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// NewEnv returns a viper instance reading ELB_INVENTORY_* overrides.
// The standard AWS region variables are bound as a fallback.
func NewEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("aws_region", "AWS_REGION", "AWS_DEFAULT_REGION")
	return v
}

// Merge applies environment overrides. ELB_INVENTORY_* variables take
// precedence over the file; AWS_REGION only fills in a missing region.
func (c *Config) Merge(v *viper.Viper) {
	override := func(key string, dst *string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}

	override("load_balancer", &c.LoadBalancer)
	override("load_balancer_type", &c.LoadBalancerType)
	override("region", &c.Region)
	override("profile", &c.Profile)
	override("access_key_id", &c.AccessKeyID)
	override("secret_access_key", &c.SecretAccessKey)
	override("session_token", &c.SessionToken)
	if c.Region == "" {
		c.Region = v.GetString("aws_region")
	}
	if v.GetString("verbosity") != "" {
		c.Verbosity = v.GetInt("verbosity")
	}
}

// Validate checks the merged config before any AWS call is made.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LoadBalancer) == "" {
		return fmt.Errorf("no load balancer configured: set load_balancer in %s or %s_LOAD_BALANCER", DefaultPath(), EnvPrefix)
	}
	if strings.TrimSpace(c.Region) == "" {
		return fmt.Errorf("no region configured: set region in the config file, %s_REGION or AWS_REGION", EnvPrefix)
	}
	if _, err := awsclient.ParseLoadBalancerType(c.LoadBalancerType); err != nil {
		return err
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return errors.New("access_key_id and secret_access_key must be set together")
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must be >= 0, got %d", c.Verbosity)
	}
	return nil
}

// AWSOptions converts the config into session options.
func (c *Config) AWSOptions() awsclient.Options {
	return awsclient.Options{
		Profile: c.Profile,
		Region:  c.Region,
		Credentials: awsclient.Credentials{
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			SessionToken:    c.SessionToken,
		},
	}
}

// Type returns the parsed load balancer type. Call after Validate.
func (c *Config) Type() awsclient.LoadBalancerType {
	t, _ := awsclient.ParseLoadBalancerType(c.LoadBalancerType)
	return t
}
