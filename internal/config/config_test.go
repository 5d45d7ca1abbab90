package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclient "tasnim.dev/elb-inventory/internal/aws"
)

// clearEnv unsets every variable Merge reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ELB_INVENTORY_LOAD_BALANCER", "ELB_INVENTORY_LOAD_BALANCER_TYPE",
		"ELB_INVENTORY_REGION", "ELB_INVENTORY_PROFILE",
		"ELB_INVENTORY_ACCESS_KEY_ID", "ELB_INVENTORY_SECRET_ACCESS_KEY",
		"ELB_INVENTORY_SESSION_TOKEN", "ELB_INVENTORY_VERBOSITY",
		"ELB_INVENTORY_CONFIG", "AWS_REGION", "AWS_DEFAULT_REGION",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `load_balancer: lb1
load_balancer_type: application
region: eu-west-1
profile: ops
verbosity: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lb1", cfg.LoadBalancer)
	assert.Equal(t, "application", cfg.LoadBalancerType)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "ops", cfg.Profile)
	assert.Equal(t, 2, cfg.Verbosity)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "load_balancer: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(PathEnv, "/etc/elb-inventory.yaml")
	assert.Equal(t, "/etc/elb-inventory.yaml", DefaultPath())

	t.Setenv(PathEnv, "")
	t.Setenv("HOME", "/home/ansible")
	assert.Equal(t, filepath.Join("/home/ansible", ".config", "elb-inventory", "config.yaml"), DefaultPath())
}

func TestMerge_EnvTakesPrecedence(t *testing.T) {
	clearEnv(t)
	cfg := &Config{LoadBalancer: "file-lb", Region: "us-east-1", Profile: "file-profile", Verbosity: 1}

	t.Setenv("ELB_INVENTORY_LOAD_BALANCER", "env-lb")
	t.Setenv("ELB_INVENTORY_REGION", "ap-south-1")
	t.Setenv("ELB_INVENTORY_VERBOSITY", "3")
	cfg.Merge(NewEnv())

	assert.Equal(t, "env-lb", cfg.LoadBalancer)
	assert.Equal(t, "ap-south-1", cfg.Region)
	assert.Equal(t, "file-profile", cfg.Profile, "unset variables keep the file value")
	assert.Equal(t, 3, cfg.Verbosity)
}

func TestMerge_AWSRegionFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "eu-central-1")

	cfg := &Config{}
	cfg.Merge(NewEnv())
	assert.Equal(t, "eu-central-1", cfg.Region)

	// A region from the file wins over AWS_REGION.
	cfg = &Config{Region: "us-west-2"}
	cfg.Merge(NewEnv())
	assert.Equal(t, "us-west-2", cfg.Region)
}

func TestMerge_AWSDefaultRegionFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_DEFAULT_REGION", "sa-east-1")

	cfg := &Config{}
	cfg.Merge(NewEnv())
	assert.Equal(t, "sa-east-1", cfg.Region)
}

func TestValidate(t *testing.T) {
	valid := Config{LoadBalancer: "lb1", Region: "us-east-1"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing load balancer", func(c *Config) { c.LoadBalancer = " " }, "no load balancer"},
		{"missing region", func(c *Config) { c.Region = "" }, "no region"},
		{"unknown type", func(c *Config) { c.LoadBalancerType = "gateway" }, "unknown load balancer type"},
		{"key without secret", func(c *Config) { c.AccessKeyID = "AKIA" }, "must be set together"},
		{"secret without key", func(c *Config) { c.SecretAccessKey = "s" }, "must be set together"},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }, "verbosity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAWSOptions(t *testing.T) {
	cfg := &Config{
		LoadBalancer:     "lb1",
		LoadBalancerType: "network",
		Region:           "us-east-1",
		Profile:          "ops",
		AccessKeyID:      "AKIA",
		SecretAccessKey:  "secret",
	}

	opts := cfg.AWSOptions()
	assert.Equal(t, "ops", opts.Profile)
	assert.Equal(t, "us-east-1", opts.Region)
	assert.Equal(t, "AKIA", opts.Credentials.AccessKeyID)
	assert.Equal(t, "secret", opts.Credentials.SecretAccessKey)
	assert.Equal(t, awsclient.LoadBalancerNetwork, cfg.Type())

	assert.Equal(t, awsclient.LoadBalancerClassic, (&Config{}).Type())
}
