package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing config file")
	return path
}

func TestLoad(t *testing.T) {
	ctx := setupTestLogger(t)

	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: "taskvault.yaml",
			config: `
data_path: /var/lib/taskvault/tasks.json
audit_path: /var/lib/taskvault/audit.log
actor: alice
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/var/lib/taskvault/tasks.json", cfg.DataPath, "data path should match")
				assert.Equal(t, "/var/lib/taskvault/audit.log", cfg.AuditPath, "audit path should match")
				assert.Equal(t, "alice", cfg.Actor, "actor should match")
			},
		},
		{
			name:     "yaml_defaults_applied",
			filename: "taskvault.yml",
			config:   `actor: bob`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultDataPath, cfg.DataPath, "data path should default")
				assert.Equal(t, DefaultAuditPath, cfg.AuditPath, "audit path should default")
				assert.Equal(t, "bob", cfg.Actor, "actor should match")
			},
		},
		{
			name:     "valid_json",
			filename: "taskvault.json",
			config:   `{"data_path": "tasks.json", "audit_path": "audit.log"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "tasks.json", cfg.DataPath, "data path should match")
				assert.Equal(t, DefaultActor, cfg.Actor, "actor should default to system")
			},
		},
		{
			name:     "valid_hcl",
			filename: "taskvault.hcl",
			config: `
data_path  = "store/tasks.json"
audit_path = "store/audit.log"
actor      = "carol"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "store/tasks.json", cfg.DataPath, "data path should match")
				assert.Equal(t, "carol", cfg.Actor, "actor should match")
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "taskvault.yaml",
			config:      `datapath: oops.json`,
			wantErr:     true,
			errContains: "parsing",
		},
		{
			name:        "same_paths_rejected",
			filename:    "taskvault.yaml",
			config:      "data_path: same.json\naudit_path: same.json\n",
			wantErr:     true,
			errContains: "must differ",
		},
		{
			name:        "unsupported_extension",
			filename:    "taskvault.toml",
			config:      `data_path = "tasks.json"`,
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.config)
			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "Load should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error message should match")
				return
			}
			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}

	t.Run("missing_file_uses_defaults", func(t *testing.T) {
		cfg, err := Load(ctx, filepath.Join(t.TempDir(), ".taskvault.yaml"))
		require.NoError(t, err, "missing config file is not an error")
		assert.Equal(t, Default(), cfg, "defaults expected")
	})
}
