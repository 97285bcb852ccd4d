package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "service-role-key")
	t.Setenv("SUPABASE_DB_URL", "postgres://postgres:pw@db.example.supabase.co:5432/postgres")

	cfg := Load()

	require.Equal(t, "123:abc", cfg.TelegramToken)
	require.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	require.Equal(t, "service-role-key", cfg.SupabaseKey)
	require.Equal(t, "postgres://postgres:pw@db.example.supabase.co:5432/postgres", cfg.SupabaseDBURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg: Config{
				TelegramToken: "123:abc",
				SupabaseURL:   "https://example.supabase.co",
				SupabaseKey:   "key",
			},
		},
		{
			name: "db url is optional",
			cfg: Config{
				TelegramToken: "123:abc",
				SupabaseURL:   "https://example.supabase.co",
				SupabaseKey:   "key",
				SupabaseDBURL: "postgres://localhost/postgres",
			},
		},
		{
			name:    "everything missing",
			cfg:     Config{},
			wantErr: "TELEGRAM_TOKEN is required",
		},
		{
			name: "missing key",
			cfg: Config{
				TelegramToken: "123:abc",
				SupabaseURL:   "https://example.supabase.co",
			},
			wantErr: "SUPABASE_KEY is required",
		},
		{
			name: "malformed url",
			cfg: Config{
				TelegramToken: "123:abc",
				SupabaseURL:   "not a url",
				SupabaseKey:   "key",
			},
			wantErr: "not a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "TELEGRAM_TOKEN")
	require.Contains(t, err.Error(), "SUPABASE_URL")
	require.Contains(t, err.Error(), "SUPABASE_KEY")
}
