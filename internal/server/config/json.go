package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/dmitrijs2005/gophnotes/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration, so "20m" and integer nanoseconds are both accepted.
// Absent keys leave the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	PasswordHashCost            *int            `json:"password_hash_cost"`
	LoginRateLimit              *int            `json:"login_rate_limit"`
	LoginRateWindow             *timex.Duration `json:"login_rate_window"`
	EventBufferSize             *int            `json:"event_buffer_size"`
	ShutdownTimeout             *timex.Duration `json:"shutdown_timeout"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	ExportURLValidityDuration   *timex.Duration `json:"export_url_validity_duration"`
}

// parseJson overlays config with the JSON file named by -c/-config in args.
// Without such a flag nothing happens. An unreadable file or invalid JSON
// panics, since the server cannot start on a half-applied config.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setInt(&config.PasswordHashCost, c.PasswordHashCost)
	setInt(&config.LoginRateLimit, c.LoginRateLimit)
	setDuration(&config.LoginRateWindow, c.LoginRateWindow)
	setInt(&config.EventBufferSize, c.EventBufferSize)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setDuration(&config.ExportURLValidityDuration, c.ExportURLValidityDuration)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
