package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	LoadConfig()

	assert.Equal(t, "5003", AppConfig.AppPort)
	assert.Equal(t, "cowork", AppConfig.DatabaseName)
	assert.Equal(t, 10, AppConfig.OTPExpMinutes)
	assert.Equal(t, 30, AppConfig.JWTExpireDays)
	assert.Equal(t, 100, AppConfig.MaxRequestsPerMin)
	assert.Empty(t, AppConfig.TrustedProxyList())
	assert.False(t, IsProduction())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("OTP_EXP_MINUTES", "5")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CLIENT_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")
	LoadConfig()

	assert.Equal(t, 5*time.Minute, AppConfig.OTPWindow())
	assert.True(t, IsProduction())
	assert.Equal(t, "s3cret", AppConfig.JWTSecret)
	require.Len(t, AppConfig.AllowedOrigins(), 2)
	assert.Equal(t, "https://b.example", AppConfig.AllowedOrigins()[1])
	assert.Equal(t, []string{"10.0.0.0/8"}, AppConfig.TrustedProxyList())
}

func TestConfigDurations_FallBackOnNonPositive(t *testing.T) {
	c := Config{}
	assert.Equal(t, 10*time.Minute, c.OTPWindow())
	assert.Equal(t, 30*24*time.Hour, c.SessionTTL())
	assert.Equal(t, 30*24*time.Hour, c.SessionCookieTTL())

	c = Config{JWTExpireDays: 7, JWTCookieExpire: 1}
	assert.Equal(t, 7*24*time.Hour, c.SessionTTL())
	assert.Equal(t, 24*time.Hour, c.SessionCookieTTL())
}
