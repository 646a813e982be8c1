package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-portal/internal/core/auth"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestRead_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir())

	c, err := Read("")
	require.NoError(t, err)

	assert.Equal(t, 7000, c.App.HTTP.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, DevJWTSecret, c.JWT.Secret)
	assert.Equal(t, 24*time.Hour, c.JWT.TTL())
	assert.Equal(t, time.Duration(0), c.JWT.Leeway())
	assert.Equal(t, int64(300), c.App.HTTP.MaxConcurrent)
	assert.True(t, c.UsesDevSecret())
	assert.NoError(t, c.Validate())
}

func TestRead_ExplicitMissingFileFails(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRead_FileAndEnvOverrides(t *testing.T) {
	p := writeYAML(t, `
app:
  env: staging
  http:
    port: 8080
db:
  driver: mysql
  dsn: mysql://root:pw@127.0.0.1:3306/blood
jwt:
  secret: from-file
  accessTokenTTLMin: 60
redis:
  addr: 127.0.0.1:6379
`)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")

	c, err := Read(p)
	require.NoError(t, err)

	assert.Equal(t, "staging", c.App.Env)
	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.Equal(t, "mysql://root:pw@127.0.0.1:3306/blood", c.DB.DSN)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, time.Hour, c.JWT.TTL())
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
	assert.False(t, c.UsesDevSecret())
}

func TestRead_DatabaseURLAlias(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	c, err := Read(writeYAML(t, "app:\n  name: t\n"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/x", c.DB.DSN)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.App.HTTP.Port = 7000
		c.JWT.Secret = DevJWTSecret
		c.JWT.AccessTokenTTLMin = 60
		c.DB.DSN = "x"
		return c
	}

	c := base()
	assert.NoError(t, c.Validate())

	c = base()
	c.App.Env = "production"
	assert.Error(t, c.Validate(), "dev secret must be refused in production")

	c.JWT.Secret = "real-secret"
	assert.NoError(t, c.Validate())

	c = base()
	c.App.HTTP.Port = 0
	assert.Error(t, c.Validate())

	c = base()
	c.JWT.AccessTokenTTLMin = 0
	assert.Error(t, c.Validate())

	c = base()
	c.DB.DSN = ""
	assert.Error(t, c.Validate())
}

func TestDefaults_TokenRejectedOneSecondAfterExpiry(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir())
	c, err := Read("")
	require.NoError(t, err)

	j := &auth.JWTer{Secret: []byte(c.JWT.Secret), Issuer: c.JWT.Issuer, TTL: -time.Second, Leeway: c.JWT.Leeway()}
	tok, err := j.Issue(auth.Identity{UserID: "u-1", Role: "user"})
	require.NoError(t, err)

	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
