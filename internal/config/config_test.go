package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := FromEnv(envMap(map[string]string{EnvHome: "/tmp/sf"}))
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if c.APIURL != "http://localhost:5000/api" {
		t.Errorf("APIURL = %q, want the local default", c.APIURL)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", c.LogLevel, "info")
	}
	if c.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", c.Timeout)
	}
	if got, want := c.TokenPath(), filepath.Join("/tmp/sf", "token"); got != want {
		t.Errorf("TokenPath() = %q, want %q", got, want)
	}
	if got, want := c.LogPath(), filepath.Join("/tmp/sf", "storefront.log"); got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}

func TestFromEnv_HomeDefault(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	c, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if want := filepath.Join("/home/tester", ".storefront"); c.Home != want {
		t.Errorf("Home = %q, want %q", c.Home, want)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	c, err := FromEnv(envMap(map[string]string{
		EnvAPIURL:   "https://shop.example.com/api",
		EnvToken:    "tok",
		EnvHome:     "/srv/sf",
		EnvLogLevel: "debug",
		EnvTimeout:  "5s",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if c.APIURL != "https://shop.example.com/api" || c.Token != "tok" || c.LogLevel != "debug" {
		t.Errorf("config = %+v", c)
	}
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.Timeout)
	}
}

func TestFromEnv_BadTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0s"} {
		if _, err := FromEnv(envMap(map[string]string{EnvHome: "/x", EnvTimeout: v})); err == nil {
			t.Errorf("FromEnv(%s=%q) expected error", EnvTimeout, v)
		}
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STOREFRONT_API_URL=http://dotenv.test/api\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvAPIURL, "")
	os.Unsetenv(EnvAPIURL) //nolint:errcheck

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.APIURL != "http://dotenv.test/api" {
		t.Errorf("APIURL = %q, want value from .env", c.APIURL)
	}
}
