package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexsup/swifter/test"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	test.AssertNoError(t, cfg.Validate())
	test.AssertEqual(t, DispatcherGo, cfg.Dispatcher)
	test.AssertEqual(t, uint16(8080), cfg.Port)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
service_name: demo
port: 9090
force_ipv4: true
dispatcher: pool
pool_size: 32
`)

	cfg, err := Load(path)
	test.AssertNoError(t, err)
	test.AssertEqual(t, "demo", cfg.ServiceName)
	test.AssertEqual(t, uint16(9090), cfg.Port)
	test.AssertTrue(t, cfg.ForceIPv4)
	test.AssertEqual(t, DispatcherPool, cfg.Dispatcher)
	test.AssertEqual(t, 32, cfg.PoolSize)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "port: 9191\n")

	cfg, err := Load(path)
	test.AssertNoError(t, err)
	test.AssertEqual(t, uint16(9191), cfg.Port)
	test.AssertEqual(t, "swifter", cfg.ServiceName)
	test.AssertEqual(t, DispatcherGo, cfg.Dispatcher)
}

func TestLoadRejectsUnknownDispatcher(t *testing.T) {
	path := writeConfig(t, "dispatcher: fibers\n")

	_, err := Load(path)
	test.AssertError(t, err)
}

func TestLoadRejectsBadPoolSize(t *testing.T) {
	path := writeConfig(t, "dispatcher: pool\npool_size: 0\n")

	_, err := Load(path)
	test.AssertError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	test.AssertError(t, err)
}
