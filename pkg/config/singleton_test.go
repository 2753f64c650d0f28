package config

import "testing"

func resetGlobal() {
	SetConfig(nil)
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "server:\n  listen_address: \"127.0.0.1:9000\"\n")
	cfg, err := Initialize(path)
	if err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}
	if GetConfig() != cfg {
		t.Fatal("expected Initialize to publish the loaded config")
	}
	if cfg.Server.ListenAddress != "127.0.0.1:9000" {
		t.Errorf("expected listen address %q, got %q", "127.0.0.1:9000", cfg.Server.ListenAddress)
	}

	other := writeConfig(t, "server:\n  listen_address: \"127.0.0.1:9001\"\n")
	if _, err := Initialize(other); err != nil {
		t.Fatalf("second Initialize returned error: %v", err)
	}
	if got := GetConfig().Server.ListenAddress; got != "127.0.0.1:9001" {
		t.Errorf("expected second Initialize to replace the config, got %q", got)
	}

	bad := writeConfig(t, "source:\n  driver: postgres\n")
	if _, err := Initialize(bad); err == nil {
		t.Fatal("expected error for invalid config")
	}
	if got := GetConfig().Server.ListenAddress; got != "127.0.0.1:9001" {
		t.Errorf("expected failed Initialize to keep the config, got %q", got)
	}
}

func TestReloadConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	good := writeConfig(t, "export:\n  default_format: csv\n")
	if _, err := ReloadConfig(good); err == nil {
		t.Fatal("expected reload before initialize to fail")
	}

	SetConfig(NewDefaultConfig())

	bad := writeConfig(t, "export:\n  default_format: pdf\n")
	if _, err := ReloadConfig(bad); err == nil {
		t.Fatal("expected reload error, got nil")
	}
	if got := GetConfig().Export.DefaultFormat; got != DefaultFormat {
		t.Errorf("expected config unchanged after failed reload, got format %q", got)
	}

	cfg, err := ReloadConfig(good)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if cfg.Export.DefaultFormat != "csv" || GetConfig() != cfg {
		t.Errorf("expected format %q after reload, got %q", "csv", GetConfig().Export.DefaultFormat)
	}
}
