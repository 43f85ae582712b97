package main

import (
	"testing"

	"snapvault/internal/catalog"
	"snapvault/internal/logging"
)

func seedCache(t *testing.T, env *cliTestEnv, root string, entries catalog.Entries) {
	t.Helper()
	store, err := catalog.Open(env.cfg.CacheFilePath(), logging.NewNop())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer store.Close()
	store.SetEntries(root, entries)
	if err := store.Save(); err != nil {
		t.Fatalf("save cache: %v", err)
	}
}

func TestCacheShowEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"cache", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestCacheShowListsRoots(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, env.cfg.Paths.Destination, catalog.Entries{
		"2023-05-01/IMG_0001.CR2": {Size: 100, Taken: "2023-05-01T10:00:00"},
		"2023-05-01/IMG_0002.CR2": {Size: 200, Taken: "2023-05-01T10:05:00"},
	})

	out, _, err := runCLI(t, []string{"cache", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, env.cfg.Paths.Destination)
	requireContains(t, out, "2")
}

func TestCacheShowSingleRoot(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, env.cfg.Paths.Destination, catalog.Entries{
		"2023-05-01/IMG_0001.CR2": {Size: 100, Taken: "2023-05-01T10:00:00"},
	})

	out, _, err := runCLI(t, []string{"cache", "show", "--dest", env.cfg.Paths.Destination}, env.configPath)
	if err != nil {
		t.Fatalf("cache show --dest: %v", err)
	}
	requireContains(t, out, "IMG_0001.CR2")
	requireContains(t, out, "2023-05-01T10:00:00")
}

func TestCacheClearRequiresScope(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"cache", "clear"}, env.configPath); err == nil {
		t.Fatal("expected error without --dest or --all")
	}
}

func TestCacheClearDest(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, env.cfg.Paths.Destination, catalog.Entries{
		"IMG_0001.CR2": {Size: 100, Taken: "2023-05-01T10:00:00"},
	})

	out, _, err := runCLI(t, []string{"cache", "clear", "--dest", env.cfg.Paths.Destination}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Cleared cache for")

	out, _, err = runCLI(t, []string{"cache", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("cache show after clear: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestCacheClearAll(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, env.cfg.Paths.Destination, catalog.Entries{
		"IMG_0001.CR2": {Size: 100, Taken: "2023-05-01T10:00:00"},
	})

	out, _, err := runCLI(t, []string{"cache", "clear", "--all"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear --all: %v", err)
	}
	requireContains(t, out, "Cleared all cached destinations")
}
