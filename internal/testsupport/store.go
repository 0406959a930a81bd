package testsupport

import (
	"context"
	"testing"

	"artalign/internal/config"
	"artalign/internal/store"
)

// MustOpenStore opens the run history store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// BeginRun creates a running run with placeholder input paths.
func BeginRun(t testing.TB, st *store.Store) *store.Run {
	t.Helper()

	run, err := st.BeginRun(context.Background(), store.Run{
		SourcePath:      "source.txt",
		TargetPath:      "target.txt",
		TranslationPath: "translation.txt",
		SourceLang:      "de",
		TargetLang:      "fr",
		WindowSize:      500,
	})
	if err != nil {
		t.Fatalf("store.BeginRun: %v", err)
	}
	return run
}
