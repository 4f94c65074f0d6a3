package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menufind/config"
)

func isolateEnv(t *testing.T) {
	for _, k := range []string{"TAXONOMY_SOURCE_URL", "DATABASE_URL", "REDIS_URL", "GOOGLE_MAPS_API_KEY", "PORT", "MENUFIND_CONFIG"} {
		t.Setenv(k, "")
	}
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRootCmd_RequiresTaxonomySource(t *testing.T) {
	isolateEnv(t)

	err := execute()
	assert.ErrorIs(t, err, config.ErrNoTaxonomySource)
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	isolateEnv(t)

	err := execute("--config", t.TempDir()+"/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	isolateEnv(t)

	assert.Error(t, execute("extra"))
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServe_StopsOnCancel(t *testing.T) {
	isolateEnv(t)

	cfg := config.DefaultConfig()
	cfg.Server.Port = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop()) }()

	url := "http://127.0.0.1:" + strconv.Itoa(cfg.Server.Port) + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
