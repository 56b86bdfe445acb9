package integration

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// containersAvailable returns true if a Docker or Podman socket is present
func containersAvailable() bool {
	if _, err := os.Stat("/var/run/docker.sock"); err == nil {
		return true
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		if uid := os.Getuid(); uid > 0 {
			runtimeDir = "/run/user/" + strconv.Itoa(uid)
		}
	}
	if runtimeDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(runtimeDir, "podman", "podman.sock"))
	return err == nil
}

// startPostgres runs a throwaway Postgres and returns its DSN
func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()
	if !containersAvailable() {
		t.Skip("no container runtime; skipping")
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15-alpine",
		Env: map[string]string{
			"POSTGRES_DB":       "inquiry",
			"POSTGRES_USER":     "inquiry",
			"POSTGRES_PASSWORD": "password",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start container: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	host, err := pg.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return "postgres://inquiry:password@" + host + ":" + port.Port() + "/inquiry?sslmode=disable"
}

// initSQL reads scripts/init.sql from the repo root
func initSQL(t *testing.T) string {
	t.Helper()
	root, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			break
		}
		root = filepath.Dir(root)
	}
	b, err := os.ReadFile(filepath.Join(root, "scripts", "init.sql"))
	if err != nil {
		t.Fatalf("read init.sql: %v", err)
	}
	return string(b)
}
