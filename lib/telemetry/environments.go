package telemetry

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"overstats/lib/configutil"
)

var setupTestEnvironments sync.Map

// SetupForTesting sets up telemetry for a test binary, at most once per
// service name. Without a telemetry.json5 only debug logging is set up.
func SetupForTesting(t testing.TB, serviceName string) {
	InitSlog(true, false)

	_, setupAlready := setupTestEnvironments.LoadOrStore(serviceName, struct{}{})
	if setupAlready {
		return
	}

	tel, err := SetupFromEnv(context.Background(), serviceName)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			t.Log("telemetry shutdown:", err)
		}
	})
}

// SetupFromEnv searches up the filesystem from the cwd for a file called
// telemetry.json5 and uses it as the config to set up telemetry.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, config)
}
