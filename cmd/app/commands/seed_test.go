package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported-driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "invalid")

		err := RunSeed(ctx)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to initialize book use case")
	})
}
