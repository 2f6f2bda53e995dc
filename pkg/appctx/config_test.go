package appctx

import (
	"context"
	"testing"

	"github.com/vulntor/hostkit/pkg/config"
	"github.com/vulntor/hostkit/pkg/services"
)

func TestWithConfig(t *testing.T) {
	t.Run("stores config manager in context", func(t *testing.T) {
		manager := &config.Manager{}
		ctx := WithConfig(context.Background(), manager)

		retrieved, ok := Config(ctx)
		if !ok {
			t.Fatal("expected to retrieve config manager")
		}
		if retrieved != manager {
			t.Error("retrieved manager does not match stored manager")
		}
	})

	t.Run("handles nil context", func(t *testing.T) {
		manager := &config.Manager{}
		//nolint:staticcheck
		ctx := WithConfig(nil, manager)

		retrieved, ok := Config(ctx)
		if !ok {
			t.Fatal("expected to retrieve config manager")
		}
		if retrieved != manager {
			t.Error("retrieved manager does not match stored manager")
		}
	})
}

func TestConfig(t *testing.T) {
	t.Run("retrieves config manager from context", func(t *testing.T) {
		manager := &config.Manager{}
		ctx := context.WithValue(context.Background(), configKey, manager)

		retrieved, ok := Config(ctx)
		if !ok {
			t.Fatal("expected to retrieve config manager")
		}
		if retrieved != manager {
			t.Error("retrieved manager does not match stored manager")
		}
	})

	t.Run("returns false for nil context", func(t *testing.T) {
		//nolint:staticcheck
		_, ok := Config(nil)
		if ok {
			t.Error("expected false for nil context")
		}
	})

	t.Run("returns false when config not in context", func(t *testing.T) {
		ctx := context.Background()
		_, ok := Config(ctx)
		if ok {
			t.Error("expected false when config not in context")
		}
	})

	t.Run("returns false for nil config manager", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), configKey, (*config.Manager)(nil))
		_, ok := Config(ctx)
		if ok {
			t.Error("expected false for nil config manager")
		}
	})

	t.Run("returns false for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), configKey, "not a manager")
		_, ok := Config(ctx)
		if ok {
			t.Error("expected false for wrong type")
		}
	})
}

func TestWithServices(t *testing.T) {
	t.Run("stores services in context", func(t *testing.T) {
		svc := &services.Services{}
		ctx := WithServices(context.Background(), svc)

		retrieved, ok := Services(ctx)
		if !ok {
			t.Fatal("expected to retrieve services")
		}
		if retrieved != svc {
			t.Error("retrieved services do not match stored services")
		}
	})

	t.Run("handles nil context", func(t *testing.T) {
		svc := &services.Services{}
		//nolint:staticcheck
		ctx := WithServices(nil, svc)

		if _, ok := Services(ctx); !ok {
			t.Fatal("expected to retrieve services")
		}
	})

	t.Run("keeps config alongside services", func(t *testing.T) {
		manager := &config.Manager{}
		ctx := WithServices(WithConfig(context.Background(), manager), &services.Services{})

		if got, ok := Config(ctx); !ok || got != manager {
			t.Error("expected config manager to survive")
		}
	})
}

func TestServices(t *testing.T) {
	t.Run("returns false for nil context", func(t *testing.T) {
		//nolint:staticcheck
		if _, ok := Services(nil); ok {
			t.Error("expected false for nil context")
		}
	})

	t.Run("returns false when services not in context", func(t *testing.T) {
		if _, ok := Services(context.Background()); ok {
			t.Error("expected false when services not in context")
		}
	})

	t.Run("returns false for nil services", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), servicesKey, (*services.Services)(nil))
		if _, ok := Services(ctx); ok {
			t.Error("expected false for nil services")
		}
	})
}
