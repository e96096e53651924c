package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/portfolio-api/internal/domains/projects/adapters/memory"
	"github.com/Apurer/portfolio-api/internal/domains/projects/application"
	types "github.com/Apurer/portfolio-api/internal/domains/projects/application/types"
	"github.com/Apurer/portfolio-api/internal/domains/projects/ports"
)

func counterTotals(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	return totals
}

func TestService_CountsSuccessfulMutations(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	svc := New(application.NewService(memory.NewRepository()), WithMeter(provider.Meter("test")))
	ctx := context.Background()

	input := types.ProjectInput{Title: "Site", Description: "d", Image: "/i.png"}
	project, err := svc.Create(ctx, input)
	require.NoError(t, err)
	_, err = svc.Update(ctx, project.ID, input)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, project.ID))
	require.ErrorIs(t, svc.Delete(ctx, project.ID), ports.ErrNotFound)
	_, err = svc.Create(ctx, types.ProjectInput{})
	require.ErrorIs(t, err, application.ErrInvalidInput)

	totals := counterTotals(t, reader)
	require.Equal(t, int64(1), totals["projects.service.created"])
	require.Equal(t, int64(1), totals["projects.service.updated"])
	require.Equal(t, int64(1), totals["projects.service.deleted"])
}
