package metrics

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"voxel-client/internal/world"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadMesher returns one quad for every grid.
type quadMesher struct{}

func (quadMesher) MeshGrid(*world.Grid) []float32 {
	return make([]float32, floatsPerQuad)
}

func TestPipelineObservesBuild(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPipeline(reg)
	require.NoError(t, err)

	_, err = world.Build(world.FlatField(8), quadMesher{}, world.Options{
		Extent:   world.Extent{X: 2, Y: 2, Z: 2},
		Observer: p,
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(p.generated.WithLabelValues("mixed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(p.generated.WithLabelValues("empty")))
	assert.Equal(t, 12.0, testutil.ToFloat64(p.stitchedPairs))
	assert.Equal(t, 8.0, testutil.ToFloat64(p.meshed))
	assert.Equal(t, 3, testutil.CollectAndCount(p.stageSeconds))
}

func TestPipelineFrame(t *testing.T) {
	p, err := NewPipeline(prometheus.NewRegistry())
	require.NoError(t, err)

	p.FrameDone(17, 3*time.Millisecond)
	p.SetMeshQueue(4)
	p.MeshDiscarded()

	assert.Equal(t, 17.0, testutil.ToFloat64(p.chunksDrawn))
	assert.Equal(t, 4.0, testutil.ToFloat64(p.meshQueue))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.staleMeshes))
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPipeline(reg)
	require.NoError(t, err)
	_, err = NewPipeline(reg)
	assert.Error(t, err)
}

func TestServerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPipeline(reg)
	require.NoError(t, err)
	p.BordersStitched(5)

	s, err := Listen("127.0.0.1:0", reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer s.Close()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "voxel_border_pairs_stitched_total 5"))
}
