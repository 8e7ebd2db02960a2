package cardapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	t.Run(`rounding check`, func(t *testing.T) {
		require.Equal(t, float64(0), Progress(0, 0))
		require.Equal(t, float64(0), Progress(0, 5))
		require.Equal(t, float64(100), Progress(5, 5))
		require.Equal(t, float64(50), Progress(1, 2))
		require.Equal(t, 33.3, Progress(1, 3))
		require.Equal(t, 66.7, Progress(2, 3))
		require.Equal(t, 14.3, Progress(1, 7))
	})
}
