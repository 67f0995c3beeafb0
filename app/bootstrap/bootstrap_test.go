package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
)

const minimalConfig = `
debug: false
farm:
  packageId: "0x2"
  module: farm
  refreshInterval: 10s
indexer:
  url: http://127.0.0.1:1
  timeout: 1s
signer:
  url: http://127.0.0.1:1
  timeout: 1s
prices:
  - coinType: "0x2::sui::SUI"
    coingeckoId: sui
cache:
  provider: memory
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildWithoutStorage(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	require.NoError(t, LoadConfig(writeConfig(t, minimalConfig)))

	ctx := bCtx.Background()
	s, err := Build(ctx, Options{})
	require.NoError(t, err)
	defer s.Close(ctx)

	require.NotNil(t, s.Positions)
	require.NotNil(t, s.Oracle)
	require.NotNil(t, s.CacheProvider)
	require.Nil(t, s.Mongo)
	require.Nil(t, s.Redis)

	// no mongo means empty history instead of an error
	items, count, err := s.Positions.Activities(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Zero(t, count)
}

func TestBuildRedisCacheNeedsRedis(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	require.NoError(t, LoadConfig(writeConfig(t, minimalConfig)))
	viper.Set("cache.provider", "redis")

	_, err := Build(bCtx.Background(), Options{})
	require.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestBuildMissingPackage(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	require.NoError(t, LoadConfig(writeConfig(t, minimalConfig)))
	viper.Set("farm.packageId", "")

	_, err := Build(bCtx.Background(), Options{})
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	require.Error(t, LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")))
}
