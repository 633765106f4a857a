package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/featurereg/pkg/featurereg"
	"github.com/randalmurphal/featurereg/pkg/featurereg/manifest"
)

const sampleYAML = `
features:
  - name: txn_count
    entity: user
    value_type: int
    description: Transactions in the trailing 7 days
    owner: risk-features
  - name: user_7d_spend
    entity: user
    value_type: float
    owner: risk-features
    dependencies:
      - name: txn_count
        entity: user
`

func TestFromYAML(t *testing.T) {
	f, err := manifest.FromYAML([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, f.Features, 2)

	assert.Equal(t, "txn_count", f.Features[0].Name)
	assert.Equal(t, "int", f.Features[0].ValueType)
	require.Len(t, f.Features[1].Dependencies, 1)
	assert.Equal(t, "txn_count", f.Features[1].Dependencies[0].Name)
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{"features":[{"name":"txn_count","entity":"user","value_type":"int"}]}`)
	f, err := manifest.FromJSON(data)
	require.NoError(t, err)
	require.Len(t, f.Features, 1)
	assert.Equal(t, "user", f.Features[0].Entity)
}

func TestLoad_DetectsFormat(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "features.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))

	f, err := manifest.Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, f.Features, 2)

	_, err = manifest.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	tomlPath := filepath.Join(dir, "features.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("x = 1"), 0o644))
	_, err = manifest.Load(tomlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest file extension")
}

func TestApply_RegistersInOrder(t *testing.T) {
	f, err := manifest.FromYAML([]byte(sampleYAML))
	require.NoError(t, err)

	reg := featurereg.NewRegistry()
	specs, err := f.Apply(reg)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	spec, err := reg.Get("user_7d_spend", "user")
	require.NoError(t, err)
	assert.Equal(t, featurereg.TypeFloat, spec.Metadata.ValueType)
	assert.Equal(t, "risk-features", spec.Metadata.Owner)
	assert.True(t, spec.Dependencies.Has(featurereg.Key{Name: "txn_count", Entity: "user"}))

	graph := reg.DependencyGraph()
	assert.Len(t, graph, 2)
}

func TestApply_ValidatesBeforeRegistering(t *testing.T) {
	bad := `
features:
  - name: txn_count
    entity: user
    value_type: int
  - name: broken
    entity: user
    value_type: tensor
`
	f, err := manifest.FromYAML([]byte(bad))
	require.NoError(t, err)

	reg := featurereg.NewRegistry()
	_, err = f.Apply(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	// Nothing was registered: validation failed up front.
	assert.Equal(t, 0, reg.Len())
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			"missing name",
			"features:\n  - entity: user\n    value_type: int\n",
			"name is required",
		},
		{
			"missing entity",
			"features:\n  - name: txn_count\n    value_type: int\n",
			"entity is required",
		},
		{
			"bad value type",
			"features:\n  - name: txn_count\n    entity: user\n    value_type: decimal\n",
			"unknown value type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := manifest.FromYAML([]byte(tc.yaml))
			require.NoError(t, err)
			err = f.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestApply_DependenciesAreNotResolved(t *testing.T) {
	// A manifest may depend on features it does not declare.
	data := `
features:
  - name: user_7d_spend
    entity: user
    value_type: float
    dependencies:
      - name: never_declared
        entity: user
`
	f, err := manifest.FromYAML([]byte(data))
	require.NoError(t, err)

	reg := featurereg.NewRegistry()
	_, err = f.Apply(reg)
	require.NoError(t, err)

	spec, err := reg.Get("user_7d_spend", "user")
	require.NoError(t, err)
	assert.True(t, spec.Dependencies.Has(featurereg.Key{Name: "never_declared", Entity: "user"}))
}
