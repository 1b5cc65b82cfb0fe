package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertGroup struct {
	Name  string      `yaml:"name"`
	Rules []alertRule `yaml:"rules"`
}

type alertSpec struct {
	Groups []alertGroup `yaml:"groups"`
}

func TestStockroomAlertRules(t *testing.T) {
	path := filepath.Join("..", "..", "deploy", "prometheus", "alerts", "stockroom.yml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var spec alertSpec
	require.NoError(t, yaml.Unmarshal(data, &spec))
	require.Len(t, spec.Groups, 1)
	group := spec.Groups[0]
	require.Equal(t, "stockroom", group.Name)

	expected := map[string]string{
		"StockroomFlushFailing":   "critical",
		"StockroomSkippedLines":   "warning",
		"StockroomMutationErrors": "warning",
	}
	require.Len(t, group.Rules, len(expected))

	families := registeredFamilies(t)
	for _, rule := range group.Rules {
		severity, ok := expected[rule.Alert]
		require.True(t, ok, "unexpected rule %q", rule.Alert)
		require.Equal(t, severity, rule.Labels["severity"], rule.Alert)
		require.NotEmpty(t, rule.Annotations["summary"], rule.Alert)
		require.NotEmpty(t, rule.Annotations["description"], rule.Alert)
		require.NotEmpty(t, rule.For, rule.Alert)

		_, err := time.ParseDuration(rule.For)
		require.NoError(t, err, rule.Alert)
		require.True(t, referencesFamily(rule.Expr, families), "rule %s references no exported metric: %s", rule.Alert, rule.Expr)
	}
}

func registeredFamilies(t *testing.T) []string {
	t.Helper()
	metrics := NewMetrics()
	require.NoError(t, metrics.Track("product", "add").End(nil))
	metrics.ObserveMovement("IN", 1)
	metrics.AddSkipped("product", 1)
	metrics.SetRecords("product", 1)
	metrics.ObserveFlush(time.Millisecond, nil)

	gathered, err := metrics.Gatherer().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(gathered))
	for _, mf := range gathered {
		names = append(names, mf.GetName())
	}
	return names
}

func referencesFamily(expr string, families []string) bool {
	for _, name := range families {
		if strings.Contains(expr, name) {
			return true
		}
	}
	return false
}
