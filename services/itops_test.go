package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplunkSearchHeartbeat(t *testing.T) {
	ops := NewITOps(nil)

	result := ops.SplunkSearch("index=wineventlog host=SQL-PROD-01 heartbeat", "-1h")
	results := result["results"].([]map[string]any)
	assert.Len(t, results, 1)
	assert.Equal(t, "SQL-PROD-01", results[0]["host"])
}

func TestSplunkSearchDeployments(t *testing.T) {
	ops := NewITOps(nil)

	result := ops.SplunkSearch("index=deployment", "-24h")
	results := result["results"].([]map[string]any)
	assert.Equal(t, "infrastructure-pipeline", results[0]["pipeline_name"])
}

func TestSplunkSearchUnknownQuery(t *testing.T) {
	ops := NewITOps(nil)
	result := ops.SplunkSearch("index=nothing", "-1h")
	assert.Empty(t, result["results"])
}

func TestFlowLogsShowFirewallDeny(t *testing.T) {
	ops := NewITOps(nil)

	result := ops.CheckFlowLogs("SQL-PROD-01", "-1h")
	flows := result["flows"].([]map[string]any)
	assert.Equal(t, "deny", flows[0]["action"])
	assert.Equal(t, 1433, flows[0]["port"])
}

func TestRestartDoesNotResolveIncident(t *testing.T) {
	ops := NewITOps(nil)

	ops.RestartServer("SQL-PROD-01")
	result := ops.VerifyFix("SQL-PROD-01")
	assert.Equal(t, false, result["healthy"])
}

func TestRollbackResolvesIncident(t *testing.T) {
	ops := NewITOps(nil)

	before := ops.VerifyFix("SQL-PROD-01")
	assert.Equal(t, false, before["healthy"])

	ops.RollbackDeployment("infrastructure-pipeline")

	after := ops.VerifyFix("SQL-PROD-01")
	assert.Equal(t, true, after["healthy"])

	// Error volume drops after resolution.
	errs := ops.SplunkSearch("index=app severity=error", "-1h")
	results := errs["results"].([]map[string]any)
	assert.Equal(t, 0, results[0]["count"])

	// Flow logs clear too.
	flows := ops.CheckFlowLogs("SQL-PROD-01", "-1h")
	assert.Contains(t, flows["summary"], "normally")
}

func TestRollbackWrongPipelineDoesNothing(t *testing.T) {
	ops := NewITOps(nil)
	ops.RollbackDeployment("app-pipeline")
	result := ops.VerifyFix("SQL-PROD-01")
	assert.Equal(t, false, result["healthy"])
}

func TestActionsAreRecorded(t *testing.T) {
	ops := NewITOps(nil)

	ops.RestartServer("SQL-PROD-01")
	ops.RollbackDeployment("infrastructure-pipeline")

	actions := ops.Actions()
	assert.Equal(t, []string{
		"restart_server SQL-PROD-01",
		"rollback_deployment infrastructure-pipeline",
	}, actions)
}

func TestITEnvironmentContext(t *testing.T) {
	var env ITEnvironment
	assert.Contains(t, env.SplunkContext(), "index=")
	assert.NotEmpty(t, env.ServerNames())
}
