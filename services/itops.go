package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pgazmuri/agentswarm/logging"
)

// ITOps simulates the operational estate behind the IT specialists. It
// scripts one live incident: a firewall rule pushed through
// infrastructure-pipeline is blocking SQL-PROD-01 on port 1433, so the
// server has stopped heartbeating and web tier calls are timing out.
// Rolling back that deployment resolves the incident; VerifyFix reports
// healthy only afterwards.
type ITOps struct {
	mu       sync.Mutex
	logger   logging.Logger
	resolved bool
	actions  []string
}

// NewITOps creates the simulator with the incident active.
func NewITOps(logger logging.Logger) *ITOps {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ITOps{logger: logger}
}

// Actions returns the remediation actions taken so far, in order.
func (s *ITOps) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

// SplunkSearch executes a canned log search. Results are keyed off the
// query's index and host so investigations see a coherent incident.
func (s *ITOps) SplunkSearch(query, timeFrame string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("itops.splunk_search", "query", query, "time_frame", timeFrame)

	q := strings.ToLower(query)
	now := time.Now().UTC()

	switch {
	case strings.Contains(q, "heartbeat") && strings.Contains(q, "sql-prod-01"):
		last := now.Add(-47 * time.Minute)
		if s.resolved {
			last = now.Add(-3 * time.Minute)
		}
		return map[string]any{
			"query":      query,
			"time_frame": timeFrame,
			"results": []map[string]any{{
				"host":           "SQL-PROD-01",
				"last_heartbeat": last.Format(time.RFC3339),
				"expected_every": "5 minutes",
			}},
			"summary": "Heartbeat status for SQL-PROD-01.",
		}
	case strings.Contains(q, "index=deployment"):
		return map[string]any{
			"query":      query,
			"time_frame": timeFrame,
			"results": []map[string]any{{
				"_time":         now.Add(-52 * time.Minute).Format(time.RFC3339),
				"pipeline_name": "infrastructure-pipeline",
				"status":        "succeeded",
				"stage":         "deploy",
				"change":        "firewall rule update: restrict inbound 1433 on PROD subnet",
			}},
			"summary": "One deployment in the window: infrastructure-pipeline firewall change.",
		}
	case strings.Contains(q, "severity=error") || strings.Contains(q, "index=app"):
		count := 0
		if !s.resolved {
			count = 214
		}
		return map[string]any{
			"query":      query,
			"time_frame": timeFrame,
			"results": []map[string]any{{
				"host":    "WEB-PROD-01",
				"message": "System.Data.SqlClient.SqlException: Connection Timeout Expired (SQL-PROD-01:1433)",
				"count":   count,
			}},
			"summary": fmt.Sprintf("%d connection timeout errors from the web tier to SQL-PROD-01.", count),
		}
	default:
		return map[string]any{
			"query":      query,
			"time_frame": timeFrame,
			"results":    []map[string]any{},
			"summary":    "No events matched the search.",
		}
	}
}

// CheckFlowLogs inspects network flow logs for a host.
func (s *ITOps) CheckFlowLogs(vmName, timeFrame string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("itops.flow_logs", "vm", vmName, "time_frame", timeFrame)

	if strings.EqualFold(vmName, "SQL-PROD-01") && !s.resolved {
		return map[string]any{
			"vm_name":    vmName,
			"time_frame": timeFrame,
			"flows": []map[string]any{{
				"src": "10.10.1.0/24 (WEB-PROD subnet)", "dst": vmName, "port": 1433,
				"action": "deny", "rule": "fw-rule-88412 (deployed by infrastructure-pipeline)",
			}},
			"summary": "Inbound TCP 1433 to SQL-PROD-01 is being denied by a recently deployed firewall rule.",
		}
	}
	return map[string]any{
		"vm_name":    vmName,
		"time_frame": timeFrame,
		"flows":      []map[string]any{{"src": "10.10.1.0/24", "dst": vmName, "action": "allow"}},
		"summary":    "Traffic to " + vmName + " is flowing normally.",
	}
}

// CheckSnowTickets lists change tickets touching a host.
func (s *ITOps) CheckSnowTickets(vmName, timeFrame string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"vm_name":    vmName,
		"time_frame": timeFrame,
		"tickets": []map[string]any{{
			"number":      "CHG0031337",
			"short_desc":  "Tighten inbound firewall rules on PROD subnet",
			"state":       "implemented",
			"implemented": time.Now().UTC().Add(-52 * time.Minute).Format(time.RFC3339),
			"assigned_to": "network-team",
		}},
		"summary": "One recent change: CHG0031337, a PROD firewall tightening implemented under an hour ago.",
	}
}

// GetDeployments lists recent deployments touching a host.
func (s *ITOps) GetDeployments(vmName, timeFrame string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"vm_name":    vmName,
		"time_frame": timeFrame,
		"deployments": []map[string]any{{
			"pipeline": "infrastructure-pipeline",
			"status":   "succeeded",
			"stage":    "deploy",
			"_time":    time.Now().UTC().Add(-52 * time.Minute).Format(time.RFC3339),
			"notes":    "firewall rule update: restrict inbound 1433 on PROD subnet",
		}},
	}
}

// RestartServer reboots a host. It does not clear the scripted incident;
// the root cause is the firewall rule, not the server.
func (s *ITOps) RestartServer(vmName string) map[string]any {
	return s.act(fmt.Sprintf("restart_server %s", vmName), map[string]any{
		"vm_name": vmName,
		"status":  "restarted",
		"note":    "Server restarted. Symptoms will persist if the root cause is network-level.",
	})
}

// RestartService restarts a single service on a host.
func (s *ITOps) RestartService(vmName, service string) map[string]any {
	return s.act(fmt.Sprintf("restart_service %s/%s", vmName, service), map[string]any{
		"vm_name": vmName,
		"service": service,
		"status":  "restarted",
	})
}

// ApplyPatch applies a named patch to a host.
func (s *ITOps) ApplyPatch(vmName, patch string) map[string]any {
	return s.act(fmt.Sprintf("apply_patch %s/%s", vmName, patch), map[string]any{
		"vm_name": vmName,
		"patch":   patch,
		"status":  "applied",
	})
}

// RollbackDeployment reverts a pipeline's last deployment. Rolling back
// infrastructure-pipeline resolves the scripted incident.
func (s *ITOps) RollbackDeployment(pipeline string) map[string]any {
	s.mu.Lock()
	s.actions = append(s.actions, "rollback_deployment "+pipeline)
	resolvedNow := strings.EqualFold(pipeline, "infrastructure-pipeline")
	if resolvedNow {
		s.resolved = true
	}
	s.mu.Unlock()

	s.logger.Info("itops.rollback", "pipeline", pipeline, "resolved", resolvedNow)
	result := map[string]any{
		"pipeline": pipeline,
		"status":   "rolled_back",
	}
	if resolvedNow {
		result["note"] = "Firewall rule fw-rule-88412 reverted. Port 1433 connectivity restored."
	}
	return result
}

// VerifyFix checks whether a host is healthy again.
func (s *ITOps) VerifyFix(vmName string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.EqualFold(vmName, "SQL-PROD-01") && !s.resolved {
		return map[string]any{
			"vm_name": vmName,
			"healthy": false,
			"detail":  "SQL-PROD-01 still missing heartbeats; port 1433 remains blocked.",
		}
	}
	return map[string]any{
		"vm_name": vmName,
		"healthy": true,
		"detail":  "Heartbeats current, application error rate back to baseline.",
	}
}

func (s *ITOps) act(action string, result map[string]any) map[string]any {
	s.mu.Lock()
	s.actions = append(s.actions, action)
	s.mu.Unlock()
	s.logger.Info("itops.action", "action", action)
	return result
}
