package services

import "fmt"

// ITEnvironment describes the rules of the simulated estate: monitoring
// cadence, log layout and naming conventions. Specialist prompts embed this
// context so investigations follow the environment's actual conventions.
type ITEnvironment struct{}

// SplunkContext renders the log platform layout for agent prompts.
func (ITEnvironment) SplunkContext() string {
	return `SPLUNK ENVIRONMENT CONTEXT:

Available Indexes:
- main: Infrastructure events, heartbeats, system metrics
- app: Application logs, errors, performance data
- deployment: CI/CD pipeline logs, deployment events
- security: Authentication, firewall, access events
- metrics: Performance metrics, resource utilization

Common Source Types:
- heartbeat: Server heartbeat events (every 5 min)
- application: Application logs and errors
- pipeline: Deployment pipeline execution logs
- syslog: System logs from servers
- iis: IIS web server logs
- mssql: SQL Server logs
- firewall: Network firewall logs

Server Monitoring:
- Heartbeats: Every 5 minutes from SCOM (System Center Operations Manager)
- Missing heartbeat timeout: 15 minutes
- Heartbeat location: index=main sourcetype=heartbeat

Deployment Tracking:
- All deployments logged to index=deployment sourcetype=pipeline
- Stages: build, test, security-scan, deploy, health-check
- Health checks run for 5 minutes post-deployment

Common Query Patterns:
- Server status: index=main sourcetype=heartbeat host=HOSTNAME | stats latest(_time) as last_seen
- Recent deployments: index=deployment earliest=-4h | table _time pipeline_name status stage
- Application errors: index=app severity=ERROR earliest=-2h | timechart span=10m count
- Database issues: index=app ("sql" OR "database" OR "timeout") earliest=-1h`
}

// InvestigationPatterns renders the standard investigation playbook.
func (ITEnvironment) InvestigationPatterns() string {
	return `INVESTIGATION PATTERNS:

1. Server Down Investigation:
   - Check last heartbeat time (should be every 5 min)
   - Look for deployment activity 30-60 min before issue
   - Check for hardware/OS errors in system logs
   - Verify network connectivity patterns

2. Application Issues:
   - Check for recent deployments in deployment logs
   - Look for error spikes in application logs
   - Verify database connectivity if data-driven app
   - Check resource utilization (CPU, memory, disk)

3. Database Connectivity:
   - Test SQL port (1433) accessibility in flow logs
   - Check for authentication failures
   - Look for recent firewall changes
   - Verify SQL Server service status

Timeline Analysis:
- Always establish a clear timeline of events
- Correlate symptoms with deployments/changes
- Look for patterns across multiple servers
- Check for cascade failures`
}

// ServerNames lists example hosts following the naming convention.
func (ITEnvironment) ServerNames() []string {
	var names []string
	for _, env := range []string{"DEV", "TEST", "PROD"} {
		for i := 1; i <= 2; i++ {
			names = append(names,
				fmt.Sprintf("WEB-%s-%02d", env, i),
				fmt.Sprintf("SQL-%s-%02d", env, i),
				fmt.Sprintf("APP-%s-%02d", env, i),
			)
		}
	}
	return names
}
