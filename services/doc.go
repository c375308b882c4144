// Package services hosts the backend capabilities specialists call through
// their tools: pharmacy benefit lookups, pricing math, and a simulated IT
// estate for operations investigations. The PBM service can synthesize data
// through a completion client and falls back to built-in fixtures, so every
// code path works offline and in tests.
package services
