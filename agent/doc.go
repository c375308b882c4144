// Package agent implements the domain specialist: a completion-driven agent
// with registered tools, a bounded tool call loop and the ability to request
// a transfer of the conversation to another specialist. Instructions can be
// static text, rendered templates or dynamic providers.
package agent
