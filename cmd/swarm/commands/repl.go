package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/pgazmuri/agentswarm/coordinator"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	agentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// runREPL drives the interactive loop shared by the chat and itops commands.
// It reads lines from stdin, streams replies to stdout and handles the
// /reset, /summary and /quit commands.
func runREPL(coord *coordinator.Coordinator, banner string, examples []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(bannerStyle.Render(banner))
	if len(examples) > 0 {
		fmt.Println(faintStyle.Render("Try for example:"))
		for _, ex := range examples {
			fmt.Println(faintStyle.Render("  " + ex))
		}
	}
	fmt.Println(faintStyle.Render("Commands: /reset  /summary  /quit"))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("You: "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			fmt.Println(faintStyle.Render("Goodbye."))
			return nil
		case "/reset":
			coord.Reset()
			fmt.Println(faintStyle.Render("Conversation reset."))
			continue
		case "/summary":
			printSummary(coord.Summarize())
			continue
		}

		label := string(coord.CurrentAgent())
		if label == "" || label == "coordinator" {
			label = "assistant"
		}
		fmt.Print(agentStyle.Render(label + ": "))
		for fragment := range coord.ProcessMessage(ctx, line) {
			fmt.Print(fragment)
		}
		fmt.Println()
		fmt.Println()

		if err := ctx.Err(); err != nil {
			fmt.Println(errorStyle.Render("Interrupted."))
			return nil
		}
	}
}

func printSummary(s coordinator.Summary) {
	fmt.Println(faintStyle.Render(fmt.Sprintf("Current agent: %s", s.CurrentAgent)))
	fmt.Println(faintStyle.Render(fmt.Sprintf("History length: %d", s.HistoryLength)))
	fmt.Println(faintStyle.Render(fmt.Sprintf("Available agents: %s", strings.Join(s.AvailableAgents, ", "))))
	if len(s.RecentHistory) > 0 {
		raw, err := json.MarshalIndent(s.RecentHistory, "", "  ")
		if err == nil {
			fmt.Println(faintStyle.Render("Recent history:"))
			fmt.Println(faintStyle.Render(string(raw)))
		}
	}
}
