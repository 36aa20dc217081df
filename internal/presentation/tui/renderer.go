package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// RenderSnapshot formats a session snapshot as markdown and, when stdout is
// a terminal, renders it with glamour. Non-TTY output (pipes, CI) gets the
// raw markdown.
func RenderSnapshot(state *domain.State) (string, error) {
	markdown := snapshotMarkdown(state)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return markdown, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return markdown, nil
	}
	return r.Render(markdown)
}

func snapshotMarkdown(state *domain.State) string {
	var sb strings.Builder
	sb.WriteString("# Session snapshot\n\n")
	sb.WriteString(fmt.Sprintf("%d client(s), %d cluster(s), %d pending swipe(s)\n\n",
		len(state.Clients), len(state.Clusters), len(state.Swipes)))

	clusterIDs := make([]domain.ClusterID, 0, len(state.Clusters))
	for id := range state.Clusters {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Slice(clusterIDs, func(i, j int) bool { return clusterIDs[i] < clusterIDs[j] })

	for _, clusterID := range clusterIDs {
		sb.WriteString(fmt.Sprintf("## Cluster `%s`\n\n", clusterID))
		writeClientTable(&sb, state, state.Members(clusterID))
	}

	var detached []domain.ClientID
	for id, client := range state.Clients {
		if client.ClusterID == "" {
			detached = append(detached, id)
		}
	}
	if len(detached) > 0 {
		sort.Slice(detached, func(i, j int) bool { return detached[i] < detached[j] })
		sb.WriteString("## Unclustered\n\n")
		writeClientTable(&sb, state, detached)
	}

	return sb.String()
}

func writeClientTable(sb *strings.Builder, state *domain.State, ids []domain.ClientID) {
	sb.WriteString("| client | size | transform | neighbors | open edges |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, id := range ids {
		client := state.Clients[id]

		neighbors := make([]string, 0, len(client.Adjacent))
		for nid := range client.Adjacent {
			neighbors = append(neighbors, string(nid))
		}
		sort.Strings(neighbors)

		sb.WriteString(fmt.Sprintf("| %s | %.0fx%.0f | (%.0f, %.0f) | %s | %s |\n",
			client.ID,
			client.Size.Width, client.Size.Height,
			client.Transform.X, client.Transform.Y,
			strings.Join(neighbors, ", "),
			openEdges(client.Openings),
		))
	}
	sb.WriteString("\n")
}

// openEdges summarizes which edges still have free segments.
func openEdges(o domain.Openings) string {
	var edges []string
	if len(o.Top) > 0 {
		edges = append(edges, "top")
	}
	if len(o.Bottom) > 0 {
		edges = append(edges, "bottom")
	}
	if len(o.Left) > 0 {
		edges = append(edges, "left")
	}
	if len(o.Right) > 0 {
		edges = append(edges, "right")
	}
	if len(edges) == 0 {
		return "none"
	}
	return strings.Join(edges, "+")
}
