package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/mosaic/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of a session's adjacency
// graph. Clusters become subgraphs, merge edges undirected links, and
// unclustered clients standalone nodes with a distinct style.
func GenerateMermaid(state *domain.State) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	clusterIDs := make([]domain.ClusterID, 0, len(state.Clusters))
	for id := range state.Clusters {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Slice(clusterIDs, func(i, j int) bool { return clusterIDs[i] < clusterIDs[j] })

	for _, clusterID := range clusterIDs {
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"cluster %s\"]\n", sanitizeMermaidID(string(clusterID)), shortID(string(clusterID))))
		for _, clientID := range state.Members(clusterID) {
			sb.WriteString("    " + clientNode(state.Clients[clientID]))
		}
		sb.WriteString("    end\n")
	}

	var detached []domain.ClientID
	for id, client := range state.Clients {
		if client.ClusterID == "" {
			detached = append(detached, id)
		}
	}
	sort.Slice(detached, func(i, j int) bool { return detached[i] < detached[j] })
	for _, id := range detached {
		sb.WriteString(clientNode(state.Clients[id]))
	}

	// Adjacency is symmetric; emit each merge edge once.
	clientIDs := make([]domain.ClientID, 0, len(state.Clients))
	for id := range state.Clients {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })
	for _, id := range clientIDs {
		neighbors := make([]domain.ClientID, 0, len(state.Clients[id].Adjacent))
		for nid := range state.Clients[id].Adjacent {
			if id < nid {
				neighbors = append(neighbors, nid)
			}
		}
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
		for _, nid := range neighbors {
			sb.WriteString(fmt.Sprintf("    %s --- %s\n", sanitizeMermaidID(string(id)), sanitizeMermaidID(string(nid))))
		}
	}

	if len(detached) > 0 {
		sb.WriteString("\n    classDef detached fill:#fef3c7,stroke:#b45309,stroke-dasharray: 5 5,color:#000;\n")
		for _, id := range detached {
			sb.WriteString(fmt.Sprintf("    class %s detached;\n", sanitizeMermaidID(string(id))))
		}
	}

	return sb.String()
}

func clientNode(client domain.Client) string {
	label := fmt.Sprintf("%s <br/> %.0fx%.0f", client.ID, client.Size.Width, client.Size.Height)
	return fmt.Sprintf("    %s[\"%s\"]\n", sanitizeMermaidID(string(client.ID)), label)
}

// shortID trims UUID-style cluster ids for readable subgraph titles.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
