package cyclehighways

// FilterByAgentType returns copy of the network holding only links which allow given agent type
// and nodes touched by those links. Source network is not modified
func FilterByAgentType(net *Network, agentType AgentType) *Network {
	filtered := net.Clone()
	for _, link := range filtered.Links() {
		if !link.Allows(agentType) {
			// Link has been listed by the network itself
			_ = filtered.RemoveLink(link.ID)
		}
	}
	// Nodes must be pruned after links: node survives only if some link survived next to it
	for _, node := range filtered.Nodes() {
		if node.Degree() == 0 {
			_ = filtered.RemoveNode(node.ID)
		}
	}
	return filtered
}

// ExtractBikeNetwork returns sub-network of links allowing mode 'bike'.
// Use FilterByAgentType when bike mode is named differently
func ExtractBikeNetwork(net *Network) *Network {
	return FilterByAgentType(net, AGENT_BIKE)
}
