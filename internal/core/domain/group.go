package domain

// SourceGroup is a run of results that share a source label.
type SourceGroup struct {
	Source    string     `json:"source"`
	Resources []Resource `json:"resources"`
}

// GroupBySource groups ranked results by source label. Groups appear in the
// order of their best result; rank order is kept inside each group.
func GroupBySource(resources []Resource) []SourceGroup {
	index := make(map[string]int)
	var groups []SourceGroup
	for _, res := range resources {
		i, ok := index[res.Source]
		if !ok {
			i = len(groups)
			index[res.Source] = i
			groups = append(groups, SourceGroup{Source: res.Source})
		}
		groups[i].Resources = append(groups[i].Resources, res)
	}
	return groups
}
