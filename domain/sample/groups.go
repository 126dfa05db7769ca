package sample

import (
	"fmt"
	"sort"

	"hypotest/domain/core"
)

// Group is a labelled sub-sample produced by splitting an observation
// vector on a membership vector.
type Group struct {
	Label  string
	Values Sample
}

// SplitGroups partitions values by the group label at the same index.
// Labels are returned in first-appearance order within each group but the
// groups themselves are sorted by label so the split is deterministic.
func SplitGroups(values []float64, labels []string) ([]Group, error) {
	if len(values) != len(labels) {
		return nil, core.NewShapeMismatchError("group vector", len(values), len(labels))
	}
	if len(values) == 0 {
		return nil, core.NewInsufficientDataError("grouped sample", 0, 1)
	}

	byLabel := make(map[string][]float64)
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], values[i])
	}

	keys := make([]string, 0, len(byLabel))
	for l := range byLabel {
		keys = append(keys, l)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, l := range keys {
		groups = append(groups, Group{Label: l, Values: Sample(byLabel[l])})
	}
	return groups, nil
}

// SplitTwoGroups splits values into exactly two groups, as required by the
// two-sample tests. More or fewer than two distinct labels is an error.
func SplitTwoGroups(values []float64, labels []string) (Group, Group, error) {
	groups, err := SplitGroups(values, labels)
	if err != nil {
		return Group{}, Group{}, err
	}
	if len(groups) != 2 {
		return Group{}, Group{}, fmt.Errorf("%w: group vector has %d distinct labels, need exactly 2",
			core.ErrShapeMismatch, len(groups))
	}
	return groups[0], groups[1], nil
}
