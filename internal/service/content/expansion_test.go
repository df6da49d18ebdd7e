package content

import (
	"reflect"
	"testing"

	models "learnhub/internal/domain/models/content"
)

func TestExpandedSet(t *testing.T) {
	set := NewExpandedSet("b", "a", "b")

	if set.Len() != 2 {
		t.Fatalf("expected 2 ids, got %d", set.Len())
	}
	if !reflect.DeepEqual(set.IDs(), []string{"a", "b"}) {
		t.Errorf("expected sorted ids [a b], got %v", set.IDs())
	}

	if expanded := set.Toggle("a"); expanded {
		t.Error("toggling an expanded id should collapse it")
	}
	if set.IsExpanded("a") {
		t.Error("a should be collapsed")
	}
	if expanded := set.Toggle("a"); !expanded {
		t.Error("toggling a collapsed id should expand it")
	}

	set.Collapse("missing")
	set.Collapse("b")
	if set.IsExpanded("b") {
		t.Error("b should be collapsed")
	}

	if ids := NewExpandedSet().IDs(); ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil ids, got %#v", ids)
	}
}

func TestExpandAll(t *testing.T) {
	roots := BuildHierarchy(sampleItems())
	set := ExpandAll(roots)

	want := []string{
		"A",
		"A-Math",
		"A-Math-Algebra",
		"A-Math-Algebra-Linear",
		"A-Science",
		"A-Science-Physics",
		"A-Science-Physics-Motion",
	}
	if !reflect.DeepEqual(set.IDs(), want) {
		t.Errorf("expected %v, got %v", want, set.IDs())
	}
}

func TestExpandedSet_Prune(t *testing.T) {
	roots := BuildHierarchy(sampleItems())
	set := NewExpandedSet("A", "A-Math", "A-Gone", "A-Math-Algebra-Linear-v1")

	removed := set.Prune(roots)

	if removed != 2 {
		t.Errorf("expected 2 ids pruned, got %d", removed)
	}
	if !reflect.DeepEqual(set.IDs(), []string{"A", "A-Math"}) {
		t.Errorf("expected [A A-Math], got %v", set.IDs())
	}
}

func TestVisibleRows(t *testing.T) {
	roots := BuildHierarchy(sampleItems())

	tests := []struct {
		name     string
		expanded *ExpandedSet
		want     []string
	}{
		{
			name:     "collapsed",
			expanded: NewExpandedSet(),
			want:     []string{"A"},
		},
		{
			name:     "institute open",
			expanded: NewExpandedSet("A"),
			want:     []string{"A", "Math", "Science"},
		},
		{
			name:     "child open under closed parent",
			expanded: NewExpandedSet("A-Math"),
			want:     []string{"A"},
		},
		{
			name:     "one branch open",
			expanded: NewExpandedSet("A", "A-Math", "A-Math-Algebra", "A-Math-Algebra-Linear"),
			want:     []string{"A", "Math", "Algebra", "Linear", "Video 1", "Video 2", "Science"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := VisibleRows(roots, tt.expanded)
			got := make([]string, len(rows))
			for i, row := range rows {
				got[i] = row.Node.Name
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVisibleRows_RowState(t *testing.T) {
	roots := BuildHierarchy(sampleItems())
	rows := VisibleRows(roots, NewExpandedSet("A", "A-Math"))

	want := []VisibleRow{
		{Node: roots[0], Depth: 0, IsLast: true, Expanded: true},
		{Node: roots[0].Children[0], Depth: 1, IsLast: false, Expanded: true},
		{Node: roots[0].Children[0].Children[0], Depth: 2, IsLast: true, Expanded: false},
		{Node: roots[0].Children[1], Depth: 1, IsLast: true, Expanded: false},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("unexpected rows:\n got: %+v\nwant: %+v", rows, want)
	}
}

func TestVisibleRows_Empty(t *testing.T) {
	rows := VisibleRows([]*models.TreeNode{}, NewExpandedSet())
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil rows, got %#v", rows)
	}
}
