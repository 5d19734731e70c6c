package category

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(id, name string, parent *string, sortOrder int) Category {
	return Category{
		ID:        id,
		Name:      name,
		Slug:      strings.ToLower(name),
		ParentID:  parent,
		SortOrder: sortOrder,
		Color:     DefaultColor,
	}
}

func ptr(s string) *string { return &s }

func countNodes(nodes []*Node) int {
	n := len(nodes)
	for _, c := range nodes {
		n += countNodes(c.Children)
	}
	return n
}

func ids(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuildTree_Scenarios(t *testing.T) {
	t.Run("Parent with two children", func(t *testing.T) {
		forest := BuildTree([]Category{
			cat("a", "Tech", nil, 0),
			cat("b", "Web", ptr("a"), 0),
			cat("c", "AI", ptr("a"), 1),
		})

		require.Len(t, forest, 1)
		assert.Equal(t, "a", forest[0].ID)
		assert.Equal(t, []string{"b", "c"}, ids(forest[0].Children))
		assert.Empty(t, forest[0].Children[0].Children)
		assert.NotNil(t, forest[0].Children[0].Children)
	})

	t.Run("Orphan becomes root", func(t *testing.T) {
		forest := BuildTree([]Category{cat("x", "Orphan", ptr("missing"), 0)})

		require.Len(t, forest, 1)
		assert.Equal(t, "x", forest[0].ID)
		assert.NotNil(t, forest[0].Children)
		assert.Empty(t, forest[0].Children)
	})

	t.Run("Empty input", func(t *testing.T) {
		forest := BuildTree([]Category{})
		assert.NotNil(t, forest)
		assert.Empty(t, forest)

		assert.NotNil(t, BuildTree(nil))
	})

	t.Run("Equal sort order falls back to name", func(t *testing.T) {
		forest := BuildTree([]Category{
			cat("z", "Zebra", nil, 5),
			cat("a", "Apple", nil, 5),
		})
		assert.Equal(t, []string{"a", "z"}, ids(forest))
	})

	t.Run("Three level chain", func(t *testing.T) {
		forest := BuildTree([]Category{
			cat("C", "C", ptr("B"), 0),
			cat("A", "A", nil, 0),
			cat("B", "B", ptr("A"), 0),
		})

		require.Len(t, forest, 1)
		a := forest[0]
		assert.Equal(t, "A", a.ID)
		require.Len(t, a.Children, 1)
		b := a.Children[0]
		assert.Equal(t, "B", b.ID)
		require.Len(t, b.Children, 1)
		assert.Equal(t, "C", b.Children[0].ID)
		assert.Empty(t, b.Children[0].Children)
	})
}

func TestBuildTree_Properties(t *testing.T) {
	input := []Category{
		cat("1", "News", nil, 2),
		cat("2", "Go", ptr("5"), 1),
		cat("3", "Rust", ptr("5"), 1),
		cat("4", "Ghost", ptr("nope"), 0),
		cat("5", "Programming", nil, 0),
		cat("6", "Concurrency", ptr("2"), 0),
		cat("7", "Empty parent", ptr(""), 2),
		cat("8", "Archive", nil, 2),
	}

	forest := BuildTree(input)

	t.Run("Completeness", func(t *testing.T) {
		assert.Equal(t, len(input), countNodes(forest))

		seen := map[string]int{}
		for _, n := range Flatten(forest) {
			seen[n.ID]++
		}
		for _, c := range input {
			assert.Equal(t, 1, seen[c.ID], "category %s", c.ID)
		}
	})

	t.Run("Root assignment", func(t *testing.T) {
		roots := ids(forest)
		assert.ElementsMatch(t, []string{"1", "4", "5", "7", "8"}, roots)
	})

	t.Run("Parent attachment", func(t *testing.T) {
		var programming *Node
		for _, n := range forest {
			if n.ID == "5" {
				programming = n
			}
		}
		require.NotNil(t, programming)
		assert.Equal(t, []string{"2", "3"}, ids(programming.Children))
		assert.Equal(t, []string{"6"}, ids(programming.Children[0].Children))
	})

	t.Run("Sort order", func(t *testing.T) {
		assert.Equal(t, []string{"4", "5", "8", "7", "1"}, ids(forest))

		var check func(nodes []*Node)
		check = func(nodes []*Node) {
			for i := 1; i < len(nodes); i++ {
				prev, cur := nodes[i-1], nodes[i]
				assert.LessOrEqual(t, prev.SortOrder, cur.SortOrder)
			}
			for _, n := range nodes {
				check(n.Children)
			}
		}
		check(forest)
	})

	t.Run("Purity", func(t *testing.T) {
		snapshot := make([]Category, len(input))
		copy(snapshot, input)

		again := BuildTree(input)
		assert.Equal(t, forest, again)
		assert.Equal(t, snapshot, input)
		assert.Equal(t, "5", *input[1].ParentID)
	})

	t.Run("Output does not alias input", func(t *testing.T) {
		out := BuildTree(input)
		*out[1].Children[0].ParentID = "changed"
		assert.Equal(t, "5", *input[1].ParentID)
	})
}

func TestBuildTree_Anomalies(t *testing.T) {
	t.Run("Self reference is a root", func(t *testing.T) {
		forest := BuildTree([]Category{cat("a", "Loop", ptr("a"), 0)})
		require.Len(t, forest, 1)
		assert.Equal(t, "a", forest[0].ID)
		assert.Empty(t, forest[0].Children)
	})

	t.Run("Two node cycle keeps both", func(t *testing.T) {
		forest := BuildTree([]Category{
			cat("a", "Alpha", ptr("b"), 1),
			cat("b", "Beta", ptr("a"), 0),
		})
		require.Len(t, forest, 1)
		assert.Equal(t, "b", forest[0].ID)
		assert.Equal(t, []string{"a"}, ids(forest[0].Children))
		assert.Equal(t, 2, countNodes(forest))
	})

	t.Run("Cycle with hanging branch", func(t *testing.T) {
		forest := BuildTree([]Category{
			cat("a", "A", ptr("c"), 0),
			cat("b", "B", ptr("a"), 0),
			cat("c", "C", ptr("b"), 0),
			cat("d", "D", ptr("b"), 0),
			cat("r", "Root", nil, 1),
		})
		assert.Equal(t, 5, countNodes(forest))
		assert.Equal(t, []string{"a", "r"}, ids(forest))
		assert.Equal(t, []string{"b"}, ids(forest[0].Children))
		assert.Equal(t, []string{"c", "d"}, ids(forest[0].Children[0].Children))
	})

	t.Run("Duplicate ids are both kept", func(t *testing.T) {
		forest := BuildTree([]Category{
			cat("p", "Parent", nil, 0),
			cat("x", "First", nil, 1),
			cat("x", "Second", ptr("p"), 0),
			cat("y", "Child of x", ptr("x"), 0),
		})
		assert.Equal(t, 4, countNodes(forest))
		assert.Equal(t, []string{"p", "x"}, ids(forest))
		second := forest[0].Children[0]
		assert.Equal(t, "Second", second.Name)
		assert.Equal(t, []string{"y"}, ids(second.Children))
	})

	t.Run("Large chain stays intact", func(t *testing.T) {
		var input []Category
		for i := 0; i < 300; i++ {
			var parent *string
			if i > 0 {
				parent = ptr(fmt.Sprintf("n%d", i-1))
			}
			input = append(input, cat(fmt.Sprintf("n%d", i), "node", parent, 0))
		}
		forest := BuildTree(input)
		require.Len(t, forest, 1)
		assert.Equal(t, 300, countNodes(forest))
	})
}

func TestFlatten(t *testing.T) {
	forest := BuildTree([]Category{
		cat("a", "Tech", nil, 0),
		cat("b", "Web", ptr("a"), 0),
		cat("c", "CSS", ptr("b"), 0),
		cat("d", "Life", nil, 1),
	})

	flat := Flatten(forest)
	require.Len(t, flat, 4)

	got := make([]string, 0, len(flat))
	for _, n := range flat {
		got = append(got, fmt.Sprintf("%s:%d", n.ID, n.Depth))
	}
	assert.Equal(t, []string{"a:0", "b:1", "c:2", "d:0"}, got)

	assert.Equal(t, []FlatNode{}, Flatten(nil))
}

func TestParentOptions(t *testing.T) {
	forest := BuildTree([]Category{
		cat("a", "Tech", nil, 0),
		cat("b", "Web", ptr("a"), 0),
		cat("c", "CSS", ptr("b"), 0),
		cat("d", "Life", nil, 1),
	})

	t.Run("Excludes self and descendants", func(t *testing.T) {
		opts := ParentOptions(forest, "b")
		got := make([]string, 0, len(opts))
		for _, o := range opts {
			got = append(got, o.ID)
		}
		assert.Equal(t, []string{"a", "d"}, got)
	})

	t.Run("No exclusion for new category", func(t *testing.T) {
		assert.Len(t, ParentOptions(forest, ""), 4)
	})

	t.Run("Unknown id excludes nothing", func(t *testing.T) {
		assert.Len(t, ParentOptions(forest, "zzz"), 4)
	})
}

func TestFindCycles(t *testing.T) {
	t.Run("Clean forest", func(t *testing.T) {
		assert.Empty(t, FindCycles([]Category{
			cat("a", "A", nil, 0),
			cat("b", "B", ptr("a"), 0),
			cat("c", "C", ptr("gone"), 0),
		}))
	})

	t.Run("Reports deep and self cycles", func(t *testing.T) {
		cycles := FindCycles([]Category{
			cat("a", "A", ptr("b"), 0),
			cat("b", "B", ptr("c"), 0),
			cat("c", "C", ptr("a"), 0),
			cat("s", "Self", ptr("s"), 0),
			cat("t", "Tail", ptr("a"), 0),
		})
		require.Len(t, cycles, 2)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, cycles[0])
		assert.Equal(t, []string{"s"}, cycles[1])
	})
}

func TestWouldCreateCycle(t *testing.T) {
	flat := []Category{
		cat("a", "A", nil, 0),
		cat("b", "B", ptr("a"), 0),
		cat("c", "C", ptr("b"), 0),
		cat("d", "D", nil, 0),
	}

	tests := []struct {
		name     string
		id       string
		parent   string
		expected bool
	}{
		{"Self", "a", "a", true},
		{"Direct child", "a", "b", true},
		{"Grandchild", "a", "c", true},
		{"Sibling tree", "a", "d", false},
		{"Move leaf up", "c", "a", false},
		{"Clear parent", "c", "", false},
		{"Unknown parent", "c", "missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WouldCreateCycle(flat, tt.id, tt.parent))
		})
	}

	t.Run("Existing cycle elsewhere terminates", func(t *testing.T) {
		looped := append([]Category{
			cat("x", "X", ptr("y"), 0),
			cat("y", "Y", ptr("x"), 0),
		}, flat...)
		assert.False(t, WouldCreateCycle(looped, "d", "x"))
	})
}
