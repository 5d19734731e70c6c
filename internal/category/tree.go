package category

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// slot is one arena entry. parent and children hold arena indexes.
type slot struct {
	cat      Category
	pos      int
	parent   int
	children []int
}

type arena struct {
	slots []slot
	index map[string]int
	names *collate.Collator
}

// newArena copies every record into its own slot. For duplicate ids the
// last record wins the id lookup.
func newArena(flat []Category) *arena {
	a := &arena{
		slots: make([]slot, len(flat)),
		index: make(map[string]int, len(flat)),
	}
	for i, c := range flat {
		a.slots[i] = slot{cat: cloneCategory(c), pos: i, parent: -1}
		a.index[c.ID] = i
	}
	return a
}

// link resolves every parent reference to an arena index. Missing parents
// leave the slot as a root. Self references are kept only when keepSelf
// is set, which FindCycles uses to report them.
func (a *arena) link(keepSelf bool) {
	for i := range a.slots {
		a.slots[i].parent = -1

		pid := a.slots[i].cat.ParentID
		if pid == nil || *pid == "" {
			continue
		}
		p, ok := a.index[*pid]
		if !ok || (p == i && !keepSelf) {
			continue
		}
		a.slots[i].parent = p
	}
}

// walkCycles follows parent links from every slot and calls visit once for
// each cycle, with the cycle members in walk order.
func (a *arena) walkCycles(visit func(cycle []int)) {
	const (
		unseen = iota
		onPath
		done
	)

	state := make([]int, len(a.slots))
	path := make([]int, 0, 8)

	for start := range a.slots {
		path = path[:0]
		cur := start
		for cur >= 0 && state[cur] == unseen {
			state[cur] = onPath
			path = append(path, cur)
			cur = a.slots[cur].parent
		}

		if cur >= 0 && state[cur] == onPath {
			for k, n := range path {
				if n == cur {
					visit(path[k:])
					break
				}
			}
		}

		for _, n := range path {
			state[n] = done
		}
	}
}

// breakCycles promotes the lowest sorting member of every cycle to a root
// so that each slot ends up reachable from exactly one root.
func (a *arena) breakCycles() {
	a.walkCycles(func(cycle []int) {
		lowest := cycle[0]
		for _, n := range cycle[1:] {
			if a.less(n, lowest) {
				lowest = n
			}
		}
		a.slots[lowest].parent = -1
	})
}

func (a *arena) less(i, j int) bool {
	x, y := &a.slots[i], &a.slots[j]
	if x.cat.SortOrder != y.cat.SortOrder {
		return x.cat.SortOrder < y.cat.SortOrder
	}
	if a.names != nil {
		if c := a.names.CompareString(x.cat.Name, y.cat.Name); c != 0 {
			return c < 0
		}
	}
	if x.cat.Name != y.cat.Name {
		return x.cat.Name < y.cat.Name
	}
	if x.cat.ID != y.cat.ID {
		return x.cat.ID < y.cat.ID
	}
	return x.pos < y.pos
}

func (a *arena) build(level []int) []*Node {
	sort.Slice(level, func(i, j int) bool { return a.less(level[i], level[j]) })

	nodes := make([]*Node, 0, len(level))
	for _, i := range level {
		nodes = append(nodes, &Node{
			Category: a.slots[i].cat,
			Children: a.build(a.slots[i].children),
		})
	}
	return nodes
}

// BuildTree turns a flat category list into a forest sorted by sort order
// and then name at every level. Categories whose parent is missing, or who
// point at themselves, become roots. Parent cycles are broken by promoting
// their lowest sorting member, so every input record appears exactly once.
// The input is not modified.
func BuildTree(flat []Category) []*Node {
	a := newArena(flat)
	a.names = collate.New(language.Und)
	a.link(false)
	a.breakCycles()

	var roots []int
	for i := range a.slots {
		if p := a.slots[i].parent; p >= 0 {
			a.slots[p].children = append(a.slots[p].children, i)
		} else {
			roots = append(roots, i)
		}
	}

	return a.build(roots)
}

// Flatten lists the forest depth first, parents before children.
func Flatten(forest []*Node) []FlatNode {
	var out []FlatNode
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			out = append(out, FlatNode{Category: n.Category, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)

	if out == nil {
		return []FlatNode{}
	}
	return out
}

// ParentOptions returns the categories that may become the parent of
// excludeID: everything except excludeID itself and its descendants.
func ParentOptions(forest []*Node, excludeID string) []FlatNode {
	out := []FlatNode{}
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if excludeID != "" && n.ID == excludeID {
				continue
			}
			out = append(out, FlatNode{Category: n.Category, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)
	return out
}

// FindCycles reports every parent cycle in flat as a list of ids in walk
// order. A category that names itself as parent is a cycle of one.
func FindCycles(flat []Category) [][]string {
	a := newArena(flat)
	a.link(true)

	var cycles [][]string
	a.walkCycles(func(cycle []int) {
		ids := make([]string, 0, len(cycle))
		for _, n := range cycle {
			ids = append(ids, a.slots[n].cat.ID)
		}
		cycles = append(cycles, ids)
	})
	return cycles
}

// WouldCreateCycle reports whether giving id the parent newParentID would
// make id its own ancestor.
func WouldCreateCycle(flat []Category, id, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	if newParentID == id {
		return true
	}

	parents := make(map[string]string, len(flat))
	for _, c := range flat {
		if c.ParentID != nil {
			parents[c.ID] = *c.ParentID
		} else {
			delete(parents, c.ID)
		}
	}

	seen := make(map[string]bool, len(parents))
	for cur := newParentID; cur != ""; cur = parents[cur] {
		if cur == id {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}

func cloneCategory(c Category) Category {
	c.Description = cloneString(c.Description)
	c.ParentID = cloneString(c.ParentID)
	c.Icon = cloneString(c.Icon)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
