package jsonforms

import "strconv"

// Insert constructs a new item bound to the list's item schema and splices it
// in at index; any out-of-range index appends. Item indices and path prefixes
// are re-derived before the structural change notification fires, so the
// items[i].Index() == i invariant holds whenever other code can observe the
// list. When the tree is attached, the new subtree gets its editors and one
// structural availability pass immediately, so groups whose conditions are
// already satisfied by editor defaults start active.
func (l *ArrayList) Insert(index int) (*ArrayItem, error) {
	if l.gone {
		return nil, &NotRenderedError{Path: l.Path()}
	}
	if index < 0 || index > len(l.items) {
		index = len(l.items)
	}
	item := &ArrayItem{
		baseNode: baseNode{
			name:       strconv.Itoa(index),
			pathPrefix: l.Path(),
			schema:     l.itemSchema,
			parent:     l,
			tree:       l.tree,
		},
		index: index,
	}
	inner, err := compileNode(l.tree, l.itemSchema, "", item.Path(), item, "")
	if err != nil {
		return nil, err
	}
	item.inner = inner
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = item
	l.reindex()
	if l.tree.attached {
		if err := attachNode(l.tree, item); err != nil {
			return nil, err
		}
		reevaluateAll(item)
	}
	bubble(l)
	return item, nil
}

// Append inserts at the end.
func (l *ArrayList) Append() (*ArrayItem, error) { return l.Insert(len(l.items)) }

// Remove detaches item and splices it out. The removed subtree keeps no
// parent reference and subsequent value access against it fails with
// NotRenderedError.
func (l *ArrayList) Remove(item *ArrayItem) error {
	if l.gone || item.gone {
		return &NotRenderedError{Path: item.Path()}
	}
	pos := l.position(item)
	if pos < 0 {
		return &NotRenderedError{Path: item.Path()}
	}
	copy(l.items[pos:], l.items[pos+1:])
	l.items = l.items[:len(l.items)-1]
	detachTree(item)
	l.reindex()
	bubble(l)
	return nil
}

// MoveUp swaps item with its predecessor. The first item cannot move up; the
// call is then a no-op and emits no notification.
func (l *ArrayList) MoveUp(item *ArrayItem) error {
	return l.move(item, -1)
}

// MoveDown swaps item with its successor. The last item cannot move down; the
// call is then a no-op and emits no notification.
func (l *ArrayList) MoveDown(item *ArrayItem) error {
	return l.move(item, +1)
}

func (l *ArrayList) move(item *ArrayItem, delta int) error {
	if l.gone || item.gone {
		return &NotRenderedError{Path: item.Path()}
	}
	pos := l.position(item)
	if pos < 0 {
		return &NotRenderedError{Path: item.Path()}
	}
	to := pos + delta
	if to < 0 || to >= len(l.items) {
		return nil
	}
	l.items[pos], l.items[to] = l.items[to], l.items[pos]
	l.reindex()
	bubble(l)
	return nil
}

func (l *ArrayList) position(item *ArrayItem) int {
	for i, it := range l.items {
		if it == item {
			return i
		}
	}
	return -1
}

// reindex re-derives every item's index, name and subtree path prefixes from
// its current position.
func (l *ArrayList) reindex() {
	own := l.Path()
	for i, it := range l.items {
		it.index = i
		it.name = strconv.Itoa(i)
		setPrefix(it, own)
	}
}
