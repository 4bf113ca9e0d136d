package jsonforms

// GetOpt configures value extraction.
type GetOpt struct {
	// KeepNulls keeps object entries whose value resolved to null instead of
	// pruning them from the mapping.
	KeepNulls bool
}

// SetOpt configures value injection.
type SetOpt struct {
	// ClearMissing also sets children whose key is absent from an incoming
	// mapping (to null), clearing them. By default absent keys are skipped.
	ClearMissing bool
}

// GetValue extracts the JSON value of the subtree rooted at n. Object entries
// that resolve to null are pruned unless opt.KeepNulls; array positions are
// never pruned because dropping them would corrupt indices. Fails with
// NotRenderedError before editors are attached or after n was detached.
func GetValue(n Node, opt GetOpt) (any, error) {
	if err := renderedCheck(n); err != nil {
		return nil, err
	}
	switch v := n.(type) {
	case *LeafField:
		return v.getValue()
	case *ObjectGroup:
		out := map[string]any{}
		for _, name := range v.order {
			if !v.active[name] {
				continue
			}
			child := v.children[name]
			if child.Schema().ShowOnly {
				continue
			}
			cv, err := GetValue(child, opt)
			if err != nil {
				return nil, err
			}
			if cv == nil && !opt.KeepNulls {
				continue
			}
			out[name] = cv
		}
		return out, nil
	case *ArrayList:
		out := make([]any, 0, len(v.items))
		for _, it := range v.items {
			iv, err := GetValue(it, opt)
			if err != nil {
				return nil, err
			}
			out = append(out, iv)
		}
		return out, nil
	case *ArrayItem:
		return GetValue(v.inner, opt)
	default:
		return nil, nil
	}
}

// SetValue injects value into the subtree rooted at n. Object application
// walks all schema-declared children, active or not, because the applied
// values may themselves change what becomes active; one structural
// re-evaluation runs afterwards. Array application discards current items and
// rebuilds them, so item identity is not preserved across SetValue.
func SetValue(n Node, value any, opt SetOpt) error {
	if err := renderedCheck(n); err != nil {
		return err
	}
	switch v := n.(type) {
	case *LeafField:
		return v.setValue(value)
	case *ObjectGroup:
		defer v.Reevaluate("")
		m, _ := value.(map[string]any)
		for _, name := range v.order {
			cv, present := m[name]
			if !present && !opt.ClearMissing {
				continue
			}
			if err := SetValue(v.children[name], cv, opt); err != nil {
				return err
			}
		}
		return nil
	case *ArrayList:
		seq, _ := value.([]any)
		return v.rebuild(seq, opt)
	case *ArrayItem:
		return SetValue(v.inner, value, opt)
	default:
		return nil
	}
}

func renderedCheck(n Node) error {
	b := n.base()
	if b.gone || b.tree == nil || !b.tree.attached {
		return &NotRenderedError{Path: n.Path()}
	}
	return nil
}

// getValue reads the raw editor value, coerces null/empty-string to null and
// applies the deserialize hook when one is bound.
func (f *LeafField) getValue() (any, error) {
	if f.editor == nil {
		return nil, &NotRenderedError{Path: f.Path()}
	}
	raw := f.editor.Value()
	if raw == "" {
		raw = nil
	}
	if f.schema.Deserialize != nil {
		return f.schema.Deserialize(raw)
	}
	return raw, nil
}

// setValue applies the serialize hook when one is bound and hands the result
// to the editor. The editor's own change notification drives bubbling.
func (f *LeafField) setValue(value any) error {
	if f.editor == nil {
		return &NotRenderedError{Path: f.Path()}
	}
	if f.schema.Serialize != nil {
		v, err := f.schema.Serialize(value)
		if err != nil {
			return err
		}
		value = v
	}
	return f.editor.SetValue(value)
}

// rebuild implements array SetValue: drop every item, then append and fill
// one item per incoming element. A nil sequence yields an empty list.
func (l *ArrayList) rebuild(seq []any, opt SetOpt) error {
	for len(l.items) > 0 {
		if err := l.Remove(l.items[len(l.items)-1]); err != nil {
			return err
		}
	}
	for _, el := range seq {
		item, err := l.Insert(l.Len())
		if err != nil {
			return err
		}
		if err := SetValue(item, el, opt); err != nil {
			return err
		}
	}
	return nil
}
