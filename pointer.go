package jsonforms

import (
	"net/url"
	"strconv"
	"strings"
)

// Resolve walks a JSON Pointer from root to a node. An empty pointer or "/"
// addresses root itself. Object tokens index the full schema-declared child
// set regardless of current availability. A token that indexes an array
// resolves straight to that item's inner field; the item wrapper is never
// addressable and no extra token is consumed for it.
func Resolve(root Node, pointer string) (Node, error) {
	if pointer == "" || pointer == "/" {
		return root, nil
	}
	cur := root
	for _, raw := range strings.Split(pointer, "/") {
		if raw == "" {
			continue
		}
		token, err := decodeToken(raw)
		if err != nil {
			return nil, &PointerError{Pointer: pointer, Message: "bad token " + raw}
		}
		if it, ok := cur.(*ArrayItem); ok {
			cur = it.inner
		}
		switch v := cur.(type) {
		case *ObjectGroup:
			child, ok := v.children[token]
			if !ok {
				return nil, &PointerError{Pointer: pointer, Message: "no field " + token}
			}
			cur = child
		case *ArrayList:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(v.items) {
				return nil, &PointerError{Pointer: pointer, Message: "no item " + token}
			}
			cur = v.items[idx].inner
		default:
			return nil, &PointerError{Pointer: pointer, Message: token + " is not inside a container"}
		}
	}
	return cur, nil
}

// decodeToken percent-decodes a reference token and unescapes the RFC 6901
// sequences, ~1 before ~0.
func decodeToken(raw string) (string, error) {
	s, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s, nil
}
