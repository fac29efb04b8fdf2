// Package navigation tracks where a user is in the folder tree.
//
// The breadcrumb stack always starts at the root and its last element is the
// current folder. After the tree is rebuilt, Reconcile re-resolves the stack
// by id against the new root: if every link still exists the stack keeps its
// depth with the fresh node objects, otherwise it collapses to the root.
package navigation

import (
	"campus-share-be/pkg/catalogerr"
	"campus-share-be/pkg/taxonomy"
)

type Navigator struct {
	breadcrumbs []*taxonomy.FolderNode
}

func NewNavigator(root *taxonomy.FolderNode) *Navigator {
	return &Navigator{breadcrumbs: []*taxonomy.FolderNode{root}}
}

func (n *Navigator) Current() *taxonomy.FolderNode {
	return n.breadcrumbs[len(n.breadcrumbs)-1]
}

// Breadcrumbs returns a copy of the stack.
func (n *Navigator) Breadcrumbs() []*taxonomy.FolderNode {
	out := make([]*taxonomy.FolderNode, len(n.breadcrumbs))
	copy(out, n.breadcrumbs)
	return out
}

// NavigateInto makes node current. If node is already on the stack the stack
// is cut back to it, otherwise node is pushed.
func (n *Navigator) NavigateInto(node *taxonomy.FolderNode) {
	if node == nil {
		return
	}
	for i, crumb := range n.breadcrumbs {
		if crumb.Id == node.Id {
			n.breadcrumbs = n.breadcrumbs[:i+1]
			return
		}
	}
	n.breadcrumbs = append(n.breadcrumbs, node)
}

// NavigateIntoId resolves id among the current folder's children (or the
// stack itself) and navigates there.
func (n *Navigator) NavigateIntoId(id string) error {
	for _, crumb := range n.breadcrumbs {
		if crumb.Id == id {
			n.NavigateInto(crumb)
			return nil
		}
	}
	child := n.Current().Child(id)
	if child == nil {
		return catalogerr.ErrNotFound
	}
	n.NavigateInto(child)
	return nil
}

// NavigateToBreadcrumb truncates the stack to [0..index]. Out of range
// indexes leave the state untouched.
func (n *Navigator) NavigateToBreadcrumb(index int) error {
	if index < 0 || index >= len(n.breadcrumbs) {
		return catalogerr.ErrNavigationOutOfBounds
	}
	n.breadcrumbs = n.breadcrumbs[:index+1]
	return nil
}

// Reconcile walks the previous breadcrumb ids down newRoot. The old tree is
// never consulted beyond its ids.
func (n *Navigator) Reconcile(newRoot *taxonomy.FolderNode) {
	fresh := make([]*taxonomy.FolderNode, 1, len(n.breadcrumbs))
	fresh[0] = newRoot

	node := newRoot
	for _, crumb := range n.breadcrumbs[1:] {
		node = node.Child(crumb.Id)
		if node == nil {
			n.breadcrumbs = []*taxonomy.FolderNode{newRoot}
			return
		}
		fresh = append(fresh, node)
	}
	n.breadcrumbs = fresh
}

// Path returns the breadcrumb ids from root to current.
func (n *Navigator) Path() []string {
	ids := make([]string, len(n.breadcrumbs))
	for i, crumb := range n.breadcrumbs {
		ids[i] = crumb.Id
	}
	return ids
}
