// Package taxonomy derives the subject → unit → files folder tree from the flat
// record collection. The tree is disposable: it is rebuilt from scratch after
// every mutation and node ids depend only on the subject and unit strings.
package taxonomy

import (
	"strings"

	"campus-share-be/internal/entity"
)

type NodeKind string

const (
	KindRoot    NodeKind = "root"
	KindSubject NodeKind = "subject"
	KindUnit    NodeKind = "unit"
)

const (
	RootId   = "root"
	RootName = "All Files"
)

type FolderNode struct {
	Kind     NodeKind
	Id       string
	Name     string
	Children []*FolderNode
	Files    []entity.ContentRecord // only set on unit nodes
}

// Child returns the direct child with the given id, or nil.
func (n *FolderNode) Child(id string) *FolderNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Id == id {
			return c
		}
	}
	return nil
}

// FileCount counts every record below the node.
func (n *FolderNode) FileCount() int {
	if n == nil {
		return 0
	}
	total := len(n.Files)
	for _, c := range n.Children {
		total += c.FileCount()
	}
	return total
}

// Slug lowercases s and joins whitespace runs with "-".
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func UnitLabel(unit string) string {
	return "Unit " + unit
}

func SubjectId(subject string) string {
	return "subject-" + Slug(subject)
}

func UnitId(subject, unit string) string {
	return "unit-" + Slug(subject) + "-" + Slug(UnitLabel(unit))
}

// Build groups records by subject, then by unit, both in order of first
// occurrence. Units are not sorted numerically.
func Build(records []entity.ContentRecord) *FolderNode {
	root := &FolderNode{Kind: KindRoot, Id: RootId, Name: RootName, Children: []*FolderNode{}}

	type subjectEntry struct {
		node  *FolderNode
		units map[string]*FolderNode
	}
	subjects := make(map[string]*subjectEntry)

	for _, rec := range records {
		sid := SubjectId(rec.Subject)
		subject, ok := subjects[sid]
		if !ok {
			subject = &subjectEntry{
				node:  &FolderNode{Kind: KindSubject, Id: sid, Name: rec.Subject, Children: []*FolderNode{}},
				units: make(map[string]*FolderNode),
			}
			subjects[sid] = subject
			root.Children = append(root.Children, subject.node)
		}

		// units are keyed within their subject so a unit id that happens to
		// match another subject's never pulls records across subjects
		label := UnitLabel(rec.Unit)
		unit, ok := subject.units[Slug(label)]
		if !ok {
			unit = &FolderNode{Kind: KindUnit, Id: UnitId(rec.Subject, rec.Unit), Name: label, Files: []entity.ContentRecord{}}
			subject.units[Slug(label)] = unit
			subject.node.Children = append(subject.node.Children, unit)
		}
		unit.Files = append(unit.Files, rec.Clone())
	}

	return root
}

// Subjects lists distinct subjects in order of first occurrence.
func Subjects(records []entity.ContentRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, rec := range records {
		if _, ok := seen[rec.Subject]; ok {
			continue
		}
		seen[rec.Subject] = struct{}{}
		out = append(out, rec.Subject)
	}
	return out
}
