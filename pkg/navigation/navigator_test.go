package navigation

import (
	"testing"

	"campus-share-be/internal/entity"
	"campus-share-be/pkg/catalogerr"
	"campus-share-be/pkg/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	algo  = taxonomy.SubjectId("Algorithms")
	unit1 = taxonomy.UnitId("Algorithms", "1")
	unit2 = taxonomy.UnitId("Algorithms", "2")
)

func sample() []entity.ContentRecord {
	return []entity.ContentRecord{
		{Id: "a", Subject: "Algorithms", Unit: "1"},
		{Id: "b", Subject: "Algorithms", Unit: "2"},
		{Id: "c", Subject: "Physics", Unit: "1"},
	}
}

func TestNewNavigator_StartsAtRoot(t *testing.T) {
	root := taxonomy.Build(nil)
	nav := NewNavigator(root)

	assert.Same(t, root, nav.Current())
	assert.Equal(t, []string{taxonomy.RootId}, nav.Path())
}

func TestNavigateInto_PushAndTruncate(t *testing.T) {
	root := taxonomy.Build(sample())
	nav := NewNavigator(root)

	subject := root.Child(algo)
	nav.NavigateInto(subject)
	nav.NavigateInto(subject.Child(unit1))
	assert.Equal(t, []string{taxonomy.RootId, algo, unit1}, nav.Path())

	// re-clicking an ancestor cuts the stack back to it
	nav.NavigateInto(subject)
	assert.Equal(t, []string{taxonomy.RootId, algo}, nav.Path())
	assert.Same(t, subject, nav.Current())

	nav.NavigateInto(root)
	assert.Equal(t, []string{taxonomy.RootId}, nav.Path())
}

func TestNavigateIntoId(t *testing.T) {
	root := taxonomy.Build(sample())
	nav := NewNavigator(root)

	require.NoError(t, nav.NavigateIntoId(algo))
	require.NoError(t, nav.NavigateIntoId(unit2))
	assert.Equal(t, unit2, nav.Current().Id)

	assert.ErrorIs(t, nav.NavigateIntoId("subject-nope"), catalogerr.ErrNotFound)
	assert.Equal(t, unit2, nav.Current().Id)

	require.NoError(t, nav.NavigateIntoId(taxonomy.RootId))
	assert.Equal(t, []string{taxonomy.RootId}, nav.Path())
}

func TestNavigateToBreadcrumb(t *testing.T) {
	root := taxonomy.Build(sample())
	nav := NewNavigator(root)
	require.NoError(t, nav.NavigateIntoId(algo))
	require.NoError(t, nav.NavigateIntoId(unit1))

	assert.ErrorIs(t, nav.NavigateToBreadcrumb(3), catalogerr.ErrNavigationOutOfBounds)
	assert.ErrorIs(t, nav.NavigateToBreadcrumb(-1), catalogerr.ErrNavigationOutOfBounds)
	assert.Len(t, nav.Breadcrumbs(), 3)

	require.NoError(t, nav.NavigateToBreadcrumb(1))
	assert.Equal(t, algo, nav.Current().Id)
	assert.Len(t, nav.Breadcrumbs(), 2)
}

func TestReconcile_KeepsDepthWhenChainSurvives(t *testing.T) {
	records := sample()
	nav := NewNavigator(taxonomy.Build(records))
	require.NoError(t, nav.NavigateIntoId(algo))
	require.NoError(t, nav.NavigateIntoId(unit1))
	before := nav.Current()

	records = append(records, entity.ContentRecord{Id: "d", Subject: "Algorithms", Unit: "1"})
	newRoot := taxonomy.Build(records)
	nav.Reconcile(newRoot)

	assert.Equal(t, []string{taxonomy.RootId, algo, unit1}, nav.Path())
	assert.Same(t, newRoot, nav.Breadcrumbs()[0])
	assert.NotSame(t, before, nav.Current())
	assert.Len(t, nav.Current().Files, 2)
}

func TestReconcile_ResetsWhenFolderPruned(t *testing.T) {
	records := sample()
	nav := NewNavigator(taxonomy.Build(records))
	require.NoError(t, nav.NavigateIntoId(algo))
	require.NoError(t, nav.NavigateIntoId(unit2))

	// drop the only record in unit 2
	remaining := []entity.ContentRecord{records[0], records[2]}
	newRoot := taxonomy.Build(remaining)
	nav.Reconcile(newRoot)

	assert.Equal(t, []string{taxonomy.RootId}, nav.Path())
	assert.Same(t, newRoot, nav.Current())
}

func TestReconcile_EveryDepth(t *testing.T) {
	records := sample()
	paths := [][]string{{}, {algo}, {algo, unit1}}

	for d, path := range paths {
		nav := NewNavigator(taxonomy.Build(records))
		for _, id := range path {
			require.NoError(t, nav.NavigateIntoId(id))
		}

		nav.Reconcile(taxonomy.Build(records))
		assert.Len(t, nav.Breadcrumbs(), d+1, "depth %d kept", d)

		nav.Reconcile(taxonomy.Build(records[2:]))
		if d == 0 {
			assert.Len(t, nav.Breadcrumbs(), 1)
		} else {
			assert.Equal(t, []string{taxonomy.RootId}, nav.Path(), "depth %d reset", d)
		}
	}
}

func TestReconcile_SubjectPrunedWhileInSubject(t *testing.T) {
	records := sample()
	nav := NewNavigator(taxonomy.Build(records))
	require.NoError(t, nav.NavigateIntoId(taxonomy.SubjectId("Physics")))

	nav.Reconcile(taxonomy.Build(records[:2]))
	assert.Equal(t, []string{taxonomy.RootId}, nav.Path())
}
