package sync

import (
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

/**
 * @brief One synchronizable primitive. The host calls Sync with the bits its
 * change tracker accumulated since the last round and Finalize when the
 * primitive is removed.
 */
type Prim interface {
	// Sync pulls the dirty state from the delegate into the render scene and
	// clears the bits it consumed.
	Sync(delegate scenegraph.Delegate, scene *render.Scene, dirtyBits *scenegraph.DirtyBits)

	// InitialDirtyBits is the mask a freshly inserted primitive starts with.
	InitialDirtyBits() scenegraph.DirtyBits

	// Finalize removes everything the primitive created in the scene.
	Finalize(scene *render.Scene)
}
