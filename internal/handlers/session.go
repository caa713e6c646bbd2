package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/branchscope"
	"github.com/yukikurage/flock-console/internal/clientstate"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/middleware"
	"github.com/yukikurage/flock-console/internal/services"
)

// scopedSession is the request's view of the caller's branch scope.
type scopedSession struct {
	caller  services.Caller
	store   *clientstate.Store
	manager *branchscope.Manager
}

// loadScope restores the session's branch scope and reconciles it with the
// current branch list, persisting any correction. On failure it has already
// written the response.
func loadScope(c *gin.Context, branches *services.BranchService) (*scopedSession, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	store := clientstate.FromContext(c)
	m := store.BranchManager()
	changed, err := branches.Sync(c.Request.Context(), caller, m)
	if err != nil {
		respondUpstreamError(c, err)
		return nil, false
	}

	sess := &scopedSession{caller: caller, store: store, manager: m}
	if changed {
		if !sess.save(c) {
			return nil, false
		}
	}
	return sess, true
}

func (s *scopedSession) save(c *gin.Context) bool {
	if err := s.store.SetBranchManager(s.manager); err != nil {
		apierrors.InternalError(c, "Failed to save branch scope")
		return false
	}
	if err := s.store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}
