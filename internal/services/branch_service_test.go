package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/flock-console/internal/branchscope"
	"github.com/yukikurage/flock-console/internal/models"
)

func TestBranchService_SyncAutoSelectsSoleBranch(t *testing.T) {
	api := &fakeAPI{org: &models.OrganizationEnvelope{
		Organization: &models.Organization{ID: "org-1"},
		Branches:     []models.Branch{{ID: "b1", Name: "Head Office", IsHeadOffice: true}},
	}}
	cache := newTestCache()
	svc := NewBranchService(NewOrganizationService(api, cache), cache)
	m := branchscope.NewManager(branchscope.Unset(), nil)

	changed, err := svc.Sync(context.Background(), testCaller, m)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "b1", *m.SelectedBranchID())
}

func TestBranchService_SyncPropagatesFailure(t *testing.T) {
	api := &fakeAPI{orgErr: notFound("/organizations/me")}
	cache := newTestCache()
	svc := NewBranchService(NewOrganizationService(api, cache), cache)

	_, err := svc.Sync(context.Background(), testCaller, branchscope.NewManager(branchscope.Unset(), nil))
	require.Error(t, err)
}

func TestBranchService_ConfirmClearsSessionCache(t *testing.T) {
	api := &fakeAPI{org: growthOrg()}
	cache := newTestCache()
	orgs := NewOrganizationService(api, cache)
	svc := NewBranchService(orgs, cache)
	m := branchscope.NewManager(branchscope.All(), nil)

	_, err := svc.Sync(context.Background(), testCaller, m)
	require.NoError(t, err)
	other := Caller{Token: "tok-2", SessionID: "sess-2"}
	_, err = orgs.Organization(context.Background(), other)
	require.NoError(t, err)

	target := "b2"
	require.True(t, m.Stage(&target))
	res := svc.Confirm(context.Background(), testCaller, m)

	require.True(t, res.Committed)
	require.True(t, res.Reload)
	require.Zero(t, cache.Len(testCaller.SessionID))
	require.Equal(t, 1, cache.Len(other.SessionID), "other sessions keep their cache")
}

func TestBranchService_CancelKeepsCache(t *testing.T) {
	api := &fakeAPI{org: growthOrg()}
	cache := newTestCache()
	svc := NewBranchService(NewOrganizationService(api, cache), cache)
	m := branchscope.NewManager(branchscope.All(), nil)

	_, err := svc.Sync(context.Background(), testCaller, m)
	require.NoError(t, err)

	target := "b1"
	m.Stage(&target)
	m.Cancel()
	res := svc.Confirm(context.Background(), testCaller, m)

	require.False(t, res.Committed)
	require.Equal(t, 1, cache.Len(testCaller.SessionID))
}
