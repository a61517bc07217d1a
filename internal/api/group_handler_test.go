package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/api"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGroupRouter(groupService *MockGroupService, membershipService *MockMembershipService) *chi.Mux {
	handler := api.NewGroupHandler(groupService, membershipService)
	r := chi.NewRouter()
	r.Route("/api/groups", func(r chi.Router) {
		r.Post("/", handler.CreateGroup)
		r.Get("/", handler.ListGroups)
		r.Route("/{groupID}", func(r chi.Router) {
			r.Get("/", handler.GetGroup)
			r.Put("/", handler.UpdateGroup)
			r.Delete("/", handler.DeleteGroup)
			r.Route("/members", func(r chi.Router) {
				r.Get("/", handler.ListMembers)
				r.Post("/", handler.EnrollMember)
				r.Put("/{userID}", handler.UpdateMemberRole)
				r.Delete("/{userID}", handler.RemoveMember)
			})
		})
	})
	return r
}

func testGroup(t *testing.T, name string) *domain.Group {
	t.Helper()
	group, err := domain.NewGroup(uuid.NewString(), name)
	require.NoError(t, err)
	return group
}

func TestGroupHandlers(t *testing.T) {
	t.Run("creates a group with its creator", func(t *testing.T) {
		groupSvc := &MockGroupService{}
		group := testGroup(t, "Platform")
		groupSvc.On("CreateGroup", mock.Anything, "Platform", "creator-id").Return(group, nil)

		rec := doJSON(t, newGroupRouter(groupSvc, &MockMembershipService{}), http.MethodPost,
			"/api/groups", `{"name":"Platform","creator_id":"creator-id"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp api.GroupResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, group.ExternalID, resp.ID)
	})

	t.Run("missing creator maps to 404", func(t *testing.T) {
		groupSvc := &MockGroupService{}
		groupSvc.On("CreateGroup", mock.Anything, "Platform", "ghost").
			Return(nil, fmt.Errorf("retrieving group creator: %w", store.ErrUserNotFound))

		rec := doJSON(t, newGroupRouter(groupSvc, &MockMembershipService{}), http.MethodPost,
			"/api/groups", `{"name":"Platform","creator_id":"ghost"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing name is a validation error", func(t *testing.T) {
		rec := doJSON(t, newGroupRouter(&MockGroupService{}, &MockMembershipService{}),
			http.MethodPost, "/api/groups", `{"creator_id":"creator-id"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete cascades and returns 204", func(t *testing.T) {
		groupSvc := &MockGroupService{}
		groupSvc.On("DeleteGroup", mock.Anything, "group-id").Return(nil)

		rec := doJSON(t, newGroupRouter(groupSvc, &MockMembershipService{}), http.MethodDelete,
			"/api/groups/group-id", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete on missing group maps to 404", func(t *testing.T) {
		groupSvc := &MockGroupService{}
		groupSvc.On("DeleteGroup", mock.Anything, "missing").
			Return(fmt.Errorf("retrieving group for delete: %w", store.ErrGroupNotFound))

		rec := doJSON(t, newGroupRouter(groupSvc, &MockMembershipService{}), http.MethodDelete,
			"/api/groups/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMembershipHandlers(t *testing.T) {
	groupID := uuid.NewString()
	userID := uuid.NewString()

	t.Run("enrolls a member", func(t *testing.T) {
		memberSvc := &MockMembershipService{}
		membership, err := domain.NewMembership(uuid.New(), uuid.New(), "member")
		require.NoError(t, err)
		memberSvc.On("Enroll", mock.Anything, groupID, userID, "member").Return(membership, nil)

		rec := doJSON(t, newGroupRouter(&MockGroupService{}, memberSvc), http.MethodPost,
			"/api/groups/"+groupID+"/members",
			`{"user_id":"`+userID+`","role":"member"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"member"`)
	})

	t.Run("duplicate enrollment maps to 409", func(t *testing.T) {
		memberSvc := &MockMembershipService{}
		memberSvc.On("Enroll", mock.Anything, groupID, userID, "member").
			Return(nil, fmt.Errorf("creating membership: %w", store.ErrMembershipExists))

		rec := doJSON(t, newGroupRouter(&MockGroupService{}, memberSvc), http.MethodPost,
			"/api/groups/"+groupID+"/members",
			`{"user_id":"`+userID+`","role":"member"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already a member")
	})

	t.Run("enrollment without role is a validation error", func(t *testing.T) {
		rec := doJSON(t, newGroupRouter(&MockGroupService{}, &MockMembershipService{}),
			http.MethodPost, "/api/groups/"+groupID+"/members",
			`{"user_id":"`+userID+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("role update on absent membership maps to 404", func(t *testing.T) {
		memberSvc := &MockMembershipService{}
		memberSvc.On("UpdateRole", mock.Anything, groupID, userID, "admin").
			Return(nil, fmt.Errorf("updating membership role: %w", store.ErrMembershipNotFound))

		rec := doJSON(t, newGroupRouter(&MockGroupService{}, memberSvc), http.MethodPut,
			"/api/groups/"+groupID+"/members/"+userID, `{"role":"admin"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Membership not found")
	})

	t.Run("removal returns 204 and repeated removal 404", func(t *testing.T) {
		memberSvc := &MockMembershipService{}
		memberSvc.On("Remove", mock.Anything, groupID, userID).Return(nil).Once()
		memberSvc.On("Remove", mock.Anything, groupID, userID).
			Return(fmt.Errorf("deleting membership: %w", store.ErrMembershipNotFound)).Once()

		router := newGroupRouter(&MockGroupService{}, memberSvc)
		path := "/api/groups/" + groupID + "/members/" + userID

		rec := doJSON(t, router, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, router, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("lists members with display data", func(t *testing.T) {
		memberSvc := &MockMembershipService{}
		memberSvc.On("ListMembers", mock.Anything, groupID).Return([]*domain.GroupMember{
			{UserExternalID: "u-1", Name: "Ada", Email: "ada@example.com", Role: "admin"},
			{UserExternalID: "u-2", Name: "Grace", Email: "grace@example.com", Role: "member"},
		}, nil)

		rec := doJSON(t, newGroupRouter(&MockGroupService{}, memberSvc), http.MethodGet,
			"/api/groups/"+groupID+"/members", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []api.MemberResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "admin", resp[0].Role)
		assert.Equal(t, "grace@example.com", resp[1].Email)
	})
}
