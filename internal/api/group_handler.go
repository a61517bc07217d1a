package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/service"
)

// GroupHandler handles group and membership HTTP requests.
type GroupHandler struct {
	groupService      service.GroupService
	membershipService service.MembershipService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(
	groupService service.GroupService,
	membershipService service.MembershipService,
) *GroupHandler {
	return &GroupHandler{
		groupService:      groupService,
		membershipService: membershipService,
	}
}

// CreateGroup handles POST /api/groups requests.
// The creator is enrolled as "admin" in the same transaction.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), req.Name, req.CreatorID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewGroupResponse(group))
}

// GetGroup handles GET /api/groups/{groupID} requests.
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupService.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewGroupResponse(group))
}

// ListGroups handles GET /api/groups requests.
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	responses := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, NewGroupResponse(group))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateGroup handles PUT /api/groups/{groupID} requests.
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req UpdateGroupRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	group, err := h.groupService.UpdateGroup(r.Context(), chi.URLParam(r, "groupID"), req.Name)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewGroupResponse(group))
}

// DeleteGroup handles DELETE /api/groups/{groupID} requests.
// The group's memberships and tasks go with it.
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.DeleteGroup(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EnrollMember handles POST /api/groups/{groupID}/members requests.
func (h *GroupHandler) EnrollMember(w http.ResponseWriter, r *http.Request) {
	var req EnrollMemberRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	membership, err := h.membershipService.Enroll(
		r.Context(), chi.URLParam(r, "groupID"), req.UserID, req.Role)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]string{
		"user_id": req.UserID,
		"role":    membership.Role,
	})
}

// UpdateMemberRole handles PUT /api/groups/{groupID}/members/{userID} requests.
func (h *GroupHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateMemberRoleRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	membership, err := h.membershipService.UpdateRole(
		r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"user_id": chi.URLParam(r, "userID"),
		"role":    membership.Role,
	})
}

// RemoveMember handles DELETE /api/groups/{groupID}/members/{userID} requests.
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.membershipService.Remove(
		r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "userID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMembers handles GET /api/groups/{groupID}/members requests.
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.membershipService.ListMembers(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	responses := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, NewMemberResponse(member))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}
