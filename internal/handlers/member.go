package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripdesk-backend/internal/middleware"
	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/services"
)

// MemberHandler handles membership and share-link HTTP requests
type MemberHandler struct {
	memberService *services.MemberService
	tripService   *services.TripService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, tripService *services.TripService) *MemberHandler {
	return &MemberHandler{memberService: memberService, tripService: tripService}
}

// AddMemberRequest represents the request body for an interactive member add
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// AddMember handles POST /api/v1/trips/{trip_id}/members
func (h *MemberHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.memberService.AddMemberByEmail(ctx, userID, tripID, req.Email, models.Role(req.Role))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to add member")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("trip_id", tripID).Str("member_id", member.UserID).
		Str("role", string(member.Role)).Msg("Member added")
	respondJSON(w, http.StatusCreated, member)
}

// ListMembers handles GET /api/v1/trips/{trip_id}/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	members, err := h.memberService.ListMembers(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to list members")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// UpdateMemberRequest represents the request body for a role change
type UpdateMemberRequest struct {
	Role string `json:"role"`
}

// UpdateMember handles PATCH /api/v1/trips/{trip_id}/members/{user_id}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")
	memberID := chi.URLParam(r, "user_id")

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.memberService.UpdateMemberRole(ctx, actorID, tripID, memberID, models.Role(req.Role)); err != nil {
		log.Error().Err(err).Str("trip_id", tripID).Str("member_id", memberID).Msg("Failed to update member role")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember handles DELETE /api/v1/trips/{trip_id}/members/{user_id}
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")
	memberID := chi.URLParam(r, "user_id")

	if err := h.memberService.RemoveMember(ctx, actorID, tripID, memberID); err != nil {
		log.Error().Err(err).Str("trip_id", tripID).Str("member_id", memberID).Msg("Failed to remove member")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("trip_id", tripID).Str("member_id", memberID).Msg("Member removed")
	w.WriteHeader(http.StatusNoContent)
}

// CreateShareLinkRequest represents the request body for share-link creation
type CreateShareLinkRequest struct {
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// CreateShareLink handles POST /api/v1/trips/{trip_id}/share-links
func (h *MemberHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var req CreateShareLinkRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	link, err := h.memberService.CreateShareLink(ctx, userID, tripID, req.ExpiresAt)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to create share link")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("trip_id", tripID).Str("share_id", link.ID).Msg("Share link created")
	respondJSON(w, http.StatusCreated, link)
}

// ListShareLinks handles GET /api/v1/trips/{trip_id}/share-links
func (h *MemberHandler) ListShareLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	links, err := h.memberService.ListShareLinks(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to list share links")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, links)
}

// SharedPreview handles GET /api/v1/share/{share_id} without authentication.
// The share id resolves only while its link is enabled and unexpired.
func (h *MemberHandler) SharedPreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shareID := chi.URLParam(r, "share_id")

	tripID, err := h.memberService.ResolveShareLink(ctx, shareID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	preview, err := h.tripService.PreviewUnauthenticated(ctx, tripID)
	if err != nil {
		log.Error().Err(err).Str("share_id", shareID).Str("trip_id", tripID).Msg("Failed to load shared preview")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}
