package handler

import (
	"encoding/json"
	"net/http"

	"digilocker/internal/api/middleware"
	"digilocker/internal/app/service"
	"digilocker/internal/common"
	"digilocker/internal/domain/authz"

	"github.com/go-chi/chi/v5"
)

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(ds *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: ds}
}

func (h *DocumentHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(owner chi.Router) {
		owner.Use(middleware.Require(authz.OpListOwnDocuments))
		owner.Get("/", h.listDocuments)           // GET /api/documents
		owner.Get("/search", h.searchDocuments)   // GET /api/documents/search?name=
		owner.Get("/{documentID}", h.getDocument) // GET /api/documents/{id}
		owner.Post("/", h.createDocument)
		owner.Put("/{documentID}", h.updateDocument)
		owner.Delete("/{documentID}", h.deleteDocument)
	})

	r.Group(func(mod chi.Router) {
		mod.Use(middleware.Require(authz.OpVerifyDocument))
		mod.Get("/unverified", h.listUnverified)
		mod.Put("/{documentID}/verify", h.verifyDocument)
		mod.Put("/{documentID}/reject", h.rejectDocument)
	})
}

func (h *DocumentHandler) listDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	docs, err := h.documentService.List(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) getDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.documentService.Get(r.Context(), documentID, userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) createDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	doc, err := h.documentService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) updateDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	documentID := chi.URLParam(r, "documentID")

	var req service.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	doc, err := h.documentService.Update(r.Context(), documentID, userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	documentID := chi.URLParam(r, "documentID")

	if err := h.documentService.Delete(r.Context(), documentID, userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Document deleted successfully")
}

func (h *DocumentHandler) searchDocuments(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	docs, err := h.documentService.SearchByName(r.Context(), name)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) listUnverified(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetUserRolesFromContext(r.Context())

	docs, err := h.documentService.ListUnverified(r.Context(), roles)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) verifyDocument(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetUserRolesFromContext(r.Context())
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.documentService.Verify(r.Context(), documentID, roles)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) rejectDocument(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetUserRolesFromContext(r.Context())
	documentID := chi.URLParam(r, "documentID")

	if err := h.documentService.Reject(r.Context(), documentID, roles); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Document rejected successfully")
}
