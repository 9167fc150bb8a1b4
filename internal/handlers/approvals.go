package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/policy"
	"github.com/xelth-com/pcardgo/internal/websocket"
)

// ActionPayload carries an approver's decision details.
type ActionPayload struct {
	Comments       string `json:"comments"`
	SignatureImage string `json:"signatureImage"`
}

// isRequiredApprover reports whether name is in the approval chain for the
// request amount.
func (r *Router) isRequiredApprover(name string, amount float64) bool {
	for _, a := range r.engine.RequiredApprovers(amount) {
		if a.Name == name {
			return true
		}
	}
	return false
}

// hasAlreadyActioned reports whether this approver already signed the
// request. One signature per approver per request, ever.
func (r *Router) hasAlreadyActioned(requestID, approverName string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ApprovalSignature{}).
		Where("request_id = ? AND approver_name = ?", requestID, approverName).
		Count(&count).Error
	return count > 0, err
}

// loadPendingRequest fetches a request and verifies it is awaiting approval.
func (r *Router) loadPendingRequest(w http.ResponseWriter, req *http.Request) *models.PurchaseRequest {
	id := mux.Vars(req)["id"]

	var pr models.PurchaseRequest
	if err := r.db.First(&pr, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase request not found")
		return nil
	}
	if pr.Status != models.RequestStatusPending {
		respondError(w, http.StatusConflict, "Request is not awaiting approval")
		return nil
	}
	return &pr
}

// approveRequest records an approval signature. When every required
// approver for the amount has signed, the request is approved.
func (r *Router) approveRequest(w http.ResponseWriter, req *http.Request) {
	pr := r.loadPendingRequest(w, req)
	if pr == nil {
		return
	}

	approverName := r.currentUserName(req)
	if !r.isRequiredApprover(approverName, pr.TotalAmount) && r.currentUserRole(req) != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "You are not in the approval chain for this request")
		return
	}

	acted, err := r.hasAlreadyActioned(pr.ID, approverName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check existing signatures")
		return
	}
	if acted {
		respondError(w, http.StatusConflict, "You have already signed this request")
		return
	}

	var payload ActionPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sig := models.ApprovalSignature{
		RequestID:      pr.ID,
		ApproverID:     r.currentUserID(req),
		ApproverName:   approverName,
		Action:         models.SignatureActionApproved,
		Comments:       payload.Comments,
		SignatureImage: payload.SignatureImage,
		SignedAt:       time.Now(),
	}
	if err := r.db.Create(&sig).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record approval")
		return
	}

	complete, err := r.approvalChainComplete(pr)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to evaluate approval chain")
		return
	}

	if complete {
		now := time.Now()
		pr.Status = models.RequestStatusApproved
		pr.ResolvedAt = &now
		if err := r.db.Save(pr).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update request status")
			return
		}

		r.invalidateDashboard(req)
		r.hub.Broadcast(websocket.Event{
			Type:      "request.approved",
			RequestID: pr.ID,
			Payload:   map[string]interface{}{"approver": approverName},
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"signature":        sig,
		"request":          pr,
		"workflowComplete": complete,
	})
}

// rejectRequest records a rejection. A single rejection ends the workflow.
func (r *Router) rejectRequest(w http.ResponseWriter, req *http.Request) {
	pr := r.loadPendingRequest(w, req)
	if pr == nil {
		return
	}

	approverName := r.currentUserName(req)
	if !r.isRequiredApprover(approverName, pr.TotalAmount) && r.currentUserRole(req) != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "You are not in the approval chain for this request")
		return
	}

	acted, err := r.hasAlreadyActioned(pr.ID, approverName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check existing signatures")
		return
	}
	if acted {
		respondError(w, http.StatusConflict, "You have already signed this request")
		return
	}

	var payload ActionPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Comments == "" {
		respondError(w, http.StatusBadRequest, "A rejection reason is required")
		return
	}

	sig := models.ApprovalSignature{
		RequestID:      pr.ID,
		ApproverID:     r.currentUserID(req),
		ApproverName:   approverName,
		Action:         models.SignatureActionRejected,
		Comments:       payload.Comments,
		SignatureImage: payload.SignatureImage,
		SignedAt:       time.Now(),
	}
	if err := r.db.Create(&sig).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record rejection")
		return
	}

	now := time.Now()
	pr.Status = models.RequestStatusRejected
	pr.ResolvedAt = &now
	if err := r.db.Save(pr).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update request status")
		return
	}

	r.invalidateDashboard(req)
	r.hub.Broadcast(websocket.Event{
		Type:      "request.rejected",
		RequestID: pr.ID,
		Payload:   map[string]interface{}{"approver": approverName, "reason": payload.Comments},
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"signature": sig,
		"request":   pr,
	})
}

// chainSatisfied reports whether the collected signatures include an
// approval from every required approver. Rejections never count toward
// completion.
func chainSatisfied(required []policy.Approver, signatures []models.ApprovalSignature) bool {
	signed := make(map[string]bool, len(signatures))
	for _, sig := range signatures {
		if sig.Action == models.SignatureActionApproved {
			signed[sig.ApproverName] = true
		}
	}

	for _, a := range required {
		if !signed[a.Name] {
			return false
		}
	}
	return true
}

// approvalChainComplete reports whether every required approver for the
// request amount has an approved signature on file.
func (r *Router) approvalChainComplete(pr *models.PurchaseRequest) (bool, error) {
	var signatures []models.ApprovalSignature
	if err := r.db.Where("request_id = ?", pr.ID).Find(&signatures).Error; err != nil {
		return false, err
	}
	return chainSatisfied(r.engine.RequiredApprovers(pr.TotalAmount), signatures), nil
}

// listPendingApprovals returns pending requests the caller still needs to
// sign.
func (r *Router) listPendingApprovals(w http.ResponseWriter, req *http.Request) {
	var pending []models.PurchaseRequest
	if err := r.db.Where("status = ?", models.RequestStatusPending).
		Order("submitted_at ASC").Find(&pending).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch pending requests")
		return
	}

	approverName := r.currentUserName(req)
	queue := make([]models.PurchaseRequest, 0, len(pending))
	for _, pr := range pending {
		if !r.isRequiredApprover(approverName, pr.TotalAmount) {
			continue
		}
		acted, err := r.hasAlreadyActioned(pr.ID, approverName)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to check existing signatures")
			return
		}
		if !acted {
			queue = append(queue, pr)
		}
	}

	respondJSON(w, http.StatusOK, queue)
}
