package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/policy"
	"github.com/xelth-com/pcardgo/internal/websocket"
	"gorm.io/datatypes"
)

// RequestPayload carries the editable fields of a purchase request.
type RequestPayload struct {
	VendorName             string  `json:"vendorName"`
	CardholderName         string  `json:"cardholderName"`
	Category               string  `json:"category"`
	PurchaseAmount         float64 `json:"purchaseAmount"`
	TaxAmount              float64 `json:"taxAmount"`
	ShippingAmount         float64 `json:"shippingAmount"`
	IsSoftwareSubscription bool    `json:"isSoftwareSubscription"`
	ITLicenseConfirmed     bool    `json:"itLicenseConfirmed"`
	IsPreferredVendor      bool    `json:"isPreferredVendor"`
	POBypassReason         string  `json:"poBypassReason"`
	POBypassExplanation    string  `json:"poBypassExplanation"`
	Justification          string  `json:"justification"`
}

// SubmitPayload finalizes a draft. The cardholder signature is mandatory.
type SubmitPayload struct {
	SignatureImage string `json:"signatureImage"`
}

func (p *RequestPayload) apply(req *models.PurchaseRequest) {
	req.VendorName = p.VendorName
	req.CardholderName = p.CardholderName
	req.Category = p.Category
	req.PurchaseAmount = p.PurchaseAmount
	req.TaxAmount = p.TaxAmount
	req.ShippingAmount = p.ShippingAmount
	req.IsSoftwareSubscription = p.IsSoftwareSubscription
	req.ITLicenseConfirmed = p.ITLicenseConfirmed
	req.IsPreferredVendor = p.IsPreferredVendor
	req.POBypassReason = p.POBypassReason
	req.POBypassExplanation = p.POBypassExplanation
	req.Justification = p.Justification
	req.ComputeTotal()
}

// policyInput maps a stored request onto the validator input.
func policyInput(req *models.PurchaseRequest) policy.Input {
	return policy.Input{
		TotalAmount:            req.TotalAmount,
		Category:               req.Category,
		IsSoftwareSubscription: req.IsSoftwareSubscription,
		ITLicenseConfirmed:     req.ITLicenseConfirmed,
		IsPreferredVendor:      req.IsPreferredVendor,
		POBypassReason:         req.POBypassReason,
		POBypassExplanation:    req.POBypassExplanation,
	}
}

// canView limits employees to their own requests; approvers and admins see
// everything.
func (r *Router) canView(req *http.Request, pr *models.PurchaseRequest) bool {
	role := r.currentUserRole(req)
	if role == models.RoleApprover || role == models.RoleAdmin {
		return true
	}
	return pr.SubmittedBy != nil && *pr.SubmittedBy == r.currentUserID(req)
}

// validatePolicy runs the validator on an arbitrary payload. The frontend
// calls this after every form edit for live checklist feedback.
func (r *Router) validatePolicy(w http.ResponseWriter, req *http.Request) {
	var input policy.Input
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result := r.engine.Validate(input)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"isValid":           result.IsValid,
		"checklist":         result.Checklist,
		"requiredApprovers": result.RequiredApprovers,
		"approvalTier":      r.engine.ApprovalTier(input.TotalAmount),
	})
}

// getApprovalTier classifies a single amount.
func (r *Router) getApprovalTier(w http.ResponseWriter, req *http.Request) {
	amount, err := strconv.ParseFloat(req.URL.Query().Get("amount"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"amount": amount,
		"tier":   r.engine.ApprovalTier(amount),
	})
}

// listRequests returns purchase requests visible to the caller.
func (r *Router) listRequests(w http.ResponseWriter, req *http.Request) {
	q := r.db.Model(&models.PurchaseRequest{}).Order("created_at DESC")

	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if category := req.URL.Query().Get("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if role := r.currentUserRole(req); role == models.RoleEmployee {
		q = q.Where("submitted_by = ?", r.currentUserID(req))
	}

	var requests []models.PurchaseRequest
	if err := q.Find(&requests).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch purchase requests")
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// createRequest creates a new draft purchase request.
func (r *Router) createRequest(w http.ResponseWriter, req *http.Request) {
	var payload RequestPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := r.currentUserID(req)
	pr := models.PurchaseRequest{
		Status:      models.RequestStatusDraft,
		SubmittedBy: &userID,
	}
	payload.apply(&pr)
	if pr.CardholderName == "" {
		pr.CardholderName = r.currentUserName(req)
	}

	if err := r.db.Create(&pr).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create purchase request")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"request":    pr,
		"validation": r.engine.Validate(policyInput(&pr)),
	})
}

// getRequest returns one request plus its freshly computed checklist.
func (r *Router) getRequest(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var pr models.PurchaseRequest
	if err := r.db.Preload("Signatures").Preload("Receipts").First(&pr, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase request not found")
		return
	}
	if !r.canView(req, &pr) {
		respondError(w, http.StatusForbidden, "Not allowed to view this request")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"request":      pr,
		"validation":   r.engine.Validate(policyInput(&pr)),
		"approvalTier": r.engine.ApprovalTier(pr.TotalAmount),
	})
}

// updateRequest edits a draft. Submitted requests are immutable except
// through approval actions.
func (r *Router) updateRequest(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var pr models.PurchaseRequest
	if err := r.db.First(&pr, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase request not found")
		return
	}
	if !r.canView(req, &pr) {
		respondError(w, http.StatusForbidden, "Not allowed to edit this request")
		return
	}
	if pr.Status != models.RequestStatusDraft {
		respondError(w, http.StatusConflict, "Only draft requests can be edited")
		return
	}

	var payload RequestPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	payload.apply(&pr)

	if err := r.db.Save(&pr).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update purchase request")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"request":    pr,
		"validation": r.engine.Validate(policyInput(&pr)),
	})
}

// submitStatusFor decides the post-submission status. Purchases of $500 or
// less self-approve with no human check; everything above waits for the
// approval chain.
func submitStatusFor(total float64) string {
	if total <= 500 {
		return models.RequestStatusApproved
	}
	return models.RequestStatusPending
}

// submitRequest finalizes a draft. Requests of $500 or less self-approve;
// everything else waits for the approval chain.
func (r *Router) submitRequest(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var pr models.PurchaseRequest
	if err := r.db.First(&pr, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase request not found")
		return
	}
	if !r.canView(req, &pr) {
		respondError(w, http.StatusForbidden, "Not allowed to submit this request")
		return
	}
	if pr.Status != models.RequestStatusDraft {
		respondError(w, http.StatusConflict, "Request has already been submitted")
		return
	}

	var payload SubmitPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.SignatureImage == "" {
		respondError(w, http.StatusBadRequest, "Cardholder signature is required for submission")
		return
	}

	result := r.engine.Validate(policyInput(&pr))
	if !result.IsValid {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":     "Request violates purchase policy",
			"checklist": result.Checklist,
		})
		return
	}

	snapshot, err := json.Marshal(result.Checklist)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to snapshot checklist")
		return
	}

	now := time.Now()
	pr.SignatureImage = payload.SignatureImage
	pr.ChecklistSnapshot = datatypes.JSON(snapshot)
	pr.SubmittedAt = &now
	pr.Status = submitStatusFor(pr.TotalAmount)
	if pr.Status == models.RequestStatusApproved {
		pr.ResolvedAt = &now
	}

	if err := r.db.Save(&pr).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to submit purchase request")
		return
	}

	r.invalidateDashboard(req)
	r.hub.Broadcast(websocket.Event{
		Type:      "request.submitted",
		RequestID: pr.ID,
		Payload:   map[string]interface{}{"status": pr.Status, "totalAmount": pr.TotalAmount},
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"request":           pr,
		"checklist":         result.Checklist,
		"requiredApprovers": result.RequiredApprovers,
		"approvalTier":      r.engine.ApprovalTier(pr.TotalAmount),
	})
}
