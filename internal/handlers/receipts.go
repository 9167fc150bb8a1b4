package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/xelth-com/pcardgo/internal/ai"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/websocket"
	"gorm.io/datatypes"
)

// maxReceiptSize caps uploads at 10 MB.
const maxReceiptSize = 10 << 20

// verifiedConfidenceFloor is the minimum model confidence for an automatic
// "verified" status. Anything below goes to human review.
const verifiedConfidenceFloor = 0.8

// uploadReceipt attaches a receipt file to a purchase request.
func (r *Router) uploadReceipt(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var pr models.PurchaseRequest
	if err := r.db.First(&pr, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase request not found")
		return
	}
	if !r.canView(req, &pr) {
		respondError(w, http.StatusForbidden, "Not allowed to attach receipts to this request")
		return
	}

	req.Body = http.MaxBytesReader(w, req.Body, maxReceiptSize)
	if err := req.ParseMultipartForm(maxReceiptSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart upload (10MB limit)")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	objectKey := pr.ID + "/" + uuid.New().String() + filepath.Ext(header.Filename)
	if err := r.store.Put(req.Context(), objectKey, data, contentType); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store receipt file")
		return
	}

	receipt := models.Receipt{
		RequestID:   pr.ID,
		ObjectKey:   objectKey,
		FileName:    header.Filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Status:      models.ReceiptStatusUploaded,
	}
	if err := r.db.Create(&receipt).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record receipt")
		return
	}

	r.hub.Broadcast(websocket.Event{
		Type:      "receipt.uploaded",
		RequestID: pr.ID,
		Payload:   map[string]interface{}{"receiptId": receipt.ID, "fileName": receipt.FileName},
	})

	respondJSON(w, http.StatusCreated, receipt)
}

// getReceiptFile streams the stored receipt back to the caller.
func (r *Router) getReceiptFile(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var receipt models.Receipt
	if err := r.db.Preload("Request").First(&receipt, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Receipt not found")
		return
	}
	if receipt.Request == nil || !r.canView(req, receipt.Request) {
		respondError(w, http.StatusForbidden, "Not allowed to view this receipt")
		return
	}

	data, err := r.store.Get(req.Context(), receipt.ObjectKey)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load receipt file")
		return
	}

	w.Header().Set("Content-Type", receipt.ContentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+receipt.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// verifyReceipt asks the vision model whether the receipt matches the
// request. The verdict is advisory: it updates the receipt status but never
// the request status.
func (r *Router) verifyReceipt(w http.ResponseWriter, req *http.Request) {
	if r.reviewer == nil {
		respondError(w, http.StatusServiceUnavailable, "AI receipt verification is not configured")
		return
	}

	id := mux.Vars(req)["id"]

	var receipt models.Receipt
	if err := r.db.Preload("Request").First(&receipt, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Receipt not found")
		return
	}
	if receipt.Request == nil {
		respondError(w, http.StatusInternalServerError, "Receipt has no parent request")
		return
	}

	data, err := r.store.Get(req.Context(), receipt.ObjectKey)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load receipt file")
		return
	}

	expectedDate := receipt.Request.CreatedAt
	if receipt.Request.SubmittedAt != nil {
		expectedDate = *receipt.Request.SubmittedAt
	}

	verdict, err := r.reviewer.Verify(req.Context(), data, receipt.ContentType, ai.ExpectedReceipt{
		Vendor: receipt.Request.VendorName,
		Amount: receipt.Request.TotalAmount,
		Date:   expectedDate,
	})
	if err != nil {
		respondError(w, http.StatusBadGateway, "Receipt verification failed: "+err.Error())
		return
	}

	raw, err := json.Marshal(verdict)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to encode verdict")
		return
	}

	now := time.Now()
	receipt.Status = receiptStatusFor(verdict)
	receipt.Confidence = verdict.Confidence
	receipt.Verdict = datatypes.JSON(raw)
	receipt.VerifiedAt = &now

	if err := r.db.Save(&receipt).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save verification result")
		return
	}

	r.hub.Broadcast(websocket.Event{
		Type:      "receipt.verified",
		RequestID: receipt.RequestID,
		Payload: map[string]interface{}{
			"receiptId":  receipt.ID,
			"status":     receipt.Status,
			"confidence": receipt.Confidence,
		},
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"receipt": receipt,
		"verdict": verdict,
	})
}

// receiptStatusFor maps a model verdict onto a receipt status.
func receiptStatusFor(v *ai.Verdict) string {
	switch {
	case v.OverallMatch && v.Confidence >= verifiedConfidenceFloor:
		return models.ReceiptStatusVerified
	case !v.OverallMatch && v.Confidence >= verifiedConfidenceFloor:
		return models.ReceiptStatusMismatch
	default:
		return models.ReceiptStatusNeedsReview
	}
}
