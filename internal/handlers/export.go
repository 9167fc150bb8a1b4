package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/services/export"
)

// exportRequestsXLSX streams all purchase requests as a spreadsheet.
// Optional ?status= and ?category= filters mirror the list endpoint.
func (r *Router) exportRequestsXLSX(w http.ResponseWriter, req *http.Request) {
	q := r.db.Model(&models.PurchaseRequest{}).Order("created_at DESC")
	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if category := req.URL.Query().Get("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var requests []models.PurchaseRequest
	if err := q.Find(&requests).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch purchase requests")
		return
	}

	data, err := export.RequestsXLSX(requests)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate spreadsheet")
		return
	}

	filename := fmt.Sprintf("purchase_requests_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// exportRequestPDF renders one request as a printable approval form with a
// QR code linking back to the live record.
func (r *Router) exportRequestPDF(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var pr models.PurchaseRequest
	if err := r.db.Preload("Signatures").First(&pr, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Purchase request not found")
		return
	}
	if !r.canView(req, &pr) {
		respondError(w, http.StatusForbidden, "Not allowed to view this request")
		return
	}

	result := r.engine.Validate(policyInput(&pr))
	tierLabel := r.engine.ApprovalTier(pr.TotalAmount)
	detailURL := fmt.Sprintf("%s/requests/%s", r.cfg.BaseURL, pr.ID)

	data, err := export.RequestPDF(&pr, result, tierLabel, detailURL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="request_`+pr.ID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
