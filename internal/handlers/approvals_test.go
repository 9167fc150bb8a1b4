package handlers

import (
	"testing"

	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/policy"
)

func approved(name string) models.ApprovalSignature {
	return models.ApprovalSignature{ApproverName: name, Action: models.SignatureActionApproved}
}

func rejected(name string) models.ApprovalSignature {
	return models.ApprovalSignature{ApproverName: name, Action: models.SignatureActionRejected}
}

func TestSubmitStatusFor(t *testing.T) {
	tests := []struct {
		total float64
		want  string
	}{
		{0, models.RequestStatusApproved},
		{499.99, models.RequestStatusApproved},
		{500, models.RequestStatusApproved},
		{500.01, models.RequestStatusPending},
		{501, models.RequestStatusPending},
		{1500, models.RequestStatusPending},
		{100000, models.RequestStatusPending},
	}

	for _, tt := range tests {
		if got := submitStatusFor(tt.total); got != tt.want {
			t.Errorf("submitStatusFor(%v) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestChainSatisfied(t *testing.T) {
	engine := policy.NewEngine(nil)

	tests := []struct {
		name       string
		amount     float64
		signatures []models.ApprovalSignature
		want       bool
	}{
		{
			name:       "no approvers required completes immediately",
			amount:     400,
			signatures: nil,
			want:       true,
		},
		{
			name:       "single approver tier, unsigned",
			amount:     1000,
			signatures: nil,
			want:       false,
		},
		{
			name:       "single approver tier, signed",
			amount:     1000,
			signatures: []models.ApprovalSignature{approved("Merrill Raman")},
			want:       true,
		},
		{
			name:       "rejection does not count as approval",
			amount:     1000,
			signatures: []models.ApprovalSignature{rejected("Merrill Raman")},
			want:       false,
		},
		{
			name:       "approval from outside the chain does not count",
			amount:     1000,
			signatures: []models.ApprovalSignature{approved("Somebody Else")},
			want:       false,
		},
		{
			name:       "two approver tier, one signed",
			amount:     2000,
			signatures: []models.ApprovalSignature{approved("Merrill Raman")},
			want:       false,
		},
		{
			name:       "two approver tier, both signed",
			amount:     2000,
			signatures: []models.ApprovalSignature{approved("Merrill Raman"), approved("Ryan Greene")},
			want:       true,
		},
		{
			name:   "second approver rejecting blocks completion",
			amount: 2000,
			signatures: []models.ApprovalSignature{
				approved("Merrill Raman"),
				rejected("Ryan Greene"),
			},
			want: false,
		},
		{
			name:   "over 100k needs the CEO too",
			amount: 150000,
			signatures: []models.ApprovalSignature{
				approved("Merrill Raman"),
				approved("Ryan Greene"),
			},
			want: false,
		},
		{
			name:   "over 100k with full chain",
			amount: 150000,
			signatures: []models.ApprovalSignature{
				approved("Merrill Raman"),
				approved("Ryan Greene"),
				approved("CEO"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			required := engine.RequiredApprovers(tt.amount)
			if got := chainSatisfied(required, tt.signatures); got != tt.want {
				t.Errorf("chainSatisfied(%v, %d sigs) = %v, want %v",
					tt.amount, len(tt.signatures), got, tt.want)
			}
		})
	}
}
