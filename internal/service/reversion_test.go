package service

import (
	"testing"

	"github.com/dinefront/internal/constants"
	"github.com/dinefront/internal/models"
)

func TestRequestRemovalUntrackedItem(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[1] // untracked
	outcome, err := s.RequestRemoval(item.EditID)
	if err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if !outcome.Removed || outcome.NeedsDisposition {
		t.Fatalf("expected silent removal for untracked item, got %+v", outcome)
	}
	if len(s.Items()) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(s.Items()))
	}
	if len(s.DamagedQueue()) != 0 {
		t.Fatalf("expected no damaged record for silent removal")
	}
}

func TestRequestRemovalNewlyAddedTrackedItem(t *testing.T) {
	s := NewEditSession(testOrder())
	added, err := s.AddItem(AddItemInput{BackendID: "99", Name: "Salmon", Quantity: 1})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	// 目录补全后该项启用库存跟踪
	s.applyEnrichment("99", &models.MenuItem{ID: 99, StockTrackingEnabled: true, StockQuantity: 12})

	outcome, err := s.RequestRemoval(added.EditID)
	if err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if !outcome.Removed || outcome.NeedsDisposition {
		t.Fatalf("expected silent removal for newly added item, got %+v", outcome)
	}
}

func TestRequestRemovalTrackedOriginalNeedsDisposition(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0] // tracked, original
	outcome, err := s.RequestRemoval(item.EditID)
	if err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if outcome.Removed || !outcome.NeedsDisposition {
		t.Fatalf("expected disposition prompt for tracked original, got %+v", outcome)
	}
	if len(s.Items()) != 2 {
		t.Fatalf("expected item kept while disposition pending")
	}
}

func TestRequestRemovalUnknownEditID(t *testing.T) {
	s := NewEditSession(testOrder())
	if _, err := s.RequestRemoval("missing"); err != ErrSessionItemNotFound {
		t.Fatalf("expected ErrSessionItemNotFound, got %v", err)
	}
}

func TestResolveDispositionReturnToInventory(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	if _, err := s.RequestRemoval(item.EditID); err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if err := s.ResolveDisposition(item.EditID, constants.DispositionReturnToInventory, ""); err != nil {
		t.Fatalf("resolve disposition failed: %v", err)
	}
	if len(s.Items()) != 1 {
		t.Fatalf("expected item removed")
	}
	if len(s.DamagedQueue()) != 0 {
		t.Fatalf("expected no damaged record for return_to_inventory")
	}
}

func TestResolveDispositionMarkAsDamaged(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	if _, err := s.RequestRemoval(item.EditID); err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if err := s.ResolveDisposition(item.EditID, constants.DispositionMarkAsDamaged, "  burnt  "); err != nil {
		t.Fatalf("resolve disposition failed: %v", err)
	}
	queue := s.DamagedQueue()
	if len(queue) != 1 {
		t.Fatalf("expected 1 damaged record, got %d", len(queue))
	}
	record := queue[0]
	if record.BackendID != "10" || record.Quantity != 2 || record.Reason != "burnt" {
		t.Fatalf("unexpected damaged record: %+v", record)
	}
	if len(s.Items()) != 1 {
		t.Fatalf("expected item removed")
	}
}

func TestResolveDispositionRequiresReason(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	if _, err := s.RequestRemoval(item.EditID); err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if err := s.ResolveDisposition(item.EditID, constants.DispositionMarkAsDamaged, "   "); err != ErrDispositionReasonRequired {
		t.Fatalf("expected ErrDispositionReasonRequired, got %v", err)
	}
	// 原因缺失时项保留且处置仍挂起
	if len(s.Items()) != 2 {
		t.Fatalf("expected item kept after rejected disposition")
	}
	if err := s.ResolveDisposition(item.EditID, constants.DispositionMarkAsDamaged, "burnt"); err != nil {
		t.Fatalf("expected disposition still pending, got %v", err)
	}
}

func TestResolveDispositionInvalidChoice(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	if _, err := s.RequestRemoval(item.EditID); err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if err := s.ResolveDisposition(item.EditID, "discard", ""); err != ErrDispositionInvalid {
		t.Fatalf("expected ErrDispositionInvalid, got %v", err)
	}
}

func TestResolveDispositionWithoutPendingRequest(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	if err := s.ResolveDisposition(item.EditID, constants.DispositionReturnToInventory, ""); err != ErrDispositionNotPending {
		t.Fatalf("expected ErrDispositionNotPending, got %v", err)
	}
}
