package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dinefront/internal/models"
)

type reporterStub struct {
	mu    sync.Mutex
	calls []DamageRequest
	ids   []BackendID
	err   error
}

func (r *reporterStub) MarkAsDamaged(_ context.Context, itemID BackendID, req DamageRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, itemID)
	r.calls = append(r.calls, req)
	return r.err
}

type persisterStub struct {
	payload OrderUpdatePayload
	order   *models.Order
	err     error
}

func (p *persisterStub) UpdateOrder(_ context.Context, payload OrderUpdatePayload) (*models.Order, error) {
	p.payload = payload
	if p.err != nil {
		return nil, p.err
	}
	if p.order != nil {
		return p.order, nil
	}
	return &models.Order{ID: payload.ID, Status: payload.Status, Total: payload.Total}, nil
}

func newTestPipeline(reporter DamageReporter, persister OrderPersister) *SavePipeline {
	return NewSavePipeline(reporter, persister, NewEtaScheduler(time.UTC))
}

func TestSaveAssemblesPayloadWithoutSessionFields(t *testing.T) {
	s := NewEditSession(testOrder())
	persister := &persisterStub{}
	pipeline := newTestPipeline(&reporterStub{}, persister)

	result, err := pipeline.Save(context.Background(), s, SaveInput{Status: "pending", TotalText: "31.40"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if result.Order == nil {
		t.Fatalf("expected order returned")
	}
	if len(persister.payload.Items) != 2 {
		t.Fatalf("expected 2 payload items, got %d", len(persister.payload.Items))
	}
	tracked := persister.payload.Items[0]
	if tracked.BackendID != "10" || !tracked.StockTrackingEnabled || tracked.StockQuantity != 40 {
		t.Fatalf("expected stock fields carried for tracked item, got %+v", tracked)
	}
	untracked := persister.payload.Items[1]
	if untracked.BackendID.Present() {
		t.Fatalf("expected no backend id for unlinked item")
	}
	if untracked.StockTrackingEnabled || untracked.StockQuantity != 0 {
		t.Fatalf("expected stock fields omitted for untracked item, got %+v", untracked)
	}
	if persister.payload.Total.String() != "31.40" {
		t.Fatalf("expected total 31.40, got %s", persister.payload.Total.String())
	}
}

func TestSaveTotalParseFallsBackToZero(t *testing.T) {
	s := NewEditSession(testOrder())
	persister := &persisterStub{}
	pipeline := newTestPipeline(&reporterStub{}, persister)

	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "pending", TotalText: "not-a-number"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if persister.payload.Total.String() != "0.00" {
		t.Fatalf("expected total fallback 0.00, got %s", persister.payload.Total.String())
	}
}

func TestSaveRejectsIllegalStatusTransition(t *testing.T) {
	s := NewEditSession(testOrder())
	persister := &persisterStub{}
	pipeline := newTestPipeline(&reporterStub{}, persister)

	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "completed"}); err != ErrOrderStatusInvalid {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
	if persister.payload.ID != 0 {
		t.Fatalf("expected persist not reached after invalid transition")
	}
}

func TestSaveFlushesDamagedQueueOnce(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	if _, err := s.RequestRemoval(item.EditID); err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if err := s.ResolveDisposition(item.EditID, "mark_as_damaged", "dropped"); err != nil {
		t.Fatalf("resolve disposition failed: %v", err)
	}

	reporter := &reporterStub{}
	pipeline := newTestPipeline(reporter, &persisterStub{})
	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "pending"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(reporter.calls) != 1 {
		t.Fatalf("expected 1 damage report, got %d", len(reporter.calls))
	}
	if reporter.ids[0] != "10" || reporter.calls[0].Quantity != 2 || reporter.calls[0].Reason != "dropped" {
		t.Fatalf("unexpected damage report: %v %+v", reporter.ids[0], reporter.calls[0])
	}
	if reporter.calls[0].OrderID != s.OrderID {
		t.Fatalf("expected order id attached to report")
	}

	// 再次保存不重复上报
	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "pending"}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if len(reporter.calls) != 1 {
		t.Fatalf("expected no duplicate reports, got %d", len(reporter.calls))
	}
}

func TestSaveToleratesReportFailure(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	if _, err := s.RequestRemoval(item.EditID); err != nil {
		t.Fatalf("request removal failed: %v", err)
	}
	if err := s.ResolveDisposition(item.EditID, "mark_as_damaged", "dropped"); err != nil {
		t.Fatalf("resolve disposition failed: %v", err)
	}

	reporter := &reporterStub{err: errors.New("inventory backend down")}
	pipeline := newTestPipeline(reporter, &persisterStub{})
	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "pending"}); err != nil {
		t.Fatalf("expected save to succeed despite report failure, got %v", err)
	}
	// 失败的记录同样被清空，不会再次尝试
	if len(s.DamagedQueue()) != 0 {
		t.Fatalf("expected damaged queue cleared after flush attempt")
	}
}

func TestSavePersistFailureIsFatal(t *testing.T) {
	s := NewEditSession(testOrder())
	persistErr := errors.New("database unavailable")
	pipeline := newTestPipeline(&reporterStub{}, &persisterStub{err: persistErr})

	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "pending"}); !errors.Is(err, persistErr) {
		t.Fatalf("expected persist error surfaced, got %v", err)
	}
}

func TestSaveRequiresEtaWhenEnteringPreparing(t *testing.T) {
	s := NewEditSession(testOrder())
	pipeline := newTestPipeline(&reporterStub{}, &persisterStub{})

	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "preparing"}); err != ErrEtaValueRequired {
		t.Fatalf("expected ErrEtaValueRequired, got %v", err)
	}

	eta := 15.0
	persister := &persisterStub{}
	pipeline = newTestPipeline(&reporterStub{}, persister)
	if _, err := pipeline.Save(context.Background(), s, SaveInput{Status: "preparing", EtaValue: &eta}); err != nil {
		t.Fatalf("save with eta failed: %v", err)
	}
	if persister.payload.EstimatedPickupTime == nil {
		t.Fatalf("expected pickup time computed")
	}
}

func TestSummarizeInventoryChanges(t *testing.T) {
	s := NewEditSession(testOrder())
	item := s.Items()[0]
	quantity := 5
	if _, err := s.ChangeItem(item.EditID, ChangeItemInput{Quantity: &quantity}); err != nil {
		t.Fatalf("change item failed: %v", err)
	}
	added, err := s.AddItem(AddItemInput{BackendID: "99", Name: "Salmon", Quantity: 1})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	s.applyEnrichment("99", &models.MenuItem{ID: 99, StockTrackingEnabled: true, StockQuantity: 12})
	_ = added

	pipeline := newTestPipeline(&reporterStub{}, &persisterStub{})
	changes := pipeline.summarizeInventoryChanges(s)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %+v", len(changes), changes)
	}
	if changes[0].BackendID != "10" || changes[0].OriginalQuantity != 2 || changes[0].NewQuantity != 5 {
		t.Fatalf("unexpected quantity change: %+v", changes[0])
	}
	if changes[1].BackendID != "99" || !changes[1].IsNew {
		t.Fatalf("unexpected new item change: %+v", changes[1])
	}
}
