package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sagecare/practice/internal/domain/billing"
	"github.com/sagecare/practice/internal/domain/documents"
	"github.com/sagecare/practice/internal/domain/settings"
)

func TestTelehealthSettings_SingletonUpsert(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	repo := settings.NewTelehealthRepoPG(tdb.Pool)

	if err := repo.Upsert(ctx, &settings.TelehealthSettings{IsEnabled: true, Provider: "zoom"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, &settings.TelehealthSettings{IsEnabled: true, Provider: "doxy", WaitingRoomEnabled: true}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int
	if err := tdb.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM telehealth_settings`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("telehealth_settings rows = %d, want 1", count)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Provider != "doxy" || !got.WaitingRoomEnabled {
		t.Errorf("second upsert not applied, got %+v", got)
	}
}

func TestBillingAddress_UpsertPerType(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	repo := settings.NewAddressRepoPG(tdb.Pool)

	addrs := []*settings.BillingAddress{
		{Type: settings.AddressTypeBusiness, Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"},
		{Type: settings.AddressTypeClientBills, Street: "2 Oak Ave", City: "Springfield", State: "IL", Zip: "62702"},
		{Type: settings.AddressTypeBusiness, Street: "9 New Plaza", City: "Springfield", State: "IL", Zip: "62703"},
	}
	for _, a := range addrs {
		if err := repo.Upsert(ctx, a); err != nil {
			t.Fatalf("upsert %s: %v", a.Type, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2 (one per type)", len(list))
	}

	business, err := repo.GetByType(ctx, settings.AddressTypeBusiness)
	if err != nil {
		t.Fatalf("GetByType: %v", err)
	}
	if business.Street != "9 New Plaza" {
		t.Errorf("business street = %q, want the re-upserted value", business.Street)
	}
}

func TestGoodFaithEstimate_ServiceItemsRoundtrip(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	groupID := createTestGroup(t, ctx, "individual")
	svc := billing.NewService(billing.NewReportRepoPG(tdb.Pool), billing.NewEstimateRepoPG(tdb.Pool))

	est := &billing.GoodFaithEstimate{
		ClientGroupID: groupID,
		ServiceItems: []billing.ServiceItem{
			{ServiceCode: "90837", Description: "Psychotherapy, 60 min", Quantity: 4, Fee: decimal.NewFromInt(150)},
			{ServiceCode: "90791", Description: "Diagnostic evaluation", Quantity: 1, Fee: decimal.NewFromInt(200)},
		},
		TotalEstimate: decimal.NewFromInt(1),
	}
	if err := svc.CreateEstimate(ctx, est); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}

	got, err := svc.GetEstimate(ctx, est.ID)
	if err != nil {
		t.Fatalf("GetEstimate: %v", err)
	}
	if len(got.ServiceItems) != 2 {
		t.Fatalf("len(serviceItems) = %d, want 2", len(got.ServiceItems))
	}
	if got.ServiceItems[0].ServiceCode != "90837" || got.ServiceItems[0].Quantity != 4 {
		t.Errorf("first item mangled: %+v", got.ServiceItems[0])
	}
	// 4*150 + 1*200, regardless of the caller-supplied total
	if !got.TotalEstimate.Equal(decimal.NewFromInt(800)) {
		t.Errorf("totalEstimate = %s, want 800", got.TotalEstimate)
	}
}

func TestSharedDocument_CompleteOnlyFromPending(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	groupID := createTestGroup(t, ctx, "individual")
	repo := documents.NewRepoPG(tdb.Pool)

	doc := &documents.SharedDocument{
		ClientGroupID: groupID,
		Title:         "Intake packet",
		Frequency:     documents.FrequencyOnce,
		Status:        documents.StatusPending,
	}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.MarkCompleted(ctx, doc.ID); err != nil {
		t.Fatalf("MarkCompleted from pending: %v", err)
	}
	got, err := repo.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != documents.StatusCompleted || got.CompletedAt == nil {
		t.Errorf("completed doc = %+v, want status completed with timestamp", got)
	}

	// A second completion must fail, the document is no longer pending.
	err = repo.MarkCompleted(ctx, doc.ID)
	if err == nil || !strings.Contains(err.Error(), "pending") {
		t.Errorf("MarkCompleted on completed doc: err = %v, want not-pending error", err)
	}
}
