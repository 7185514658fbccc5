package integration

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/sagecare/practice/internal/domain/billing"
	"github.com/sagecare/practice/pkg/pagination"
)

func reportQuery(start, end string, page pagination.Params) billing.ReportQuery {
	s, _ := time.ParseInLocation("2006-01-02", start, time.UTC)
	e, _ := time.ParseInLocation("2006-01-02", end, time.UTC)
	return billing.ReportQuery{
		Start: s,
		End:   e.Add(24*time.Hour - time.Millisecond),
		Page:  page,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOutstandingBalance_Aggregation(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	clientID := createTestClient(t, ctx, "Ada", "Nguyen", base)
	groupID := createTestGroup(t, ctx, "individual")
	addMember(t, ctx, groupID, clientID, "primary", bptr(true))

	inWindow := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// Two completed appointments plus noise that must not count.
	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "completed", Start: inWindow,
		Fee: fptr(200), WriteOff: fptr(30), Adjustable: fptr(10),
	})
	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "completed", Start: inWindow.Add(24 * time.Hour),
		Fee: fptr(170), WriteOff: nil, Adjustable: nil,
	})
	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "scheduled", Start: inWindow,
		Fee: fptr(500),
	})
	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "cancelled", Start: inWindow,
		Fee: fptr(500),
	})

	repo := billing.NewReportRepoPG(tdb.Pool)
	rows, total, err := repo.OutstandingBalance(ctx, reportQuery("2025-03-01", "2025-03-31", pagination.Params{Page: 1, RowsPerPage: 20}))
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.ClientID != clientID {
		t.Errorf("clientId = %s, want %s", row.ClientID, clientID)
	}
	if row.ClientLegalFirstName != "Ada" || row.ClientLegalLastName != "Nguyen" {
		t.Errorf("client name = %s %s, want Ada Nguyen", row.ClientLegalFirstName, row.ClientLegalLastName)
	}
	// service = 200 + 170; paid = (200-30-10) + 170; outstanding = (200-160) + 0
	if !almostEqual(row.TotalServiceAmount, 370) {
		t.Errorf("totalServiceAmount = %v, want 370", row.TotalServiceAmount)
	}
	if !almostEqual(row.TotalPaidAmount, 330) {
		t.Errorf("totalPaidAmount = %v, want 330", row.TotalPaidAmount)
	}
	if !almostEqual(row.TotalOutstandingBalance, 40) {
		t.Errorf("totalOutstandingBalance = %v, want 40", row.TotalOutstandingBalance)
	}
}

func TestOutstandingBalance_NullAmountsCountAsZero(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	clientID := createTestClient(t, ctx, "Bo", "Hale", base)
	groupID := createTestGroup(t, ctx, "individual")
	addMember(t, ctx, groupID, clientID, "primary", bptr(true))

	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "completed",
		Start: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
	})

	repo := billing.NewReportRepoPG(tdb.Pool)
	rows, _, err := repo.OutstandingBalance(ctx, reportQuery("2025-03-01", "2025-03-31", pagination.Params{Page: 1, RowsPerPage: 20}))
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if !almostEqual(rows[0].TotalServiceAmount, 0) || !almostEqual(rows[0].TotalPaidAmount, 0) || !almostEqual(rows[0].TotalOutstandingBalance, 0) {
		t.Errorf("all-null appointment should aggregate to zeros, got %+v", rows[0])
	}
}

func TestOutstandingBalance_ResponsibleClientSelection(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Explicit flag wins over earlier membership.
	older := createTestClient(t, ctx, "First", "Joined", base)
	flagged := createTestClient(t, ctx, "Billing", "Holder", base.Add(time.Hour))
	coupleID := createTestGroup(t, ctx, "couple")
	addMember(t, ctx, coupleID, older, "primary", nil)
	addMember(t, ctx, coupleID, flagged, "spouse", bptr(true))

	// No flag anywhere: earliest created client wins.
	early := createTestClient(t, ctx, "Early", "Riser", base.Add(2*time.Hour))
	late := createTestClient(t, ctx, "Late", "Comer", base.Add(3*time.Hour))
	familyID := createTestGroup(t, ctx, "family")
	addMember(t, ctx, familyID, late, "parent", nil)
	addMember(t, ctx, familyID, early, "parent", nil)

	inWindow := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	createTestAppointment(t, ctx, appointmentSeed{GroupID: coupleID, Status: "completed", Start: inWindow, Fee: fptr(100)})
	createTestAppointment(t, ctx, appointmentSeed{GroupID: familyID, Status: "completed", Start: inWindow, Fee: fptr(100)})

	repo := billing.NewReportRepoPG(tdb.Pool)
	rows, total, err := repo.OutstandingBalance(ctx, reportQuery("2025-02-01", "2025-02-28", pagination.Params{Page: 1, RowsPerPage: 20}))
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}

	got := map[string]bool{}
	for _, r := range rows {
		got[r.ClientID.String()] = true
	}
	if !got[flagged.String()] {
		t.Errorf("couple group should bill against the flagged member %s, rows: %+v", flagged, rows)
	}
	if !got[early.String()] {
		t.Errorf("family group should bill against the earliest created member %s, rows: %+v", early, rows)
	}
	if got[older.String()] || got[late.String()] {
		t.Errorf("non-responsible members must not appear, rows: %+v", rows)
	}
}

func TestOutstandingBalance_InactiveResponsibleClientExcluded(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inactive := createTestClient(t, ctx, "Gone", "Away", base)
	active := createTestClient(t, ctx, "Still", "Here", base.Add(time.Hour))
	groupID := createTestGroup(t, ctx, "couple")
	addMember(t, ctx, groupID, inactive, "primary", bptr(true))
	addMember(t, ctx, groupID, active, "spouse", nil)
	deactivateClient(t, ctx, inactive)

	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "completed",
		Start: time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC), Fee: fptr(100),
	})

	repo := billing.NewReportRepoPG(tdb.Pool)
	rows, total, err := repo.OutstandingBalance(ctx, reportQuery("2025-02-01", "2025-02-28", pagination.Params{Page: 1, RowsPerPage: 20}))
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("total = %d, len = %d, want 1 and 1", total, len(rows))
	}
	if rows[0].ClientID != active {
		t.Errorf("responsibility should fall back to the active member, got %s want %s", rows[0].ClientID, active)
	}
}

func TestOutstandingBalance_DateBoundariesInclusive(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clientID := createTestClient(t, ctx, "Edge", "Case", base)
	groupID := createTestGroup(t, ctx, "individual")
	addMember(t, ctx, groupID, clientID, "primary", bptr(true))

	// Midnight on the start day, late evening on the end day, and the
	// morning after the window.
	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "completed",
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Fee: fptr(10),
	})
	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "completed",
		Start: time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC), Fee: fptr(20),
	})
	createTestAppointment(t, ctx, appointmentSeed{
		GroupID: groupID, Status: "completed",
		Start: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC), Fee: fptr(40),
	})

	repo := billing.NewReportRepoPG(tdb.Pool)
	rows, _, err := repo.OutstandingBalance(ctx, reportQuery("2025-03-01", "2025-03-31", pagination.Params{Page: 1, RowsPerPage: 20}))
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if !almostEqual(rows[0].TotalServiceAmount, 30) {
		t.Errorf("totalServiceAmount = %v, want 30 (both boundary days in, next day out)", rows[0].TotalServiceAmount)
	}
}

func TestOutstandingBalance_PaginationAndOrder(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	lastNames := []string{"Adams", "Brown", "Clark", "Davis", "Evans", "Frank", "Green"}
	inWindow := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	for i, last := range lastNames {
		clientID := createTestClient(t, ctx, "Pat", last, base.Add(time.Duration(i)*time.Minute))
		groupID := createTestGroup(t, ctx, "individual")
		addMember(t, ctx, groupID, clientID, "primary", bptr(true))
		createTestAppointment(t, ctx, appointmentSeed{GroupID: groupID, Status: "completed", Start: inWindow, Fee: fptr(100)})
	}

	repo := billing.NewReportRepoPG(tdb.Pool)

	var seen []string
	for page := 1; page <= 3; page++ {
		rows, total, err := repo.OutstandingBalance(ctx, reportQuery("2025-02-01", "2025-02-28", pagination.Params{Page: page, RowsPerPage: 3}))
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if total != 7 {
			t.Fatalf("page %d: total = %d, want 7", page, total)
		}
		wantLen := 3
		if page == 3 {
			wantLen = 1
		}
		if len(rows) != wantLen {
			t.Fatalf("page %d: len = %d, want %d", page, len(rows), wantLen)
		}
		for _, r := range rows {
			seen = append(seen, r.ClientLegalLastName)
		}
	}

	for i, last := range lastNames {
		if seen[i] != last {
			t.Fatalf("pages out of order: got %v, want %v", seen, lastNames)
		}
	}
}

func TestOutstandingBalance_EmptyWindow(t *testing.T) {
	tdb := requireDB(t)
	ctx := context.Background()
	resetTables(t, ctx)

	svc := billing.NewService(billing.NewReportRepoPG(tdb.Pool), billing.NewEstimateRepoPG(tdb.Pool))
	rows, total, err := svc.OutstandingBalance(ctx, reportQuery("2030-01-01", "2030-01-31", pagination.Params{Page: 1, RowsPerPage: 20}))
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %v, want empty non-nil slice", rows)
	}
}
