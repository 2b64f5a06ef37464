package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/imovelhub/agent_backend/gateway"
	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

// fakeGateway is a scripted in-memory gateway. Select copies the scripted
// rows for the table into dest; mutations record their calls and can be
// forced to fail per operation.
type fakeGateway struct {
	mu    sync.Mutex
	rows  map[string]any
	fail  map[string]error
	calls []string

	// fixedId forces the next insert to use a specific identifier instead
	// of a generated one.
	fixedId string
	nextId  int

	// updateGate, when set, is received from before each update returns.
	updateGate chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{rows: map[string]any{}, fail: map[string]error{}}
}

func (g *fakeGateway) record(op string, table string) {
	g.mu.Lock()
	g.calls = append(g.calls, op+":"+table)
	g.mu.Unlock()
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) scriptedError(op string, table string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fail[op+":"+table]
}

func (g *fakeGateway) Select(ctx context.Context, table string, filters map[string]any, orders []gateway.Order, dest any) error {
	g.record("select", table)
	if err := g.scriptedError("select", table); err != nil {
		return err
	}
	rows, ok := g.rows[table]
	if !ok {
		return nil
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(rows))
	return nil
}

func (g *fakeGateway) Insert(ctx context.Context, table string, row any) error {
	g.record("insert", table)
	if err := g.scriptedError("insert", table); err != nil {
		return err
	}
	g.mu.Lock()
	id := g.fixedId
	if id == "" {
		g.nextId++
		id = fmt.Sprintf("store-%d", g.nextId)
	}
	g.mu.Unlock()
	switch r := row.(type) {
	case *models.Lead:
		r.ID = id
	case *models.Property:
		r.ID = id
	case *models.Appointment:
		r.ID = id
	case *models.Proposal:
		r.ID = id
	case *models.CheckIn:
		r.ID = id
	}
	return nil
}

func (g *fakeGateway) Update(ctx context.Context, table string, id string, cols map[string]any, model any) error {
	g.record("update", table)
	if g.updateGate != nil {
		<-g.updateGate
	}
	return g.scriptedError("update", table)
}

func (g *fakeGateway) Delete(ctx context.Context, table string, id string, model any) error {
	g.record("delete", table)
	return g.scriptedError("delete", table)
}

func sessionCtx(userId string) context.Context {
	return utils.SetUserIdInContext(context.Background(), userId)
}

func TestLeadCacheStartsWithSeedData(t *testing.T) {
	gw := newFakeGateway()
	c := NewLeadCache(gw)

	items := c.Items()
	if len(items) != 4 {
		t.Fatalf("expected 4 seed leads, got %d", len(items))
	}
	if !c.UsingFallbackData() {
		t.Fatal("expected UsingFallbackData true before any fetch")
	}
	if gw.callCount() != 0 {
		t.Fatalf("expected no gateway calls at construction, got %v", gw.calls)
	}
}

func TestRefreshWithoutRowsKeepsSeeds(t *testing.T) {
	gw := newFakeGateway()
	c := NewLeadCache(gw)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if len(c.Items()) != 4 {
		t.Fatalf("expected seeds kept on empty result, got %d items", len(c.Items()))
	}
	if !c.UsingFallbackData() {
		t.Fatal("expected UsingFallbackData to stay true on empty result")
	}
}

func TestRefreshReplacesSeedsWithStoreRows(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["leads"] = []models.Lead{
		{ID: "L1", Name: "Joana Prado", Status: models.LeadStatusHot},
		{ID: "L2", Name: "Pedro Alves", Status: models.LeadStatusNew},
	}
	c := NewLeadCache(gw)

	if err := c.Refresh(sessionCtx("agent-1")); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	items := c.Items()
	if len(items) != 2 || items[0].ID != "L1" {
		t.Fatalf("expected store rows after refresh, got %+v", items)
	}
	if c.UsingFallbackData() {
		t.Fatal("expected UsingFallbackData false after store rows arrived")
	}
}

func TestRefreshFailureKeepsCurrentRows(t *testing.T) {
	gw := newFakeGateway()
	boom := errors.New("connection refused")
	gw.fail["select:leads"] = boom
	c := NewLeadCache(gw)

	if err := c.Refresh(sessionCtx("agent-1")); !errors.Is(err, boom) {
		t.Fatalf("expected scripted error, got %v", err)
	}
	if len(c.Items()) != 4 {
		t.Fatalf("expected seeds kept on failure, got %d items", len(c.Items()))
	}
	if !errors.Is(c.LastError(), boom) {
		t.Fatalf("expected LastError recorded, got %v", c.LastError())
	}
	if !c.UsingFallbackData() {
		t.Fatal("expected UsingFallbackData unchanged on failure")
	}
}

func TestCreateRequiresSession(t *testing.T) {
	gw := newFakeGateway()
	c := NewAppointmentCache(gw)

	input := models.NewAppointment{
		Type:       models.AppointmentTypeVisit,
		Date:       "2025-04-01",
		Time:       "10:00",
		ClientName: "Carlos Oliveira",
	}
	_, err := c.Create(context.Background(), input.Model())
	if !errors.Is(err, utils.ErrorNotAuthenticated) {
		t.Fatalf("expected ErrorNotAuthenticated, got %v", err)
	}
	if gw.callCount() != 0 {
		t.Fatalf("expected no gateway calls without a session, got %v", gw.calls)
	}
	if len(c.Items()) != 0 {
		t.Fatalf("expected collection untouched, got %d items", len(c.Items()))
	}
}

func TestCreateInsertsAndSupersedesFallback(t *testing.T) {
	gw := newFakeGateway()
	c := NewLeadCache(gw)

	input := models.NewLead{Name: "Maria Santos", Phone: "11 98888-1111"}
	created, err := c.Create(sessionCtx("agent-1"), input.Model())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected store-assigned identifier on created lead")
	}
	if created.Status != models.LeadStatusNew {
		t.Fatalf("expected default status novo, got %q", created.Status)
	}
	if created.UserId != "agent-1" {
		t.Fatalf("expected owner set from session, got %q", created.UserId)
	}

	items := c.Items()
	if items[0].Name != "Maria Santos" {
		t.Fatalf("expected created lead first, got %q", items[0].Name)
	}
	if c.UsingFallbackData() {
		t.Fatal("expected UsingFallbackData false after first successful create")
	}
}

func TestCreateFailureLeavesCollectionUntouched(t *testing.T) {
	gw := newFakeGateway()
	boom := errors.New("insert rejected")
	gw.fail["insert:leads"] = boom
	c := NewLeadCache(gw)

	input := models.NewLead{Name: "Maria Santos"}
	if _, err := c.Create(sessionCtx("agent-1"), input.Model()); !errors.Is(err, boom) {
		t.Fatalf("expected scripted error, got %v", err)
	}
	if len(c.Items()) != 4 {
		t.Fatalf("expected seeds untouched on failure, got %d items", len(c.Items()))
	}
	if !c.UsingFallbackData() {
		t.Fatal("expected UsingFallbackData still true after failed create")
	}
}

func TestCreateReplacesStaleRowWithSameId(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["leads"] = []models.Lead{{ID: "L1", Name: "Joana Prado"}}
	c := NewLeadCache(gw)
	ctx := sessionCtx("agent-1")
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	gw.fixedId = "L1"
	input := models.NewLead{Name: "Joana Prado Atualizada"}
	if _, err := c.Create(ctx, input.Model()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	items := c.Items()
	seen := 0
	for _, item := range items {
		if item.ID == "L1" {
			seen++
			if item.Name != "Joana Prado Atualizada" {
				t.Fatalf("expected replacement row, got %q", item.Name)
			}
		}
	}
	if seen != 1 {
		t.Fatalf("expected exactly one row with id L1, got %d", seen)
	}
}

func TestAppointmentCreateKeepsScheduleOrder(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["compromissos"] = []models.Appointment{
		{ID: "A1", Date: "2025-04-01", Time: "09:00", ClientName: "Carlos", Status: models.AppointmentStatusPending},
		{ID: "A2", Date: "2025-04-03", Time: "14:00", ClientName: "Ana", Status: models.AppointmentStatusConfirmed},
	}
	c := NewAppointmentCache(gw)
	ctx := sessionCtx("agent-1")
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	input := models.NewAppointment{
		Type:       models.AppointmentTypeCall,
		Date:       "2025-04-02",
		Time:       "11:30",
		ClientName: "Roberto",
	}
	if _, err := c.Create(ctx, input.Model()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(items))
	}
	if items[0].ID != "A1" || items[1].ClientName != "Roberto" || items[2].ID != "A2" {
		t.Fatalf("expected schedule order A1, Roberto, A2; got %q %q %q",
			items[0].ID, items[1].ClientName, items[2].ID)
	}
	if items[1].Status != models.AppointmentStatusPending {
		t.Fatalf("expected created appointment pendente, got %q", items[1].Status)
	}
}

func TestUpdateRejectsInvalidStatusTransition(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["compromissos"] = []models.Appointment{
		{ID: "A1", Date: "2025-04-01", Time: "09:00", ClientName: "Carlos", Status: models.AppointmentStatusDone},
	}
	c := NewAppointmentCache(gw)
	ctx := sessionCtx("agent-1")
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	callsAfterRefresh := gw.callCount()

	status := models.AppointmentStatusConfirmed
	patch := models.AppointmentPatch{Status: &status}
	if _, err := c.Update(ctx, "A1", patch); err == nil {
		t.Fatal("expected transition concluido -> confirmado to be rejected")
	}
	if gw.callCount() != callsAfterRefresh {
		t.Fatalf("expected the guard to fire before any gateway call, got %v", gw.calls)
	}
	item, _ := c.Find("A1")
	if item.Status != models.AppointmentStatusDone {
		t.Fatalf("expected cached status unchanged, got %q", item.Status)
	}
}

func TestUpdateFailureLeavesCachedRowUntouched(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["compromissos"] = []models.Appointment{
		{ID: "A1", Date: "2025-04-01", Time: "09:00", ClientName: "Carlos", Status: models.AppointmentStatusPending},
	}
	boom := errors.New("store rejected update")
	gw.fail["update:compromissos"] = boom
	c := NewAppointmentCache(gw)
	ctx := sessionCtx("agent-1")
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	status := models.AppointmentStatusConfirmed
	patch := models.AppointmentPatch{Status: &status}
	if _, err := c.Update(ctx, "A1", patch); !errors.Is(err, boom) {
		t.Fatalf("expected scripted error, got %v", err)
	}
	item, _ := c.Find("A1")
	if item.Status != models.AppointmentStatusPending {
		t.Fatalf("expected status still pendente after failed update, got %q", item.Status)
	}
	if !errors.Is(c.LastError(), boom) {
		t.Fatalf("expected LastError recorded, got %v", c.LastError())
	}
}

func TestUpdateAppliesPatchAfterSuccess(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["compromissos"] = []models.Appointment{
		{ID: "A1", Date: "2025-04-01", Time: "09:00", ClientName: "Carlos", Status: models.AppointmentStatusPending},
	}
	c := NewAppointmentCache(gw)
	ctx := sessionCtx("agent-1")
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	status := models.AppointmentStatusConfirmed
	patch := models.AppointmentPatch{Status: &status}
	updated, err := c.Update(ctx, "A1", patch)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated == nil || updated.Status != models.AppointmentStatusConfirmed {
		t.Fatalf("expected confirmado after update, got %+v", updated)
	}
	item, _ := c.Find("A1")
	if item.Status != models.AppointmentStatusConfirmed {
		t.Fatalf("expected cached row patched, got %q", item.Status)
	}
}

func TestUpdateUncachedIdIsForwarded(t *testing.T) {
	gw := newFakeGateway()
	c := NewAppointmentCache(gw)
	ctx := sessionCtx("agent-1")

	notes := "remarcar na semana que vem"
	patch := models.AppointmentPatch{Notes: &notes}
	updated, err := c.Update(ctx, "missing", patch)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil row for uncached id, got %+v", updated)
	}
	if gw.callCount() != 1 {
		t.Fatalf("expected exactly the update call, got %v", gw.calls)
	}
}

func TestDeleteSeedRowIsLocalOnly(t *testing.T) {
	gw := newFakeGateway()
	c := NewLeadCache(gw)

	if err := c.Delete(context.Background(), "seed-lead-2"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if gw.callCount() != 0 {
		t.Fatalf("expected no gateway calls for a seed delete, got %v", gw.calls)
	}
	if len(c.Items()) != 3 {
		t.Fatalf("expected 3 leads after local removal, got %d", len(c.Items()))
	}
	if !c.UsingFallbackData() {
		t.Fatal("expected UsingFallbackData still true after seed delete")
	}
}

func TestDeleteAfterSupersessionCallsGateway(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["leads"] = []models.Lead{
		{ID: "L1", Name: "Joana Prado"},
		{ID: "L2", Name: "Pedro Alves"},
	}
	c := NewLeadCache(gw)
	ctx := sessionCtx("agent-1")
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	if err := c.Delete(ctx, "L2"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := c.Find("L2"); ok {
		t.Fatal("expected L2 removed from the collection")
	}

	boom := errors.New("delete rejected")
	gw.fail["delete:leads"] = boom
	if err := c.Delete(ctx, "L1"); !errors.Is(err, boom) {
		t.Fatalf("expected scripted error, got %v", err)
	}
	if _, ok := c.Find("L1"); !ok {
		t.Fatal("expected L1 kept after failed delete")
	}
}

// Two overlapping updates on the same row both resolve; the one that
// resolves last owns the final cached value.
func TestConcurrentUpdatesLastResolutionWins(t *testing.T) {
	gw := newFakeGateway()
	gw.rows["leads"] = []models.Lead{{ID: "L1", Name: "Joana Prado", Status: models.LeadStatusNew}}
	gw.updateGate = make(chan struct{})
	c := NewLeadCache(gw)
	ctx := sessionCtx("agent-1")
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	first := models.LeadStatusHot
	second := models.LeadStatusCold
	done := make(chan error, 2)
	go func() {
		_, err := c.Update(ctx, "L1", models.LeadPatch{Status: &first})
		done <- err
	}()
	go func() {
		_, err := c.Update(ctx, "L1", models.LeadPatch{Status: &second})
		done <- err
	}()

	// Release the two in-flight updates one at a time.
	gw.updateGate <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("first resolution error: %v", err)
	}
	gw.updateGate <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("second resolution error: %v", err)
	}

	item, _ := c.Find("L1")
	if item.Status != models.LeadStatusHot && item.Status != models.LeadStatusCold {
		t.Fatalf("expected one of the patched statuses, got %q", item.Status)
	}
	if c.IsLoading() {
		t.Fatal("expected no in-flight operations after both resolved")
	}
}

func TestItemsReturnsACopy(t *testing.T) {
	gw := newFakeGateway()
	c := NewLeadCache(gw)

	items := c.Items()
	items[0].Name = "mutated"
	if c.Items()[0].Name == "mutated" {
		t.Fatal("expected Items to return a copy of the collection")
	}
}

func pastTime() time.Time {
	return time.Now().Add(-48 * time.Hour)
}

func TestProposalRefreshProjectsExpiration(t *testing.T) {
	gw := newFakeGateway()
	past := pastTime()
	gw.rows["propostas"] = []models.Proposal{
		{ID: "prop-1", LeadId: "L1", PropertyId: "I1", Status: models.ProposalStatusPending, ValidUntil: &past},
	}
	gw.rows["leads"] = []models.Lead{{ID: "L1", Name: "Joana Prado"}}
	gw.rows["imoveis"] = []models.Property{{ID: "I1", Title: "Studio Pinheiros"}}
	c := NewProposalCache(gw)

	if err := c.Refresh(sessionCtx("agent-1")); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	item, ok := c.Find("prop-1")
	if !ok {
		t.Fatal("expected proposal prop-1 cached")
	}
	if item.Status != models.ProposalStatusExpired {
		t.Fatalf("expected expirada projection, got %q", item.Status)
	}
	if item.Lead == nil || item.Lead.Name != "Joana Prado" {
		t.Fatalf("expected lead summary joined, got %+v", item.Lead)
	}
	if item.Property == nil || item.Property.Title != "Studio Pinheiros" {
		t.Fatalf("expected property summary joined, got %+v", item.Property)
	}
}
