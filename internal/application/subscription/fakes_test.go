package subscription_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	appsub "github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/domain/entity"
	"github.com/conversahub/billing-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos (sin DB ni gateway reales)
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[int64]*entity.Invoice
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	m := make(map[int64]*entity.Invoice)
	for _, inv := range invoices {
		m[inv.ID] = inv
	}
	return &fakeInvoiceRepo{invoices: m}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id int64) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) MarkPaidIfPending(_ context.Context, id int64, paidAt time.Time, gatewayStatus string) (bool, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.Status == entity.InvoiceStatusPaid {
		return false, nil
	}
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.GatewayStatus = gatewayStatus
	return true, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	m := make(map[string]*entity.Company)
	for _, c := range companies {
		m[c.ID] = c
	}
	return &fakeCompanyRepo{companies: m}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *entity.Company) error {
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) UpdateDueDate(_ context.Context, id string, dueDate time.Time) error {
	if c, ok := r.companies[id]; ok {
		c.DueDate = dueDate
	}
	return nil
}

func (r *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

type fakePlanRepo struct {
	plans map[string]*entity.Plan
}

func newFakePlanRepo(plans ...*entity.Plan) *fakePlanRepo {
	m := make(map[string]*entity.Plan)
	for _, p := range plans {
		m[p.ID] = p
	}
	return &fakePlanRepo{plans: m}
}

func (r *fakePlanRepo) GetByID(_ context.Context, id string) (*entity.Plan, error) {
	return r.plans[id], nil
}

func (r *fakePlanRepo) List(_ context.Context) ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range r.plans {
		out = append(out, p)
	}
	return out, nil
}

// fakeGateway registra los intents creados y sirve estados precargados.
type fakeGateway struct {
	charges    map[string]*appsub.PixCharge
	created    []appsub.CreatePixInput
	createErr  error
	getErr     error
	getCalls   int
	nextCharge *appsub.PixCharge
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{charges: make(map[string]*appsub.PixCharge)}
}

func (g *fakeGateway) CreatePixPayment(_ context.Context, in appsub.CreatePixInput) (*appsub.PixCharge, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = append(g.created, in)
	if g.nextCharge != nil {
		return g.nextCharge, nil
	}
	return &appsub.PixCharge{
		ID:                "pay-1",
		Status:            appsub.ChargeStatusPending,
		QRCode:            "00020126pix-copia-e-cola",
		QRCodeBase64:      "aW1hZ2Vt",
		ExternalReference: in.ExternalReference,
	}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, paymentID string) (*appsub.PixCharge, error) {
	g.getCalls++
	if g.getErr != nil {
		return nil, g.getErr
	}
	return g.charges[paymentID], nil
}

// fakeTxRunner pasa los mismos repos en memoria: no hay transacción real.
type fakeTxRunner struct {
	invoiceRepo *fakeInvoiceRepo
	companyRepo *fakeCompanyRepo
}

func (r *fakeTxRunner) RunRenewal(ctx context.Context, fn func(repository.InvoiceRepository, repository.CompanyRepository) error) error {
	return fn(r.invoiceRepo, r.companyRepo)
}

// fakeBroadcaster acumula los eventos emitidos.
type broadcastEvent struct {
	companyID string
	company   *dto.CompanyResponse
}

type fakeBroadcaster struct {
	events []broadcastEvent
}

func (b *fakeBroadcaster) BroadcastPaymentConcluded(companyID string, company *dto.CompanyResponse) {
	b.events = append(b.events, broadcastEvent{companyID: companyID, company: company})
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos base compartidos
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "11111111-1111-1111-1111-111111111111"
	testPlanID    = "22222222-2222-2222-2222-222222222222"
)

func testCompany(dueDate time.Time) *entity.Company {
	return &entity.Company{
		ID:       testCompanyID,
		Name:     "Acme Conversas Ltda",
		Email:    "financeiro@acme.com.br",
		Document: "12345678901", // CPF: 11 caracteres
		PlanID:   testPlanID,
		DueDate:  dueDate,
		Status:   entity.CompanyStatusActive,
	}
}

func testPlan() *entity.Plan {
	return &entity.Plan{
		ID:    testPlanID,
		Name:  "Profissional",
		Users: 10,
		Value: decimal.RequireFromString("49.90"),
	}
}

func testInvoice(id int64, value string) *entity.Invoice {
	return &entity.Invoice{
		ID:        id,
		CompanyID: testCompanyID,
		Detail:    "Renovação mensal",
		Value:     decimal.RequireFromString(value),
		Status:    entity.InvoiceStatusPending,
	}
}

// fakeReceiptGen generador de recibos de mentira.
type fakeReceiptGen struct{ err error }

func (g fakeReceiptGen) GenerateReceiptPDF(_ context.Context, _ *entity.Invoice, _ *entity.Company, _ *entity.Plan) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.7 recibo"), nil
}
