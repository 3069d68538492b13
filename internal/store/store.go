// internal/store/store.go

// Package store holds every dealership collection in memory and owns all
// lifecycle transitions between them. It is the single writer for its
// collections: workers mutate records only through Store methods, and a
// cross-collection move (Deal -> F&I, application -> lender pipeline) is
// one locked operation, so a record lives in exactly one collection at a
// time.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/common/metrics"
	"dealership-workers/internal/models"
)

// Collection names accepted by search, import and export operations.
const (
	CollectionLeads         = "leads"
	CollectionCustomers     = "customers"
	CollectionDeals         = "deals"
	CollectionFIDeals       = "fi-deals"
	CollectionReturnedDeals = "returned-deals"
	CollectionCreditApps    = "credit-applications"
	CollectionPendingApps   = "pending-applications"
	CollectionTradeIns      = "trade-ins"
)

type Store struct {
	mu     sync.Mutex
	logger logger.Logger

	leads         []models.Lead
	customers     []models.Customer
	deals         []models.Deal
	fiDeals       []models.FIDeal
	returnedDeals []models.Deal
	creditApps    []models.CreditApplication
	pendingApps   []models.PendingCreditApplication
	tradeIns      []models.TradeIn

	nextID int
}

func New(log logger.Logger) *Store {
	return &Store{
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
		nextID: 1,
	}
}

// NewSeeded returns a store populated with demo data.
func NewSeeded(log logger.Logger) *Store {
	s := New(log)
	s.Seed()
	return s
}

// NextID hands out monotonically increasing record ids.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDLocked()
}

func (s *Store) nextIDLocked() int {
	id := s.nextID
	s.nextID++
	return id
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// updateGaugesLocked refreshes the per-collection size gauges. Callers must
// hold the lock.
func (s *Store) updateGaugesLocked() {
	metrics.StoreCollectionSize.WithLabelValues(CollectionLeads).Set(float64(len(s.leads)))
	metrics.StoreCollectionSize.WithLabelValues(CollectionCustomers).Set(float64(len(s.customers)))
	metrics.StoreCollectionSize.WithLabelValues(CollectionDeals).Set(float64(len(s.deals)))
	metrics.StoreCollectionSize.WithLabelValues(CollectionFIDeals).Set(float64(len(s.fiDeals)))
	metrics.StoreCollectionSize.WithLabelValues(CollectionReturnedDeals).Set(float64(len(s.returnedDeals)))
	metrics.StoreCollectionSize.WithLabelValues(CollectionCreditApps).Set(float64(len(s.creditApps)))
	metrics.StoreCollectionSize.WithLabelValues(CollectionPendingApps).Set(float64(len(s.pendingApps)))
	metrics.StoreCollectionSize.WithLabelValues(CollectionTradeIns).Set(float64(len(s.tradeIns)))
}

// ==========================
// Leads
// ==========================

func (s *Store) AddLead(lead models.Lead) models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lead.ID == 0 {
		lead.ID = s.nextIDLocked()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.CreatedAt == "" {
		lead.CreatedAt = nowRFC3339()
	}
	s.leads = append(s.leads, lead)
	s.updateGaugesLocked()
	return lead
}

// UpdateLead replaces the lead with the same id, last write wins.
// Returns false without touching the collection when the id is unknown.
func (s *Store) UpdateLead(lead models.Lead) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID == lead.ID {
			s.leads[i] = lead
			return true
		}
	}
	return false
}

func (s *Store) DeleteLead(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			s.updateGaugesLocked()
			return true
		}
	}
	return false
}

func (s *Store) Lead(id int) (models.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.leads {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lead{}, false
}

func (s *Store) Leads() []models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// ConvertLead marks a lead Converted. No Customer record is created here;
// the caller decides what to do with the conversion payload.
func (s *Store) ConvertLead(id int) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID != id {
			continue
		}
		from := s.leads[i].Status
		if !models.CanTransition(from, models.LeadStatusConverted, models.LeadTransitions) {
			return models.Lead{}, errors.NewInvalidTransitionError("lead", string(from), string(models.LeadStatusConverted))
		}
		s.leads[i].Status = models.LeadStatusConverted
		metrics.StoreTransitions.WithLabelValues("convert-lead").Inc()
		return s.leads[i], nil
	}
	return models.Lead{}, errors.NewRecordNotFoundError(CollectionLeads, id)
}

// AppendCommunication appends a history entry to a lead or customer.
func (s *Store) AppendCommunication(collection string, id int, entry models.CommunicationEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case CollectionLeads:
		for i := range s.leads {
			if s.leads[i].ID == id {
				s.leads[i].Communications = append(s.leads[i].Communications, entry)
				return true
			}
		}
	case CollectionCustomers:
		for i := range s.customers {
			if s.customers[i].ID == id {
				s.customers[i].Communications = append(s.customers[i].Communications, entry)
				return true
			}
		}
	}
	return false
}

// ==========================
// Customers
// ==========================

func (s *Store) AddCustomer(c models.Customer) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = s.nextIDLocked()
	}
	if c.CreatedAt == "" {
		c.CreatedAt = nowRFC3339()
	}
	s.customers = append(s.customers, c)
	s.updateGaugesLocked()
	return c
}

func (s *Store) UpdateCustomer(c models.Customer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			s.customers[i] = c
			return true
		}
	}
	return false
}

func (s *Store) DeleteCustomer(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			s.updateGaugesLocked()
			return true
		}
	}
	return false
}

func (s *Store) Customer(id int) (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *Store) Customers() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// ==========================
// Deals
// ==========================

func (s *Store) AddDeal(d models.Deal) models.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == 0 {
		d.ID = s.nextIDLocked()
	}
	if d.DealStage == "" {
		d.DealStage = models.DealStageNegotiation
	}
	if d.CreatedAt == "" {
		d.CreatedAt = nowRFC3339()
	}
	// Selecting a trade-in copies the appraisal onto the deal, one way.
	if d.TradeInID != 0 && d.TradeInVehicle == "" {
		for _, t := range s.tradeIns {
			if t.ID == d.TradeInID {
				d.TradeInVehicle = t.VehicleInfo
				d.TradeInValue = t.AppraisalValue
				break
			}
		}
	}
	s.deals = append(s.deals, d)
	s.updateGaugesLocked()
	return d
}

func (s *Store) UpdateDeal(d models.Deal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.deals {
		if s.deals[i].ID == d.ID {
			s.deals[i] = d
			return true
		}
	}
	return false
}

func (s *Store) DeleteDeal(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.deals {
		if s.deals[i].ID == id {
			s.deals = append(s.deals[:i], s.deals[i+1:]...)
			s.updateGaugesLocked()
			return true
		}
	}
	return false
}

func (s *Store) Deal(id int) (models.Deal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.deals {
		if d.ID == id {
			return d, true
		}
	}
	return models.Deal{}, false
}

func (s *Store) Deals() []models.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Deal, len(s.deals))
	copy(out, s.deals)
	return out
}

// SetDealStage moves a deal along the stepper, rejecting moves the
// transition table does not allow.
func (s *Store) SetDealStage(id int, stage models.DealStage) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.deals {
		if s.deals[i].ID != id {
			continue
		}
		from := s.deals[i].DealStage
		if !models.CanTransition(from, stage, models.DealStageTransitions) {
			return models.Deal{}, errors.NewInvalidTransitionError("deal", string(from), string(stage))
		}
		s.deals[i].DealStage = stage
		metrics.StoreTransitions.WithLabelValues("deal-stage").Inc()
		return s.deals[i], nil
	}
	return models.Deal{}, errors.NewRecordNotFoundError(CollectionDeals, id)
}

func (s *Store) ReturnedDeals() []models.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Deal, len(s.returnedDeals))
	copy(out, s.returnedDeals)
	return out
}

func (s *Store) RemoveReturnedDeal(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.returnedDeals {
		if s.returnedDeals[i].ID == id {
			s.returnedDeals = append(s.returnedDeals[:i], s.returnedDeals[i+1:]...)
			s.updateGaugesLocked()
			return true
		}
	}
	return false
}

// ==========================
// F&I deals
// ==========================

func (s *Store) AddFIDeal(fi models.FIDeal) models.FIDeal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fi.ID == 0 {
		fi.ID = s.nextIDLocked()
	}
	if fi.Status == "" {
		fi.Status = models.FIDealStatusPending
	}
	if fi.SubmittedDate == "" {
		fi.SubmittedDate = today()
	}
	s.fiDeals = append(s.fiDeals, fi)
	s.updateGaugesLocked()
	return fi
}

func (s *Store) UpdateFIDeal(fi models.FIDeal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fiDeals {
		if s.fiDeals[i].ID == fi.ID {
			s.fiDeals[i] = fi
			return true
		}
	}
	return false
}

func (s *Store) DeleteFIDeal(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fiDeals {
		if s.fiDeals[i].ID == id {
			s.fiDeals = append(s.fiDeals[:i], s.fiDeals[i+1:]...)
			s.updateGaugesLocked()
			return true
		}
	}
	return false
}

func (s *Store) FIDeal(id int) (models.FIDeal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fi := range s.fiDeals {
		if fi.ID == id {
			return fi, true
		}
	}
	return models.FIDeal{}, false
}

func (s *Store) FIDeals() []models.FIDeal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FIDeal, len(s.fiDeals))
	copy(out, s.fiDeals)
	return out
}

// SetFIDealStatus advances an F&I deal through Pending -> Approved ->
// Funded -> Delivered.
func (s *Store) SetFIDealStatus(id int, status models.FIDealStatus) (models.FIDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fiDeals {
		if s.fiDeals[i].ID != id {
			continue
		}
		from := s.fiDeals[i].Status
		if !models.CanTransition(from, status, models.FIDealTransitions) {
			return models.FIDeal{}, errors.NewInvalidTransitionError("fi-deal", string(from), string(status))
		}
		s.fiDeals[i].Status = status
		metrics.StoreTransitions.WithLabelValues("fi-deal-status").Inc()
		return s.fiDeals[i], nil
	}
	return models.FIDeal{}, errors.NewRecordNotFoundError(CollectionFIDeals, id)
}

// ==========================
// Trade-ins
// ==========================

func (s *Store) AddTradeIn(t models.TradeIn) models.TradeIn {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		t.ID = s.nextIDLocked()
	}
	s.tradeIns = append(s.tradeIns, t)
	s.updateGaugesLocked()
	return t
}

func (s *Store) TradeIn(id int) (models.TradeIn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tradeIns {
		if t.ID == id {
			return t, true
		}
	}
	return models.TradeIn{}, false
}

func (s *Store) TradeIns() []models.TradeIn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TradeIn, len(s.tradeIns))
	copy(out, s.tradeIns)
	return out
}

// ==========================
// Deal <-> F&I transitions
// ==========================

// SubmitDealToFI moves a deal into the F&I pipeline: finance terms are
// zeroed (term starts at the 60-month default), no products attached, and
// the deal notes are prefixed with a submission provenance line. The deal
// leaves the sales collection in the same locked step.
func (s *Store) SubmitDealToFI(dealID int) (models.FIDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.deals {
		if s.deals[i].ID == dealID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.FIDeal{}, errors.NewRecordNotFoundError(CollectionDeals, dealID)
	}

	d := s.deals[idx]
	notes := fmt.Sprintf("Submitted to F&I from Sales on %s.", today())
	if strings.TrimSpace(d.Notes) != "" {
		notes += "\n" + d.Notes
	}

	fi := models.FIDeal{
		ID:             d.ID,
		CustomerName:   d.CustomerName,
		CustomerEmail:  d.CustomerEmail,
		CustomerPhone:  d.CustomerPhone,
		Vehicle:        d.Vehicle,
		VIN:            d.VIN,
		VehicleType:    d.VehicleType,
		SalePrice:      d.SalePrice,
		FinanceAmount:  d.SalePrice - d.TradeInValue,
		APR:            0,
		TermMonths:     60,
		MonthlyPayment: 0,
		Warranty:       nil,
		GapInsurance:   false,
		TradeInVehicle: d.TradeInVehicle,
		TradeInValue:   d.TradeInValue,
		Status:         models.FIDealStatusPending,
		Salesperson:    d.Salesperson,
		TotalProfit:    d.TotalProfit,
		Notes:          notes,
		SubmittedDate:  today(),
	}

	s.deals = append(s.deals[:idx], s.deals[idx+1:]...)
	s.fiDeals = append(s.fiDeals, fi)
	s.updateGaugesLocked()
	metrics.StoreTransitions.WithLabelValues("submit-deal-to-fi").Inc()

	s.logger.Info("deal submitted to F&I", map[string]interface{}{
		"dealId":   dealID,
		"customer": d.CustomerName,
	})
	return fi, nil
}

// ReturnDealToSales rebuilds a sales deal from an F&I deal and parks it in
// the returned-deals collection. Absent optionals get defaults (vehicle
// type Used, sale price falls back to the finance amount), the stage is
// forced to Finance Approval with paperwork In Progress, and the fixed
// 5-item document checklist is seeded with the Trade-In Agreement entry
// completed iff a trade-in value is present.
func (s *Store) ReturnDealToSales(fiDealID int) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.fiDeals {
		if s.fiDeals[i].ID == fiDealID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Deal{}, errors.NewRecordNotFoundError(CollectionFIDeals, fiDealID)
	}

	fi := s.fiDeals[idx]

	vehicleType := fi.VehicleType
	if vehicleType == "" {
		vehicleType = "Used"
	}
	salePrice := fi.SalePrice
	if salePrice == 0 {
		salePrice = fi.FinanceAmount
	}

	documents := make([]models.DocumentStatus, 0, len(models.ChecklistDocuments))
	for _, name := range models.ChecklistDocuments {
		status := models.DocumentPending
		if name == "Trade-In Agreement" && fi.TradeInValue != 0 {
			status = models.DocumentCompleted
		}
		documents = append(documents, models.DocumentStatus{Name: name, Status: status})
	}

	d := models.Deal{
		ID:              fi.ID,
		CustomerName:    fi.CustomerName,
		CustomerEmail:   fi.CustomerEmail,
		CustomerPhone:   fi.CustomerPhone,
		Vehicle:         fi.Vehicle,
		VIN:             fi.VIN,
		VehicleType:     vehicleType,
		SalePrice:       salePrice,
		TradeInVehicle:  fi.TradeInVehicle,
		TradeInValue:    fi.TradeInValue,
		DealStage:       models.DealStageFinanceApproval,
		PaperworkStatus: "In Progress",
		Documents:       documents,
		Salesperson:     fi.Salesperson,
		TotalProfit:     fi.TotalProfit,
		Notes:           fi.Notes,
		CreatedAt:       nowRFC3339(),
	}

	s.fiDeals = append(s.fiDeals[:idx], s.fiDeals[idx+1:]...)
	s.returnedDeals = append(s.returnedDeals, d)
	s.updateGaugesLocked()
	metrics.StoreTransitions.WithLabelValues("return-deal-to-sales").Inc()

	s.logger.Info("F&I deal returned to sales", map[string]interface{}{
		"dealId":   fiDealID,
		"customer": fi.CustomerName,
	})
	return d, nil
}
