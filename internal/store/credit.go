// internal/store/credit.go
package store

import (
	"fmt"
	"strings"

	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/common/metrics"
	"dealership-workers/internal/models"
)

// ApprovalTerms are the lender's decision fields merged into a pending
// application on approval.
type ApprovalTerms struct {
	ApprovedAmount         float64 `json:"approvedAmount"`
	ApprovedAPR            float64 `json:"approvedApr"`
	ApprovedTermMonths     int     `json:"approvedTermMonths"`
	MonthlyPaymentApproved float64 `json:"monthlyPaymentApproved"`
	Stipulations           string  `json:"stipulations,omitempty"`
}

// ==========================
// Credit applications (pre-submission)
// ==========================

func (s *Store) AddCreditApplication(app models.CreditApplication) models.CreditApplication {
	s.mu.Lock()
	defer s.mu.Unlock()

	if app.ID == 0 {
		app.ID = s.nextIDLocked()
	}
	if app.Status == "" {
		app.Status = models.CreditAppStatusDraft
	}
	if app.CreatedDate == "" {
		app.CreatedDate = today()
	}
	s.creditApps = append(s.creditApps, app)
	s.updateGaugesLocked()
	return app
}

func (s *Store) UpdateCreditApplication(app models.CreditApplication) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.creditApps {
		if s.creditApps[i].ID == app.ID {
			s.creditApps[i] = app
			return true
		}
	}
	return false
}

func (s *Store) DeleteCreditApplication(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.creditApps {
		if s.creditApps[i].ID == id {
			s.creditApps = append(s.creditApps[:i], s.creditApps[i+1:]...)
			s.updateGaugesLocked()
			return true
		}
	}
	return false
}

func (s *Store) CreditApplication(id int) (models.CreditApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.creditApps {
		if a.ID == id {
			return a, true
		}
	}
	return models.CreditApplication{}, false
}

func (s *Store) CreditApplications() []models.CreditApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CreditApplication, len(s.creditApps))
	copy(out, s.creditApps)
	return out
}

// ==========================
// Pending applications (post-submission)
// ==========================

func (s *Store) PendingApplication(id int) (models.PendingCreditApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.pendingApps {
		if a.ID == id {
			return a, true
		}
	}
	return models.PendingCreditApplication{}, false
}

func (s *Store) PendingApplications() []models.PendingCreditApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PendingCreditApplication, len(s.pendingApps))
	copy(out, s.pendingApps)
	return out
}

func (s *Store) UpdatePendingApplication(app models.PendingCreditApplication) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pendingApps {
		if s.pendingApps[i].ID == app.ID {
			s.pendingApps[i] = app
			return true
		}
	}
	return false
}

func (s *Store) RemovePendingApplication(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pendingApps {
		if s.pendingApps[i].ID == id {
			s.pendingApps = append(s.pendingApps[:i], s.pendingApps[i+1:]...)
			s.updateGaugesLocked()
			return true
		}
	}
	return false
}

// SubmitApplicationToLender moves an application into the lender pipeline:
// status Submitted, submission metadata stamped, F&I workflow fields blank.
// The record leaves the pre-submission collection in the same locked step.
func (s *Store) SubmitApplicationToLender(appID int, lender string) (models.PendingCreditApplication, error) {
	if strings.TrimSpace(lender) == "" {
		return models.PendingCreditApplication{}, errors.NewLenderRequiredError("submission requires a lender name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.creditApps {
		if s.creditApps[i].ID == appID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.PendingCreditApplication{}, errors.NewRecordNotFoundError(CollectionCreditApps, appID)
	}

	app := s.creditApps[idx]
	if !models.CanTransition(app.Status, models.CreditAppStatusSubmitted, models.CreditAppTransitions) {
		return models.PendingCreditApplication{}, errors.NewInvalidTransitionError(
			"credit-application", string(app.Status), string(models.CreditAppStatusSubmitted))
	}

	app.Status = models.CreditAppStatusSubmitted
	note := fmt.Sprintf("Submitted to %s on %s.", lender, today())
	if strings.TrimSpace(app.Notes) != "" {
		app.Notes = note + "\n" + app.Notes
	} else {
		app.Notes = note
	}

	pending := models.PendingCreditApplication{
		CreditApplication: app,
		SubmittedTo:       lender,
		SubmittedDate:     today(),
	}

	s.creditApps = append(s.creditApps[:idx], s.creditApps[idx+1:]...)
	s.pendingApps = append(s.pendingApps, pending)
	s.updateGaugesLocked()
	metrics.StoreTransitions.WithLabelValues("submit-credit-application").Inc()

	s.logger.Info("credit application submitted to lender", map[string]interface{}{
		"applicationId": appID,
		"lender":        lender,
	})
	return pending, nil
}

// AssignLender records which lender and F&I manager own a pending
// application. Reassignment after submission forces Under Review. Unknown
// ids are a silent no-op.
func (s *Store) AssignLender(id int, lender, fiManager string) (models.PendingCreditApplication, bool, error) {
	if strings.TrimSpace(lender) == "" {
		return models.PendingCreditApplication{}, false, errors.NewLenderRequiredError("assignment requires a lender name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pendingApps {
		if s.pendingApps[i].ID != id {
			continue
		}
		app := &s.pendingApps[i]
		switch app.Status {
		case models.CreditAppStatusSubmitted, models.CreditAppStatusUnderReview:
		default:
			return models.PendingCreditApplication{}, false, errors.NewInvalidTransitionError(
				"credit-application", string(app.Status), string(models.CreditAppStatusUnderReview))
		}
		app.SubmittedTo = lender
		if fiManager != "" {
			app.FIManagerAssigned = fiManager
		}
		app.Status = models.CreditAppStatusUnderReview
		metrics.StoreTransitions.WithLabelValues("assign-lender").Inc()
		return *app, true, nil
	}
	return models.PendingCreditApplication{}, false, nil
}

// ApproveApplication merges the lender's terms into a pending application.
// The status lands on Conditional when stipulations are present, Approved
// otherwise. Unknown ids are a silent no-op; the record stays in the
// pending collection either way.
func (s *Store) ApproveApplication(id int, terms ApprovalTerms) (models.PendingCreditApplication, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pendingApps {
		if s.pendingApps[i].ID != id {
			continue
		}
		app := &s.pendingApps[i]

		target := models.CreditAppStatusApproved
		if strings.TrimSpace(terms.Stipulations) != "" {
			target = models.CreditAppStatusConditional
		}
		if !models.CanTransition(app.Status, target, models.CreditAppTransitions) {
			return models.PendingCreditApplication{}, false, errors.NewInvalidTransitionError(
				"credit-application", string(app.Status), string(target))
		}

		app.Status = target
		app.ApprovalDate = today()
		app.ApprovedAmount = terms.ApprovedAmount
		app.ApprovedAPR = terms.ApprovedAPR
		app.ApprovedTermMonths = terms.ApprovedTermMonths
		app.MonthlyPaymentApproved = terms.MonthlyPaymentApproved
		app.Stipulations = terms.Stipulations
		metrics.StoreTransitions.WithLabelValues("approve-credit-application").Inc()
		return *app, true, nil
	}
	return models.PendingCreditApplication{}, false, nil
}

// DenyApplication marks a pending application Denied with the given
// reason. Unknown ids are a silent no-op.
func (s *Store) DenyApplication(id int, reason string) (models.PendingCreditApplication, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pendingApps {
		if s.pendingApps[i].ID != id {
			continue
		}
		app := &s.pendingApps[i]
		if !models.CanTransition(app.Status, models.CreditAppStatusDenied, models.CreditAppTransitions) {
			return models.PendingCreditApplication{}, false, errors.NewInvalidTransitionError(
				"credit-application", string(app.Status), string(models.CreditAppStatusDenied))
		}
		app.Status = models.CreditAppStatusDenied
		app.ApprovalDate = today()
		app.DenialReason = reason
		metrics.StoreTransitions.WithLabelValues("deny-credit-application").Inc()
		return *app, true, nil
	}
	return models.PendingCreditApplication{}, false, nil
}
