// internal/store/seed.go
package store

import "dealership-workers/internal/models"

// Seed loads the demo dataset used by local runs and the end-to-end
// suite. Ids are fixed so process variables in sample BPMN diagrams can
// reference them; the id counter starts above the highest seeded id.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads = []models.Lead{
		{
			ID: 1, FirstName: "Marcus", LastName: "Webb", Email: "marcus.webb@example.com",
			Phone: "(555) 201-3344", Source: "Website", Status: models.LeadStatusNew,
			Interest: "2024 Honda CR-V", Score: 72, AssignedTo: "Dana Ortiz",
			CreatedAt: "2026-08-12T14:05:00Z",
		},
		{
			ID: 2, FirstName: "Priya", LastName: "Raman", Email: "priya.raman@example.com",
			Phone: "(555) 318-9921", Source: "Walk-in", Status: models.LeadStatusQualified,
			Interest: "2023 Toyota Camry", Score: 88, AssignedTo: "Dana Ortiz",
			Notes: "Wants to trade in a 2018 Corolla.", CreatedAt: "2026-08-15T09:30:00Z",
		},
		{
			ID: 3, FirstName: "Tom", LastName: "Keller", Email: "tkeller@example.com",
			Phone: "(555) 477-0182", Source: "Referral", Status: models.LeadStatusContacted,
			Interest: "Used pickup under 30k", Score: 54, AssignedTo: "Luis Fernandez",
			CreatedAt: "2026-08-20T16:45:00Z",
		},
	}

	s.customers = []models.Customer{
		{
			ID: 4, FirstName: "Angela", LastName: "Cho", Email: "angela.cho@example.com",
			Phone: "(555) 902-5510", Address: "18 Birch Lane", City: "Dayton", State: "OH", Zip: "45402",
			VehiclesOwned: []string{"2021 Mazda CX-5"}, CreatedAt: "2025-11-03T10:00:00Z",
		},
		{
			ID: 5, FirstName: "Robert", LastName: "Vance", Email: "rvance@example.com",
			Phone: "(555) 660-7735", City: "Dayton", State: "OH",
			VehiclesOwned: []string{"2019 Ford F-150", "2016 Ford Escape"},
			CreatedAt:     "2024-06-21T13:20:00Z",
		},
	}

	s.tradeIns = []models.TradeIn{
		{
			ID: 6, CustomerName: "Priya Raman", VehicleInfo: "2018 Toyota Corolla LE",
			VIN: "2T1BURHE5JC970441", Mileage: 64200, AppraisalValue: 11500,
			AppraisedBy: "Gus Malone", AppraisalDate: "2026-08-18",
		},
		{
			ID: 7, CustomerName: "Robert Vance", VehicleInfo: "2016 Ford Escape SE",
			VIN: "1FMCU9GX8GUB55219", Mileage: 98100, AppraisalValue: 6800,
			AppraisedBy: "Gus Malone", AppraisalDate: "2026-08-25",
		},
	}

	s.deals = []models.Deal{
		{
			ID: 8, CustomerName: "Priya Raman", CustomerEmail: "priya.raman@example.com",
			CustomerPhone: "(555) 318-9921", Vehicle: "2023 Toyota Camry SE",
			VIN: "4T1G11AK5PU123456", VehicleType: "Used", SalePrice: 27500,
			TradeInID: 6, TradeInVehicle: "2018 Toyota Corolla LE", TradeInValue: 11500,
			DealStage: models.DealStageNegotiation, PaperworkStatus: "Not Started",
			Salesperson: "Dana Ortiz", TotalProfit: 2150, CreatedAt: "2026-08-22T11:10:00Z",
		},
		{
			ID: 9, CustomerName: "Angela Cho", CustomerEmail: "angela.cho@example.com",
			CustomerPhone: "(555) 902-5510", Vehicle: "2024 Honda CR-V EX-L",
			VIN: "2HKRS6H79RH301788", VehicleType: "New", SalePrice: 36400,
			DealStage: models.DealStagePaperwork, PaperworkStatus: "In Progress",
			Salesperson: "Luis Fernandez", TotalProfit: 1875, CreatedAt: "2026-08-24T15:40:00Z",
		},
	}

	s.fiDeals = []models.FIDeal{
		{
			ID: 10, CustomerName: "Robert Vance", CustomerEmail: "rvance@example.com",
			CustomerPhone: "(555) 660-7735", Vehicle: "2022 Ford F-150 XLT",
			VIN: "1FTFW1E80NKE44120", VehicleType: "Used", SalePrice: 41900,
			FinanceAmount: 35100, APR: 6.9, TermMonths: 72, MonthlyPayment: 597.24,
			Warranty: &models.WarrantyProduct{
				Name: "Platinum Powertrain", Provider: "ShieldPro", TermMonths: 48, Cost: 2400,
			},
			GapInsurance: true, GapCost: 895,
			TradeInVehicle: "2016 Ford Escape SE", TradeInValue: 6800,
			Status: models.FIDealStatusPending, Salesperson: "Luis Fernandez",
			TotalProfit: 3420, SubmittedDate: "2026-08-26",
		},
	}

	s.creditApps = []models.CreditApplication{
		{
			ID: 11, ApplicantFirst: "Robert", ApplicantLast: "Vance", Email: "rvance@example.com",
			Phone: "(555) 660-7735", DateOfBirth: "1979-04-11", Address: "902 Fenwick Ct",
			City: "Dayton", State: "OH", Zip: "45420", YearsAtAddress: 6, ResidenceType: "Own",
			Employer: "Miami Valley Logistics", Position: "Dispatch Manager", YearsEmployed: 8,
			MonthlyIncome: 6250, RequestedAmount: 35100, Vehicle: "2022 Ford F-150 XLT",
			Status: models.CreditAppStatusDraft, CreatedDate: "2026-08-26",
		},
	}

	s.pendingApps = []models.PendingCreditApplication{
		{
			CreditApplication: models.CreditApplication{
				ID: 12, ApplicantFirst: "Denise", ApplicantLast: "Okafor",
				Email: "d.okafor@example.com", Phone: "(555) 114-8267",
				Employer: "Kettering Health", MonthlyIncome: 7100,
				RequestedAmount: 28900, Vehicle: "2023 Subaru Outback",
				Status: models.CreditAppStatusUnderReview, CreatedDate: "2026-08-19",
			},
			SubmittedTo: "First Dayton Credit Union", SubmittedDate: "2026-08-21",
			FIManagerAssigned: "Carmen Silva", DocumentsReceived: true,
			FollowUpDate: "2026-09-02",
		},
	}

	s.nextID = 13
	s.updateGaugesLocked()
}
