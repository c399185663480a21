package service

import (
	"context"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/domain"
)

type kycPayload struct {
	Status           string `json:"status"`
	PepMatch         bool   `json:"pepMatch"`
	AdverseMediaHits int    `json:"adverseMediaHits"`
}

type crmCreatePayload struct {
	CustomerId string `json:"customerId"`
}

type accountCreatePayload struct {
	AccountNumber string `json:"accountNumber"`
}

// OpenAccount runs the account-opening/KYC flow. The screening stage is
// the one genuine business-rule gate: a MATCH rejects the application
// outright with nothing created. A screening call that cannot complete is
// also gating, since clearance cannot be asserted without it.
func (s *IntegrationService) OpenAccount(ctx context.Context, cc CallContext, req *domain.AccountOpeningRequest) (*AccountOpeningResponse, *domain.FlowInvocation, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	req.Normalize()

	inv := s.begin(domain.FlowAccountOpeningKYC, cc)

	kyc := s.invoke(ctx, inv, cc, domain.BackendAMLScreenKYC, "POST",
		s.urls.AML+"/aml/screen/kyc", map[string]any{
			"fullName":     req.FullName(),
			"dateOfBirth":  req.DateOfBirth,
			"nationality":  req.Nationality,
			"ssn":          req.SSN,
			"customerType": req.CustomerType,
		})
	if !kyc.OK() {
		s.finish(inv, domain.OutcomeFailed, "kyc-screening")
		return nil, inv, nil
	}

	var kp kycPayload
	if err := kyc.Decode(&kp); err != nil {
		s.finish(inv, domain.OutcomeFailed, "kyc-screening")
		return nil, inv, nil
	}

	if kp.Status == "MATCH" {
		s.tel.Count("kyc.screening.matched", 1)
		s.tel.Logger().Warn("[Service:AccountOpening:KYC] - Screening matched, application rejected",
			"applicant", req.FullName(),
			"correlation_id", cc.CorrelationId)
		s.finish(inv, domain.OutcomeRejected, "")
		return &AccountOpeningResponse{
			Status:        "REJECTED",
			Reason:        string(domain.RejectionKYCScreening),
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			CorrelationId: cc.CorrelationId,
		}, inv, nil
	}

	crm := s.invoke(ctx, inv, cc, domain.BackendCRMCreate, "POST",
		s.urls.CRM+"/customers", map[string]any{
			"firstName":    req.FirstName,
			"lastName":     req.LastName,
			"dateOfBirth":  req.DateOfBirth,
			"email":        req.Email,
			"phone":        req.Phone,
			"customerType": req.CustomerType,
		})

	// Degraded CRM writes are tolerated: a placeholder customer id keeps
	// the account opening moving. Availability over consistency here.
	var customerId string
	if crm.OK() {
		var cp crmCreatePayload
		if err := crm.Decode(&cp); err == nil {
			customerId = cp.CustomerId
		}
	}
	if customerId == "" {
		customerId = refID("CUST")
		s.tel.Count("crm.create.degraded", 1)
		s.tel.Logger().Warn("[Service:AccountOpening:CRM] - Profile creation degraded, using placeholder customer id",
			"customer_id", customerId,
			"correlation_id", cc.CorrelationId)
	}

	account := s.invoke(ctx, inv, cc, domain.BackendCoreBankingCreate, "POST",
		s.urls.CoreBanking+"/accounts", map[string]any{
			"customerId":     customerId,
			"accountType":    req.AccountType,
			"initialDeposit": req.InitialDeposit,
			"branchCode":     req.BranchCode,
		})
	if !account.OK() {
		s.finish(inv, domain.OutcomeFailed, "account-create")
		return nil, inv, nil
	}

	var ap accountCreatePayload
	if err := account.Decode(&ap); err != nil || ap.AccountNumber == "" {
		s.finish(inv, domain.OutcomeFailed, "account-create")
		return nil, inv, nil
	}

	s.notifier.Enqueue(domain.NotificationJob{
		Kind:          "account-opened",
		CorrelationId: cc.CorrelationId,
		TraceParent:   cc.TraceParent,
		Payload: map[string]any{
			"customerId":    customerId,
			"accountNumber": ap.AccountNumber,
			"accountType":   req.AccountType,
			"customerName":  req.FullName(),
		},
	})

	s.finish(inv, domain.OutcomeCompleted, "")

	return &AccountOpeningResponse{
		Status:        "APPROVED",
		CustomerId:    customerId,
		AccountNumber: ap.AccountNumber,
		AccountType:   req.AccountType,
		KycStatus:     "CLEAR",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		CorrelationId: cc.CorrelationId,
	}, inv, nil
}
