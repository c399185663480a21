package service

import (
	"context"
	"time"

	"github.com/fnbdemo/go-fnb-integration/internal/domain"
)

type fraudPayload struct {
	FraudScore float64 `json:"fraudScore"`
	RiskLevel  string  `json:"riskLevel"`
	Flagged    bool    `json:"flagged"`
}

type debitPayload struct {
	TransactionId string `json:"transactionId"`
}

// ProcessPayment runs the payment-processing flow:
// validate -> balance-check (gating) -> fraud score (advisory) ->
// debit (gating) -> notification (best-effort) -> COMPLETED.
// A nil response with a FAILED invocation means a gating stage failed.
func (s *IntegrationService) ProcessPayment(ctx context.Context, cc CallContext, req *domain.PaymentRequest) (*PaymentResponse, *domain.FlowInvocation, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	req.Normalize()

	inv := s.begin(domain.FlowPaymentProcessing, cc)

	balance := s.invoke(ctx, inv, cc, domain.BackendCoreBankingBalance, "GET",
		s.urls.CoreBanking+"/accounts/"+req.SourceAccount+"/balance", nil)
	if !balance.OK() {
		s.finish(inv, domain.OutcomeFailed, "balance-check")
		return nil, inv, nil
	}

	// Advisory stage: a degraded fraud screen never blocks the payment.
	// A successful screen that flags the transaction annotates the result
	// but does not abort either.
	fraud := s.invoke(ctx, inv, cc, domain.BackendFraudCheck, "POST",
		s.urls.Fraud+"/fraud/check", map[string]any{
			"transactionId":      refID("TXN"),
			"accountNumber":      req.SourceAccount,
			"amount":             req.Amount,
			"currency":           req.Currency,
			"destinationCountry": req.DestinationCountry,
			"paymentType":        req.PaymentType,
		})

	var fraudScore *float64
	fraudFlagged := false
	if fraud.OK() {
		var fp fraudPayload
		if err := fraud.Decode(&fp); err == nil {
			score := fp.FraudScore
			fraudScore = &score
			fraudFlagged = fp.Flagged
			if fp.Flagged {
				s.tel.Count("payment.fraud.flagged", 1, "risk="+fp.RiskLevel)
				s.tel.Logger().Warn("[Service:Payment:FraudCheck] - Transaction flagged by fraud detection",
					"score", fp.FraudScore,
					"risk_level", fp.RiskLevel,
					"correlation_id", cc.CorrelationId)
			}
		}
	} else {
		s.tel.Count("payment.fraud.degraded", 1)
		s.tel.Logger().Warn("[Service:Payment:FraudCheck] - Fraud screening degraded, continuing without score",
			"kind", string(fraud.Kind),
			"correlation_id", cc.CorrelationId)
	}

	debit := s.invoke(ctx, inv, cc, domain.BackendCoreBankingDebit, "POST",
		s.urls.CoreBanking+"/accounts/"+req.SourceAccount+"/debit", map[string]any{
			"amount":      req.Amount,
			"currency":    req.Currency,
			"reference":   cc.CorrelationId,
			"paymentType": req.PaymentType,
		})
	if !debit.OK() {
		s.finish(inv, domain.OutcomeFailed, "debit")
		return nil, inv, nil
	}

	var dp debitPayload
	if err := debit.Decode(&dp); err != nil {
		dp.TransactionId = refID("TXN")
	}

	s.notifier.Enqueue(domain.NotificationJob{
		Kind:          "transaction",
		CorrelationId: cc.CorrelationId,
		TraceParent:   cc.TraceParent,
		Payload: map[string]any{
			"transactionId": dp.TransactionId,
			"accountNumber": req.SourceAccount,
			"amount":        req.Amount,
			"currency":      req.Currency,
			"type":          req.PaymentType,
		},
	})

	s.finish(inv, domain.OutcomeCompleted, "")

	return &PaymentResponse{
		TransactionId: dp.TransactionId,
		Status:        string(domain.OutcomeCompleted),
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentType:   req.PaymentType,
		FraudScore:    fraudScore,
		FraudFlagged:  fraudFlagged,
		ElapsedMs:     inv.ElapsedMs,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		CorrelationId: cc.CorrelationId,
	}, inv, nil
}
