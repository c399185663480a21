package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/domain"
)

type transactionsPayload struct {
	Transactions []json.RawMessage `json:"transactions"`
}

// Customer360 runs the scatter-gather flow: four independent branches,
// each isolated so one failing branch only blanks its own field. Branches
// run concurrently; results are recorded in a fixed order afterwards.
// When every branch fails the flow finishes FAILED instead of returning
// an empty COMPLETED body.
func (s *IntegrationService) Customer360(ctx context.Context, cc CallContext, req *domain.CustomerLookupRequest) (*Customer360Response, *domain.FlowInvocation, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	inv := s.begin(domain.FlowCustomer360, cc)
	accountId := deriveAccountId(req.CustomerId)

	branches := []struct {
		backend string
		url     string
	}{
		{domain.BackendCRMProfile, s.urls.CRM + "/customers/" + req.CustomerId + "/profile"},
		{domain.BackendCRMInteractions, s.urls.CRM + "/customers/" + req.CustomerId + "/interactions"},
		{domain.BackendCoreBankingBalance, s.urls.CoreBanking + "/accounts/" + accountId + "/balance"},
		{domain.BackendCoreBankingTransactions, s.urls.CoreBanking + "/accounts/" + accountId + "/transactions?days=30"},
	}

	results := make([]*domain.BackendCallResult, len(branches))
	var wg sync.WaitGroup
	for i, branch := range branches {
		wg.Add(1)
		go func(i int, backend, url string) {
			defer wg.Done()
			results[i] = s.invoker.Invoke(ctx, &domain.BackendRequest{
				Backend:       backend,
				Method:        "GET",
				URL:           url,
				CorrelationId: cc.CorrelationId,
				TraceParent:   cc.TraceParent,
			})
		}(i, branch.backend, branch.url)
	}
	wg.Wait()

	var degraded []string
	for i, result := range results {
		inv.Record(result)
		if !result.OK() {
			degraded = append(degraded, branches[i].backend)
		}
	}

	if len(degraded) == len(branches) {
		s.finish(inv, domain.OutcomeFailed, "scatter-gather")
		return nil, inv, nil
	}

	resp := &Customer360Response{
		CustomerId:      req.CustomerId,
		DegradedSources: degraded,
		AssembledAt:     time.Now().UTC().Format(time.RFC3339),
		CorrelationId:   cc.CorrelationId,
	}
	if results[0].OK() {
		resp.Profile = json.RawMessage(results[0].Payload)
	}
	if results[1].OK() {
		resp.Interactions = json.RawMessage(results[1].Payload)
	}
	if results[2].OK() {
		resp.Accounts.Primary = json.RawMessage(results[2].Payload)
	}
	if results[3].OK() {
		var tp transactionsPayload
		if err := results[3].Decode(&tp); err == nil {
			if len(tp.Transactions) > 10 {
				tp.Transactions = tp.Transactions[:10]
			}
			resp.Accounts.RecentTransactions = tp.Transactions
		}
	}

	s.finish(inv, domain.OutcomeCompleted, "")
	return resp, inv, nil
}

// deriveAccountId maps CUST000042 onto ACC00000042.
func deriveAccountId(customerId string) string {
	digits := strings.TrimPrefix(customerId, "CUST")
	return fmt.Sprintf("ACC%08s", digits)
}
