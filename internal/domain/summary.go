package domain

type FlowSummaryItem struct {
	Executions   int64   `json:"executions"`
	Completed    int64   `json:"completed"`
	Rejected     int64   `json:"rejected"`
	Failed       int64   `json:"failed"`
	AvgElapsedMs float64 `json:"avgElapsedMs"`
}

type FlowSummary struct {
	Payments            FlowSummaryItem `json:"paymentProcessing"`
	Customer360         FlowSummaryItem `json:"customer360"`
	AccountOpening      FlowSummaryItem `json:"accountOpeningKyc"`
	TradeReconciliation FlowSummaryItem `json:"tradeReconciliation"`
}
