package domain

// Backend names as they appear in telemetry tags and call results.
const (
	BackendCoreBankingBalance      = "core-banking/balance-check"
	BackendCoreBankingDebit        = "core-banking/debit"
	BackendCoreBankingCreate       = "core-banking/create-account"
	BackendCoreBankingTransactions = "core-banking/transactions"
	BackendCoreBankingPositions    = "core-banking/trade-positions"
	BackendFraudCheck              = "fraud-detection/check"
	BackendAMLScreenKYC            = "aml-screening/kyc"
	BackendCRMProfile              = "crm/customer-profile"
	BackendCRMInteractions         = "crm/customer-interactions"
	BackendCRMCreate               = "crm/create-customer"
	BackendNotification            = "notification/send"
)

// BackendRequest describes one outbound call for the invoker.
type BackendRequest struct {
	Backend       string
	Method        string
	URL           string
	Payload       any
	CorrelationId string
	TraceParent   string
}
