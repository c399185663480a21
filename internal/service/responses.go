package service

import json "github.com/json-iterator/go"

type PaymentResponse struct {
	TransactionId string   `json:"transactionId"`
	Status        string   `json:"status"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	PaymentType   string   `json:"paymentType"`
	FraudScore    *float64 `json:"fraudScore"`
	FraudFlagged  bool     `json:"fraudFlagged"`
	ElapsedMs     int64    `json:"elapsedMs"`
	Timestamp     string   `json:"timestamp"`
	CorrelationId string   `json:"correlationId"`
}

type Customer360Accounts struct {
	Primary            json.RawMessage   `json:"primary,omitempty"`
	RecentTransactions []json.RawMessage `json:"recentTransactions"`
}

type Customer360Response struct {
	CustomerId      string              `json:"customerId"`
	Profile         json.RawMessage     `json:"profile,omitempty"`
	Interactions    json.RawMessage     `json:"interactions,omitempty"`
	Accounts        Customer360Accounts `json:"accounts"`
	DegradedSources []string            `json:"degradedSources,omitempty"`
	AssembledAt     string              `json:"assembledAt"`
	CorrelationId   string              `json:"correlationId"`
}

type AccountOpeningResponse struct {
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	CustomerId    string `json:"customerId,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountType   string `json:"accountType,omitempty"`
	KycStatus     string `json:"kycStatus,omitempty"`
	Timestamp     string `json:"timestamp"`
	CorrelationId string `json:"correlationId"`
}

type ReconciliationResponse struct {
	Status           string  `json:"status"`
	LastRun          string  `json:"lastRun"`
	TotalPositions   int     `json:"totalPositions"`
	Matched          int     `json:"matched"`
	Breaks           int     `json:"breaks"`
	MatchRate        float64 `json:"matchRate"`
	NextScheduledRun string  `json:"nextScheduledRun"`
	CorrelationId    string  `json:"correlationId"`
}
