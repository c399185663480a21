package domain

type PaymentRequest struct {
	SourceAccount      string  `json:"sourceAccount"`
	DestinationAccount string  `json:"destinationAccount"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	PaymentType        string  `json:"paymentType"`
	DestinationCountry string  `json:"destinationCountry"`
	Purpose            string  `json:"purpose"`
}

func (r *PaymentRequest) Validate() error {
	if r.SourceAccount == "" {
		return &ValidationError{Field: "sourceAccount", Reason: "required"}
	}
	if r.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return nil
}

// Normalize fills routing defaults; a lightweight transform, no I/O.
func (r *PaymentRequest) Normalize() {
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if r.PaymentType == "" {
		r.PaymentType = "WIRE"
	}
	if r.DestinationCountry == "" {
		r.DestinationCountry = "US"
	}
}

type AccountOpeningRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	DateOfBirth    string  `json:"dateOfBirth"`
	SSN            string  `json:"ssn"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Nationality    string  `json:"nationality"`
	AccountType    string  `json:"accountType"`
	InitialDeposit float64 `json:"initialDeposit"`
	BranchCode     string  `json:"branchCode"`
	CustomerType   string  `json:"customerType"`
}

func (r *AccountOpeningRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return &ValidationError{Field: "firstName/lastName", Reason: "required"}
	}
	if r.DateOfBirth == "" {
		return &ValidationError{Field: "dateOfBirth", Reason: "required"}
	}
	return nil
}

func (r *AccountOpeningRequest) Normalize() {
	if r.AccountType == "" {
		r.AccountType = "CHECKING"
	}
	if r.CustomerType == "" {
		r.CustomerType = "INDIVIDUAL"
	}
	if r.BranchCode == "" {
		r.BranchCode = "BR001"
	}
	if r.Nationality == "" {
		r.Nationality = "US"
	}
}

func (r *AccountOpeningRequest) FullName() string {
	return r.FirstName + " " + r.LastName
}

type CustomerLookupRequest struct {
	CustomerId string `json:"customerId"`
}

func (r *CustomerLookupRequest) Validate() error {
	if r.CustomerId == "" {
		return &ValidationError{Field: "customerId", Reason: "required"}
	}
	return nil
}
