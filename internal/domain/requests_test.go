package domain

import "testing"

func TestPaymentRequestValidate(t *testing.T) {
	valid := &PaymentRequest{SourceAccount: "ACC1", Amount: 10}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	missing := &PaymentRequest{Amount: 10}
	if err := missing.Validate(); err == nil {
		t.Error("missing source account accepted")
	}

	negative := &PaymentRequest{SourceAccount: "ACC1", Amount: -5}
	if err := negative.Validate(); err == nil {
		t.Error("negative amount accepted")
	}

	zero := &PaymentRequest{SourceAccount: "ACC1"}
	if err := zero.Validate(); err == nil {
		t.Error("zero amount accepted")
	}
}

func TestPaymentRequestNormalize(t *testing.T) {
	r := &PaymentRequest{SourceAccount: "ACC1", Amount: 10}
	r.Normalize()
	if r.Currency != "USD" || r.PaymentType != "WIRE" || r.DestinationCountry != "US" {
		t.Errorf("defaults = %q %q %q", r.Currency, r.PaymentType, r.DestinationCountry)
	}

	set := &PaymentRequest{SourceAccount: "ACC1", Amount: 10, Currency: "EUR", PaymentType: "ACH", DestinationCountry: "DE"}
	set.Normalize()
	if set.Currency != "EUR" || set.PaymentType != "ACH" || set.DestinationCountry != "DE" {
		t.Error("explicit values overwritten")
	}
}

func TestAccountOpeningRequestValidate(t *testing.T) {
	valid := &AccountOpeningRequest{FirstName: "Ana", LastName: "Silva", DateOfBirth: "1990-01-15"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := (&AccountOpeningRequest{FirstName: "Ana", DateOfBirth: "1990-01-15"}).Validate(); err == nil {
		t.Error("missing last name accepted")
	}
	if err := (&AccountOpeningRequest{FirstName: "Ana", LastName: "Silva"}).Validate(); err == nil {
		t.Error("missing date of birth accepted")
	}
}

func TestAccountOpeningRequestNormalizeAndFullName(t *testing.T) {
	r := &AccountOpeningRequest{FirstName: "Ana", LastName: "Silva", DateOfBirth: "1990-01-15"}
	r.Normalize()
	if r.AccountType != "CHECKING" || r.CustomerType != "INDIVIDUAL" || r.BranchCode != "BR001" || r.Nationality != "US" {
		t.Errorf("defaults = %+v", r)
	}
	if r.FullName() != "Ana Silva" {
		t.Errorf("full name = %q", r.FullName())
	}
}

func TestCustomerLookupRequestValidate(t *testing.T) {
	if err := (&CustomerLookupRequest{CustomerId: "CUST000001"}).Validate(); err != nil {
		t.Errorf("valid lookup rejected: %v", err)
	}
	if err := (&CustomerLookupRequest{}).Validate(); err == nil {
		t.Error("empty customer id accepted")
	}
}
