package stub

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/correlation"
)

var (
	crmFirstNames = []string{"James", "Sarah", "Michael", "Emily", "Robert", "Jennifer", "David", "Lisa"}
	crmLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	crmSegments   = []string{"PREMIER", "PREFERRED", "STANDARD"}
)

// CRM simulates a Salesforce-style customer platform. Profiles are
// derived from a hash of the customer id so repeated lookups agree.
type CRM struct {
	Policy FaultPolicy
}

func CRMRoutes(s *CRM) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /customers/{customerId}/profile", s.GetProfile)
	mux.HandleFunc("GET /customers/{customerId}/interactions", s.GetInteractions)
	mux.HandleFunc("POST /customers", s.CreateCustomer)
	mux.HandleFunc("GET /health", healthHandler("customer-profile-svc", "Salesforce FSC"))
	return mux
}

func (s *CRM) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerId := r.PathValue("customerId")
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "CRM query failed")
		return
	}

	seed := hashCustomer(customerId)
	first := crmFirstNames[seed%uint32(len(crmFirstNames))]
	last := crmLastNames[(seed/8)%uint32(len(crmLastNames))]

	writeStub(w, http.StatusOK, map[string]any{
		"customerId":          customerId,
		"firstName":           first,
		"lastName":            last,
		"email":               strings.ToLower(first) + "." + strings.ToLower(last) + "@email.com",
		"segment":             crmSegments[seed%uint32(len(crmSegments))],
		"relationshipManager": fmt.Sprintf("RM%03d", 1+seed%20),
		"kycStatus":           "VERIFIED",
		"correlationId":       correlationId,
	})
}

func (s *CRM) GetInteractions(w http.ResponseWriter, r *http.Request) {
	customerId := r.PathValue("customerId")
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "CRM query failed")
		return
	}

	count := 1 + rand.IntN(5)
	interactions := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		interactions = append(interactions, map[string]any{
			"date":    time.Now().UTC().AddDate(0, 0, -rand.IntN(60)).Format("2006-01-02"),
			"channel": pickStub("BRANCH", "PHONE", "MOBILE", "WEB"),
			"type":    pickStub("INQUIRY", "COMPLAINT", "SERVICE_REQUEST", "ADVISORY"),
		})
	}

	writeStub(w, http.StatusOK, map[string]any{
		"customerId":    customerId,
		"interactions":  interactions,
		"count":         count,
		"correlationId": correlationId,
	})
}

func (s *CRM) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	correlationId := correlation.Ensure(correlation.Extract(r.Header))

	var body struct {
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		CustomerType string `json:"customerType"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	time.Sleep(s.Policy.Delay())
	if s.Policy.Fault() {
		writeStubError(w, correlationId, "CRM write failed")
		return
	}

	writeStub(w, http.StatusCreated, map[string]any{
		"customerId":    fmt.Sprintf("CUST%06d", 1+rand.IntN(999999)),
		"firstName":     body.FirstName,
		"lastName":      body.LastName,
		"customerType":  body.CustomerType,
		"kycStatus":     "PENDING",
		"createdAt":     time.Now().UTC().Format(time.RFC3339),
		"correlationId": correlationId,
	})
}

func hashCustomer(customerId string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(customerId))
	return h.Sum32()
}
