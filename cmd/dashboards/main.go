// Command dashboards provisions the demo's Kibana saved objects: data
// views for the metrics/traces/logs indices and one dashboard per
// service tier. Pure declarative API calls, no algorithmic content.
package main

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	json "github.com/json-iterator/go"

	"github.com/fnbdemo/go-fnb-integration/internal/config/env"
)

const (
	metricsIndex = "metrics-*"
	tracesIndex  = "traces-*"
	logsIndex    = "logs-*"
)

type kibanaClient struct {
	base    string
	apiKey  string
	http    *http.Client
	created int
	errors  int
}

func newKibanaClient(base, apiKey string) *kibanaClient {
	return &kibanaClient{
		base:   base,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *kibanaClient) request(method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("kbn-xsrf", "true")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	}
	return c.http.Do(req)
}

func (c *kibanaClient) createDataView(id, title string) {
	resp, err := c.request("POST", "/api/data_views/data_view", map[string]any{
		"data_view": map[string]any{"id": id, "title": title, "timeFieldName": "@timestamp"},
		"override":  true,
	})
	if err != nil {
		c.errors++
		log.Printf("    %s -> ERROR %v", title, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		log.Printf("    %s -> OK", title)
		c.created++
	} else {
		log.Printf("    %s -> WARN (%d)", title, resp.StatusCode)
	}
}

func (c *kibanaClient) upsert(objType, objId string, attributes map[string]any) {
	path := fmt.Sprintf("/api/saved_objects/%s/%s?overwrite=true", objType, objId)
	resp, err := c.request("POST", path, map[string]any{"attributes": attributes})
	if err != nil {
		c.errors++
		log.Printf("    ERROR %s/%s: %v", objType, objId, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		c.created++
		return
	}
	c.errors++
	log.Printf("    ERROR %s/%s: status %d", objType, objId, resp.StatusCode)
}

type dashboardSpec struct {
	id          string
	title       string
	description string
	queries     []string
}

var dashboards = []dashboardSpec{
	{
		id:          "fnb-integration-runtime",
		title:       "Integration Runtime Metrics",
		description: "Flow executions, errors and duration percentiles per flow",
		queries: []string{
			"mule.flow.executions by mule.flow.name",
			"mule.flow.errors by mule.flow.name, error.step",
			"mule.flow.duration percentiles by mule.flow.name",
			"mule.backend.latency percentiles by mule.backend",
		},
	},
	{
		id:          "fnb-payment-operations",
		title:       "Payment Operations - Business Metrics",
		description: "Payment volume, fraud flags and degraded screenings",
		queries: []string{
			"mule.flow.executions{mule.flow.name=payment-processing-flow}",
			"payment.fraud.flagged by risk",
			"payment.fraud.degraded",
			"notifications.sent by kind",
		},
	},
	{
		id:          "fnb-portal-overview",
		title:       "Portal Overview",
		description: "Front-door request rates, errors and operation latency",
		queries: []string{
			"portal.requests.total by operation",
			"portal.errors.total by operation",
			"portal.operation.duration percentiles by operation",
			"portal.synthetic.requests by kind",
		},
	},
	{
		id:          "fnb-backend-health",
		title:       "Backend Systems Health",
		description: "Per-backend call outcomes and slow-query pressure",
		queries: []string{
			"mule.backend.calls by backend, kind",
			"mule.backend.latency percentiles by backend",
			"flow.records.dropped",
		},
	},
}

func main() {
	env.Load()

	client := newKibanaClient(env.Values.KIBANA_URL, env.Values.KIBANA_API_KEY)

	log.Println("Creating data views...")
	client.createDataView("fnb-metrics", metricsIndex)
	client.createDataView("fnb-traces", tracesIndex)
	client.createDataView("fnb-logs", logsIndex)

	log.Println("Creating dashboards...")
	for _, spec := range dashboards {
		panels, _ := json.MarshalToString(spec.queries)
		client.upsert("dashboard", spec.id, map[string]any{
			"title":       spec.title,
			"description": spec.description,
			"panelsJSON":  panels,
			"timeRestore": false,
		})
		log.Printf("    %s -> queued", spec.title)
	}

	log.Printf("Done: %d objects created, %d errors", client.created, client.errors)
}
