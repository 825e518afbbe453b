package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/itstats/internal/config"
	"github.com/mamadbah2/itstats/internal/domain/models"
)

// Client fetches the yearly company dataset published as JSON.
type Client interface {
	FetchCohorts(ctx context.Context) ([]models.YearCohort, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a dataset client from the importer configuration.
func NewClient(cfg config.DatasetConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	restyClient := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &APIClient{httpClient: restyClient, url: cfg.URL}
}

type yearPayload struct {
	Year        string           `json:"year"`
	CompanyList []companyPayload `json:"companyList"`
}

type companyPayload struct {
	Name              string     `json:"name"`
	PIB               flexString `json:"pib"`
	TotalIncome       flexNumber `json:"totalIncome"`
	Profit            flexNumber `json:"profit"`
	EmployeeCount     flexNumber `json:"employeeCount"`
	NetPayCosts       flexNumber `json:"netPayCosts"`
	AveragePay        flexNumber `json:"averagePay"`
	IncomePerEmployee flexNumber `json:"incomePerEmployee"`
}

// FetchCohorts downloads and decodes the dataset.
func (c *APIClient) FetchCohorts(ctx context.Context) ([]models.YearCohort, error) {
	if c.url == "" {
		return nil, fmt.Errorf("dataset url is not configured")
	}

	var payload []yearPayload
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("dataset request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dataset request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	cohorts := make([]models.YearCohort, 0, len(payload))
	for _, year := range payload {
		cohort := models.YearCohort{
			Year:      strings.TrimSpace(year.Year),
			Companies: make([]models.CompanyRecord, 0, len(year.CompanyList)),
		}
		for _, company := range year.CompanyList {
			cohort.Companies = append(cohort.Companies, company.toRecord())
		}
		cohorts = append(cohorts, cohort)
	}

	return cohorts, nil
}

func (p companyPayload) toRecord() models.CompanyRecord {
	record := models.CompanyRecord{
		Name:              strings.TrimSpace(p.Name),
		PIB:               string(p.PIB),
		TotalIncome:       p.TotalIncome.value,
		Profit:            p.Profit.value,
		NetPayCosts:       p.NetPayCosts.value,
		AveragePay:        p.AveragePay.value,
		IncomePerEmployee: p.IncomePerEmployee.value,
	}
	if p.EmployeeCount.value != nil {
		record.EmployeeCount = models.Int(int64(math.Round(*p.EmployeeCount.value)))
	}
	return record
}

// flexNumber accepts a JSON number, a numeric string or null. Anything
// unparseable decodes to a missing value.
type flexNumber struct {
	value *float64
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		n.value = nil
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		n.value = nil
		return nil
	}
	n.value = &f
	return nil
}

// flexString accepts either a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(v))
		return nil
	}
	*s = flexString(string(data))
	return nil
}
