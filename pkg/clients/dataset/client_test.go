package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/itstats/internal/config"
)

const sampleDataset = `[
  {
    "year": "2024",
    "companyList": [
      {"name": "Domen", "pib": "02002230", "totalIncome": 9689103, "profit": 3381824, "employeeCount": 7, "netPayCosts": 308830, "averagePay": "3677", "incomePerEmployee": 1384158},
      {"name": " Logate ", "pib": 3003330, "totalIncome": "2874296", "profit": null, "employeeCount": "65", "averagePay": "n/a"}
    ]
  },
  {"year": "2023", "companyList": []}
]`

func TestAPIClient_FetchCohorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	client := NewClient(config.DatasetConfig{URL: srv.URL, Timeout: time.Second})
	cohorts, err := client.FetchCohorts(context.Background())
	require.NoError(t, err)
	require.Len(t, cohorts, 2)

	assert.Equal(t, "2024", cohorts[0].Year)
	require.Len(t, cohorts[0].Companies, 2)

	domen := cohorts[0].Companies[0]
	assert.Equal(t, "Domen", domen.Name)
	assert.Equal(t, "02002230", domen.PIB)
	assert.Equal(t, 9689103.0, *domen.TotalIncome)
	assert.Equal(t, 3677.0, *domen.AveragePay)
	assert.Equal(t, int64(7), *domen.EmployeeCount)

	logate := cohorts[0].Companies[1]
	assert.Equal(t, "Logate", logate.Name)
	assert.Equal(t, "3003330", logate.PIB)
	assert.Equal(t, 2874296.0, *logate.TotalIncome)
	assert.Nil(t, logate.Profit)
	assert.Nil(t, logate.NetPayCosts)
	assert.Nil(t, logate.AveragePay)
	assert.Equal(t, int64(65), *logate.EmployeeCount)

	assert.Empty(t, cohorts[1].Companies)
}

func TestAPIClient_FetchCohorts_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	defer srv.Close()

	client := NewClient(config.DatasetConfig{URL: srv.URL, Timeout: time.Second})
	_, err := client.FetchCohorts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestAPIClient_FetchCohorts_NoURL(t *testing.T) {
	_, err := NewClient(config.DatasetConfig{}).FetchCohorts(context.Background())
	assert.Error(t, err)
}
