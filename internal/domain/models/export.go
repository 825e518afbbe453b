package models

// ExportHeader is the column order of the company export.
var ExportHeader = []string{
	"Company",
	"Total Income",
	"Profit",
	"Employees",
	"Avg Pay",
	"Income/Employee",
	"RPE Percentile",
	"Profit Margin",
}

// ExportRow is one line of the company export. Values are preformatted so
// the serializer writes them verbatim.
type ExportRow struct {
	Company           string `csv:"Company" json:"company"`
	TotalIncome       string `csv:"Total Income" json:"totalIncome"`
	Profit            string `csv:"Profit" json:"profit"`
	Employees         string `csv:"Employees" json:"employees"`
	AveragePay        string `csv:"Avg Pay" json:"averagePay"`
	IncomePerEmployee string `csv:"Income/Employee" json:"incomePerEmployee"`
	RPEPercentile     string `csv:"RPE Percentile" json:"rpePercentile"`
	ProfitMargin      string `csv:"Profit Margin" json:"profitMargin"`
}

// Values returns the row cells in ExportHeader order.
func (r ExportRow) Values() []string {
	return []string{
		r.Company,
		r.TotalIncome,
		r.Profit,
		r.Employees,
		r.AveragePay,
		r.IncomePerEmployee,
		r.RPEPercentile,
		r.ProfitMargin,
	}
}
