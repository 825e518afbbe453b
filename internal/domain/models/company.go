package models

// CompanyRecord is one company's reported figures for a single year.
// Numeric fields are nil when the source year did not report them.
type CompanyRecord struct {
	ID                int64    `json:"id,omitempty" bson:"id,omitempty"`
	PIB               string   `json:"pib,omitempty" bson:"pib,omitempty"`
	Name              string   `json:"name" bson:"name"`
	TotalIncome       *float64 `json:"totalIncome" bson:"total_income"`
	Profit            *float64 `json:"profit" bson:"profit"`
	EmployeeCount     *int64   `json:"employeeCount" bson:"employee_count"`
	NetPayCosts       *float64 `json:"netPayCosts,omitempty" bson:"net_pay_costs,omitempty"`
	AveragePay        *float64 `json:"averagePay" bson:"average_pay"`
	IncomePerEmployee *float64 `json:"incomePerEmployee" bson:"income_per_employee"`
}

// YearRecord is the flat storage shape: a company row joined with its year.
// Year is nil when the join found no year.
type YearRecord struct {
	Year    *int          `json:"yearValue"`
	Company CompanyRecord `json:"company"`
}

// YearCohort groups every company reported for one year.
type YearCohort struct {
	Year      string          `json:"year" bson:"year"`
	Companies []CompanyRecord `json:"companyList" bson:"company_list"`
}

// Revenue returns TotalIncome, or 0 when it was not reported.
func (c CompanyRecord) Revenue() float64 {
	if c.TotalIncome == nil {
		return 0
	}
	return *c.TotalIncome
}

// Employees returns EmployeeCount, or 0 when it was not reported.
func (c CompanyRecord) Employees() int64 {
	if c.EmployeeCount == nil {
		return 0
	}
	return *c.EmployeeCount
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int64) *int64 {
	return &v
}

// Year returns a pointer to v.
func Year(v int) *int {
	return &v
}
