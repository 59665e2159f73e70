package model

// MonthlyData groups actual and forecast monthly rows.
type MonthlyData struct {
	Actual   []MonthlyRecord `json:"actual"`
	Forecast []MonthlyRecord `json:"forecast"`
}

// Payload is the combined plaintext document inside the encrypted envelope:
// yearly records, monthly actual/forecast rows and the customer map. Any of
// the three sources may be absent; absent sources are empty collections.
type Payload struct {
	Records     []SalesRecord `json:"records"`
	MonthlyData MonthlyData   `json:"monthlyData"`
	CustomerMap CustomerMap   `json:"customerMap"`
}
