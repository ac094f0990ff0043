package models

type AdminStats struct {
	TotalUser    int64   `json:"totalUser"`
	TotalPlants  int64   `json:"totalPlants"`
	TotalOrder   int64   `json:"totalOrder"`
	TotalRevenue float64 `json:"totalRevenue"`
}
