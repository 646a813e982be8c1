package domain

type Statistics struct {
	TotalDonors     int64 `json:"totalDonors"`
	AvailableDonors int64 `json:"availableDonors"`
	TotalRequests   int64 `json:"totalRequests"`
	PendingRequests int64 `json:"pendingRequests"`
	TotalBloodUnits int64 `json:"totalBloodUnits"`
}
